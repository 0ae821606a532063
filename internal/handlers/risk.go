package handlers

import (
	"context"
	"net/http"

	"github.com/ITS-ERP/qms-risk-backend/internal/auth"
	"github.com/ITS-ERP/qms-risk-backend/internal/models"
	"github.com/ITS-ERP/qms-risk-backend/internal/risk"
)

// ReportService is the orchestration surface the HTTP layer needs.
type ReportService interface {
	BuildReport(ctx context.Context, tenantID int64, riskUser, authToken string) ([]models.RiskReportRow, error)
	Trend(ctx context.Context, tenantID int64, authToken, domainKey string, monthly, recent bool) ([]models.TrendPoint, error)
	RateTrend(ctx context.Context, tenantID int64, authToken, domainKey string, monthly, recent bool) ([]risk.RatePoint, error)
	ReceiveSummary(ctx context.Context, tenantID int64, authToken string) (*models.ReceiveSummary, error)
}

// Handler serves the risk report, trend and catalog endpoints.
type Handler struct {
	svc     ReportService
	catalog CatalogStore
	ready   []ReadinessCheck
}

// ReadinessCheck verifies one dependency for the readiness probe.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// New creates a Handler.
func New(svc ReportService, catalog CatalogStore) *Handler {
	return &Handler{svc: svc, catalog: catalog}
}

// WithReadiness registers dependency checks for /readyz.
func (h *Handler) WithReadiness(checks ...ReadinessCheck) *Handler {
	h.ready = append(h.ready, checks...)
	return h
}

// tenantFromRequest resolves the caller's tenant and raw token. Requests
// without verified claims are rejected upstream by the auth middleware;
// a missing claim here means the route was wired without it.
func tenantFromRequest(r *http.Request) (int64, string, bool) {
	claims, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		return 0, "", false
	}
	return claims.TenantID, auth.RawTokenFrom(r.Context()), true
}

// Report serves GET /api/v1/risk/report?risk_user=Industry.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tenantID, token, ok := tenantFromRequest(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "tenant resolution failed")
		return
	}

	riskUser := r.URL.Query().Get("risk_user")
	switch riskUser {
	case models.RiskUserIndustry, models.RiskUserSupplier, models.RiskUserRetail:
	default:
		respondError(w, http.StatusBadRequest, "risk_user must be Industry, Supplier or Retail")
		return
	}

	rows, err := h.svc.BuildReport(r.Context(), tenantID, riskUser, token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, "risk report assembled", rows)
}
