package handlers

import (
	"errors"
	"net/http"

	"github.com/ITS-ERP/qms-risk-backend/internal/service"
)

// trend serves one domain's trend series. Query parameters:
// period=monthly switches to month buckets, window=recent keeps only the
// most recent periods, rates=true reduces each period to its rate.
func (h *Handler) trend(w http.ResponseWriter, r *http.Request, domainKey string) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tenantID, token, ok := tenantFromRequest(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "tenant resolution failed")
		return
	}

	monthly := r.URL.Query().Get("period") == "monthly"
	recent := r.URL.Query().Get("window") == "recent"

	if queryFlag(r, "rates") {
		series, err := h.svc.RateTrend(r.Context(), tenantID, token, domainKey, monthly, recent)
		if err != nil {
			h.trendError(w, err)
			return
		}
		respond(w, http.StatusOK, "trend rates computed", series)
		return
	}

	series, err := h.svc.Trend(r.Context(), tenantID, token, domainKey, monthly, recent)
	if err != nil {
		h.trendError(w, err)
		return
	}
	respond(w, http.StatusOK, "trend computed", series)
}

func (h *Handler) trendError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrUnknownDomain) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// ReceivesTrend serves GET /api/v1/inventory/receives/trend.
func (h *Handler) ReceivesTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendReceives)
}

// TransfersTrend serves GET /api/v1/inventory/transfers/trend.
func (h *Handler) TransfersTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendTransfers)
}

// ProductionsTrend serves GET /api/v1/manufacturing/productions/trend.
func (h *Handler) ProductionsTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendProductions)
}

// InspectionsTrend serves GET /api/v1/manufacturing/inspections/trend.
func (h *Handler) InspectionsTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendInspections)
}

// RFQsTrend serves GET /api/v1/srm/rfqs/trend.
func (h *Handler) RFQsTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendRFQs)
}

// LoATrend serves GET /api/v1/srm/loa/trend.
func (h *Handler) LoATrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendLoA)
}

// ShipmentsTrend serves GET /api/v1/srm/shipments/trend.
func (h *Handler) ShipmentsTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendShipments)
}

// RequisitionsTrend serves GET /api/v1/crm/requisitions/trend.
func (h *Handler) RequisitionsTrend(w http.ResponseWriter, r *http.Request) {
	h.trend(w, r, service.TrendRequisitions)
}

// ReceiveSummary serves GET /api/v1/inventory/receives/summary.
func (h *Handler) ReceiveSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tenantID, token, ok := tenantFromRequest(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "tenant resolution failed")
		return
	}

	summary, err := h.svc.ReceiveSummary(r.Context(), tenantID, token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, "receive summary computed", summary)
}
