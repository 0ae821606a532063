package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ITS-ERP/qms-risk-backend/internal/catalog"
	"github.com/ITS-ERP/qms-risk-backend/internal/models"
)

// CatalogStore is the persistence surface for risk catalog management.
type CatalogStore interface {
	List(ctx context.Context, tenantID int64, riskUser string) ([]models.RiskCatalogEntry, error)
	Get(ctx context.Context, pkid int64) (*models.RiskCatalogEntry, error)
	Create(ctx context.Context, e *models.RiskCatalogEntry) (*models.RiskCatalogEntry, error)
	Update(ctx context.Context, e *models.RiskCatalogEntry) error
	SoftDelete(ctx context.Context, pkid int64) error
}

// Catalog serves GET (list) and POST (create) on /api/v1/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCatalog(w, r)
	case http.MethodPost:
		h.createCatalog(w, r)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// CatalogByID serves PUT and DELETE on /api/v1/catalog/{id}.
func (h *Handler) CatalogByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/v1/catalog/")
	pkid, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid catalog id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getCatalog(w, r, pkid)
	case http.MethodPut:
		h.updateCatalog(w, r, pkid)
	case http.MethodDelete:
		h.deleteCatalog(w, r, pkid)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := tenantFromRequest(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "tenant resolution failed")
		return
	}

	riskUser := r.URL.Query().Get("risk_user")
	if riskUser == "" {
		respondError(w, http.StatusBadRequest, "risk_user is required")
		return
	}

	entries, err := h.catalog.List(r.Context(), tenantID, riskUser)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []models.RiskCatalogEntry{}
	}
	respond(w, http.StatusOK, "catalog listed", entries)
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request, pkid int64) {
	entry, err := h.catalog.Get(r.Context(), pkid)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "catalog entry not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, "catalog entry", entry)
}

func (h *Handler) createCatalog(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := tenantFromRequest(r)
	if !ok {
		respondError(w, http.StatusInternalServerError, "tenant resolution failed")
		return
	}

	var entry models.RiskCatalogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.RiskName == "" || entry.RiskUser == "" {
		respondError(w, http.StatusBadRequest, "risk_name and risk_user are required")
		return
	}

	// New entries always belong to the caller's tenant; global (null-tenant)
	// entries are provisioned by migration, not through this API.
	entry.TenantID = &tenantID

	created, err := h.catalog.Create(r.Context(), &entry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusCreated, "catalog entry created", created)
}

func (h *Handler) updateCatalog(w http.ResponseWriter, r *http.Request, pkid int64) {
	var entry models.RiskCatalogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry.PKID = pkid

	if err := h.catalog.Update(r.Context(), &entry); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "catalog entry not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, "catalog entry updated", entry)
}

func (h *Handler) deleteCatalog(w http.ResponseWriter, r *http.Request, pkid int64) {
	if err := h.catalog.SoftDelete(r.Context(), pkid); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "catalog entry not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond(w, http.StatusOK, "catalog entry deleted", nil)
}
