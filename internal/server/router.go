// Package server wires the HTTP routes for the risk backend.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ITS-ERP/qms-risk-backend/internal/auth"
	"github.com/ITS-ERP/qms-risk-backend/internal/handlers"
	"github.com/ITS-ERP/qms-risk-backend/internal/middleware"
)

// NewRouter constructs a ServeMux with the risk API routes registered.
// API routes require a verified bearer token; probes and metrics do not.
func NewRouter(h *handlers.Handler, verifier *auth.Verifier) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/api/v1/risk/report", h.Report)
	api.HandleFunc("/api/v1/inventory/receives/summary", h.ReceiveSummary)
	api.HandleFunc("/api/v1/inventory/receives/trend", h.ReceivesTrend)
	api.HandleFunc("/api/v1/inventory/transfers/trend", h.TransfersTrend)
	api.HandleFunc("/api/v1/manufacturing/productions/trend", h.ProductionsTrend)
	api.HandleFunc("/api/v1/manufacturing/inspections/trend", h.InspectionsTrend)
	api.HandleFunc("/api/v1/srm/rfqs/trend", h.RFQsTrend)
	api.HandleFunc("/api/v1/srm/loa/trend", h.LoATrend)
	api.HandleFunc("/api/v1/srm/shipments/trend", h.ShipmentsTrend)
	api.HandleFunc("/api/v1/crm/requisitions/trend", h.RequisitionsTrend)
	api.HandleFunc("/api/v1/catalog", h.Catalog)
	api.HandleFunc("/api/v1/catalog/", h.CatalogByID)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", auth.Middleware(verifier)(api))

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.RequestID(mux)
}
