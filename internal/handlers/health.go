package handlers

import (
	"context"
	"net/http"
	"time"
)

// Health serves GET /healthz: process liveness only.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, "ok", map[string]string{"status": "healthy"})
}

// Ready serves GET /readyz: verifies the registered dependency checks.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.ready))
	healthy := true
	for _, check := range h.ready {
		if err := check.Check(ctx); err != nil {
			status[check.Name] = err.Error()
			healthy = false
			continue
		}
		status[check.Name] = "ok"
	}

	if !healthy {
		respondError(w, http.StatusServiceUnavailable, "dependency check failed")
		return
	}
	respond(w, http.StatusOK, "ready", status)
}
