package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/mindseye-dev/portfolio/internal/api"
)

// Health is a liveness probe endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "healthy"})
}

// Ready returns 503 when the database cannot be reached.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, api.HealthResponse{Status: "database unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ready"})
}
