package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GET /health
func (h *DBHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("Health: database unreachable", zap.Error(err))
		h.writeJSON(w, "Health", http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	h.writeJSON(w, "Health", http.StatusOK, map[string]string{"status": "healthy"})
}
