package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler responds with service health information.
type HealthHandler struct {
	Database          HealthCheck
	VideoOffline      bool
	GenerationOffline bool
}

type healthResponse struct {
	Status            string `json:"status"`
	Database          string `json:"database,omitempty"`
	VideoOffline      bool   `json:"videoOffline"`
	GenerationOffline bool   `json:"generationOffline"`
}

// Handle implements GET /healthz.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := healthResponse{
		Status:            "ok",
		VideoOffline:      h.VideoOffline,
		GenerationOffline: h.GenerationOffline,
	}

	status := http.StatusOK
	if h.Database != nil {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.Database(checkCtx); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	respondJSON(ctx, w, status, resp)
}
