package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vidsummary/backend/internal/logging"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondError writes {"error": msg}. Server errors also carry the request id so callers can quote it.
func respondError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	body := map[string]string{"error": msg}
	if status >= http.StatusInternalServerError {
		if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
			body["requestId"] = requestID
		}
	}
	respondJSON(ctx, w, status, body)
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}
