package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dinildamsith/game-explorer/internal/app/details"
	"github.com/dinildamsith/game-explorer/internal/app/games"
	"github.com/dinildamsith/game-explorer/internal/http/middleware"
	"github.com/dinildamsith/game-explorer/internal/logging"
	"github.com/dinildamsith/game-explorer/internal/providers"
	"github.com/dinildamsith/game-explorer/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeFailure maps service and catalog errors onto HTTP statuses.
// notFound is the message used when the catalog reports a 404.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, notFound string, fallback *slog.Logger) {
	logger := loggerFromContext(r, fallback)
	switch {
	case errors.Is(err, errInvalidParam), errors.Is(err, games.ErrInvalidFilters):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, details.ErrTrailerNotFound):
		writeError(w, r, http.StatusNotFound, "trailer not found", logger)
	case errors.Is(err, store.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, "browse session not found", logger)
	case providers.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, notFound, logger)
	case providers.IsRateLimited(err):
		if wait := providers.RetryAfterOf(err); wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds()+0.5)))
		}
		writeError(w, r, http.StatusTooManyRequests, "catalog rate limited", logger)
	case errors.Is(err, context.DeadlineExceeded):
		logging.Warn(logger, "catalog request timed out", "error", err)
		writeError(w, r, http.StatusGatewayTimeout, "catalog timed out", logger)
	case errors.Is(err, context.Canceled):
		writeError(w, r, http.StatusServiceUnavailable, "request canceled", logger)
	default:
		logging.Error(logger, "catalog request failed", err)
		writeError(w, r, http.StatusBadGateway, "catalog unavailable", logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
