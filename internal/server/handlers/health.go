package handlers

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	db      Pinger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		db:      db,
		version: version,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "database is unavailable", slog.Any("error", err))
		resp.Status = "unavailable"
		sendJSON(h.logger, w, resp, http.StatusServiceUnavailable)
		return
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
