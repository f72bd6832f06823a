package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fable-engine/fable/internal/storage"
)

// HealthResponse reports service and component health.
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
}

type HealthHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewHealthHandler(s storage.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: s, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	status := "healthy"

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		components["storage"] = "unhealthy"
		status = "degraded"
	} else {
		components["storage"] = "healthy"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, h.logger, code, HealthResponse{
		Status:     status,
		Timestamp:  time.Now(),
		Service:    "fable",
		Components: components,
	})
}
