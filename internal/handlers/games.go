package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fable-engine/fable/internal/storage"
)

// GamesHandler lists the playable games found in the content directory.
type GamesHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewGamesHandler(s storage.Storage, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{storage: s, logger: logger}
}

func (h *GamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	games, err := h.storage.ListGames(r.Context())
	if err != nil {
		h.logger.Error("Failed to list games", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to list games")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, games)
}
