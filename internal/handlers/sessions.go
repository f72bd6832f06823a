package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fable-engine/fable/internal/storage"
	"github.com/fable-engine/fable/pkg/engine"
	"github.com/fable-engine/fable/pkg/world"
)

// SessionsHandler manages play sessions over HTTP. Live sessions (including
// any open dialogue) are held in memory; every mutation is snapshotted to
// storage, so after a restart a session resumes from its snapshot in the
// idle state.
//
// h.mu guards only the map. Each entry carries its own mutex, held for the
// whole command cycle, so concurrent commands against one session are
// serialized while different sessions proceed in parallel.
type SessionsHandler struct {
	storage storage.Storage
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*sessionEntry
}

type sessionEntry struct {
	mu   sync.Mutex
	sess *engine.Session
}

func NewSessionsHandler(s storage.Storage, logger *slog.Logger) *SessionsHandler {
	return &SessionsHandler{
		storage:  s,
		logger:   logger,
		sessions: make(map[uuid.UUID]*sessionEntry),
	}
}

// CreateSessionRequest starts a new session for a game.
type CreateSessionRequest struct {
	Game string `json:"game"`
}

// CommandRequest carries one raw player command.
type CommandRequest struct {
	Input string `json:"input"`
}

// SessionResponse is returned on create and get.
type SessionResponse struct {
	ID    string                 `json:"id"`
	Game  string                 `json:"game"`
	Scene *engine.EffectiveScene `json:"scene"`
}

func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")

	switch {
	case rest == "":
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.create(w, r)

	case strings.HasSuffix(rest, "/command"):
		if r.Method != http.MethodPost {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		id, ok := parseID(strings.TrimSuffix(rest, "/command"))
		if !ok {
			writeError(w, h.logger, http.StatusBadRequest, "invalid session id")
			return
		}
		h.command(w, r, id)

	default:
		id, ok := parseID(rest)
		if !ok {
			writeError(w, h.logger, http.StatusBadRequest, "invalid session id")
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func parseID(s string) (uuid.UUID, bool) {
	if strings.Contains(s, "/") {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

func (h *SessionsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Game == "" {
		writeError(w, h.logger, http.StatusBadRequest, "game is required")
		return
	}

	wld, err := h.storage.LoadWorld(r.Context(), req.Game)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "game not found: "+req.Game)
			return
		}
		h.logger.Error("Failed to load game content", "game", req.Game, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to load game content")
		return
	}

	sess, err := engine.NewSession(wld, nil)
	if err != nil {
		h.logger.Error("Failed to create session", "game", req.Game, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to create session")
		return
	}
	gs := sess.GameState()
	gs.Game = req.Game

	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.mu.Lock()
	h.sessions[gs.ID] = &sessionEntry{sess: sess}
	h.mu.Unlock()

	res, err := sess.Look()
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "failed to resolve starting scene")
		return
	}

	h.logger.Info("Session created", "id", gs.ID, "game", req.Game)
	writeJSON(w, h.logger, http.StatusCreated, SessionResponse{
		ID:    gs.ID.String(),
		Game:  req.Game,
		Scene: res.Scene,
	})
}

func (h *SessionsHandler) command(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.entry(r, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("Failed to load session", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "failed to load session")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// The command runs against a fork; the live session only advances once
	// the snapshot is durably saved, so a failed step or save leaves both
	// the live state and the stored state exactly where they were.
	trial := entry.sess.Fork()
	result, err := trial.Step(req.Input)
	if err != nil {
		var refErr *world.RefError
		if errors.As(err, &refErr) {
			// Content bug surfaced at resolution time. The gamestate is
			// untouched; report the offending identifier.
			writeError(w, h.logger, http.StatusUnprocessableEntity, refErr.Error())
			return
		}
		h.logger.Error("Command failed", "id", id, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "command failed")
		return
	}

	gs := trial.GameState()
	if err := h.storage.SaveGameState(r.Context(), gs.ID, gs); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "failed to save session")
		return
	}
	entry.sess = trial
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	entry, err := h.entry(r, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, h.logger, http.StatusInternalServerError, "failed to load session")
		return
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	res, err := entry.sess.Look()
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "failed to resolve scene")
		return
	}
	gs := entry.sess.GameState()
	writeJSON(w, h.logger, http.StatusOK, SessionResponse{
		ID:    gs.ID.String(),
		Game:  gs.Game,
		Scene: res.Scene,
	})
}

func (h *SessionsHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "failed to delete session")
		return
	}
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// entry returns the live session entry, rebuilding it from its snapshot if
// the process restarted since it was created. When two requests race to
// rebuild the same session, the first stored entry wins.
func (h *SessionsHandler) entry(r *http.Request, id uuid.UUID) (*sessionEntry, error) {
	h.mu.Lock()
	entry, ok := h.sessions[id]
	h.mu.Unlock()
	if ok {
		return entry, nil
	}

	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		return nil, err
	}
	wld, err := h.storage.LoadWorld(r.Context(), gs.Game)
	if err != nil {
		return nil, err
	}
	sess, err := engine.NewSession(wld, gs)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.sessions[id]; ok {
		return existing, nil
	}
	entry = &sessionEntry{sess: sess}
	h.sessions[id] = entry
	return entry, nil
}
