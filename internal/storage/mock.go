package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu         sync.RWMutex
	gamestates map[uuid.UUID]*state.GameState
	worlds     map[string]*world.World
	pingError  error
	saveError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		gamestates: make(map[uuid.UUID]*state.GameState),
		worlds:     make(map[string]*world.World),
	}
}

// AddWorld registers a game world under a directory name.
func (m *MockStorage) AddWorld(name string, w *world.World) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worlds[name] = w
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on SaveGameState with the given
// error. Pass nil to restore normal saves.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error { return nil }

func (m *MockStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	if gs == nil {
		return errors.New("gamestate cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.gamestates[id] = gs.Clone()
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	gs, ok := m.gamestates[id]
	if !ok {
		return nil, ErrNotFound
	}
	return gs.Clone(), nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.gamestates, id)
	return nil
}

func (m *MockStorage) ListGames(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	games := make(map[string]string, len(m.worlds))
	for name, w := range m.worlds {
		title := w.Title
		if title == "" {
			title = name
		}
		games[title] = name
	}
	return games, nil
}

func (m *MockStorage) LoadWorld(ctx context.Context, name string) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.worlds[name]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}
