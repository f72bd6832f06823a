package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// ErrNotFound is returned when a snapshot or game does not exist.
var ErrNotFound = errors.New("not found")

// Storage combines session snapshot persistence (Redis) with game content
// loading (filesystem). Snapshot writes are whole-document: a save is a
// single fully-applied gamestate, never a partial one.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Snapshot operations (Redis-backed)
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// Game content operations (filesystem-backed)
	ListGames(ctx context.Context) (map[string]string, error)
	LoadWorld(ctx context.Context, name string) (*world.World, error)
}
