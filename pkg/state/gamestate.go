package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Reserved flag prefixes for bookkeeping the engine tracks on behalf of
// authors. They live in the ordinary flag set so snapshots round-trip them,
// but authored content never names them.
const (
	revealedFlagPrefix = "__revealed:"
	takenFlagPrefix    = "__taken:"
)

// GameState is the entire mutable state of one play session: the current
// scene pointer, the flag set and the inventory. Everything else the player
// sees is derived from this plus the immutable world.
type GameState struct {
	ID        uuid.UUID `json:"id"`
	Game      string    `json:"game,omitempty"` // content identifier, set by multi-game frontends
	Scene     string    `json:"scene"`
	Flags     StringSet `json:"flags"`
	Inventory StringSet `json:"inventory"`
}

// NewGameState creates an empty session positioned at the given scene.
func NewGameState(startScene string) *GameState {
	return &GameState{
		ID:        uuid.New(),
		Scene:     startScene,
		Flags:     make(StringSet),
		Inventory: make(StringSet),
	}
}

// HasFlag reports whether a flag is set. Implements world.FlagView.
func (gs *GameState) HasFlag(name string) bool { return gs.Flags.Has(name) }

// SetFlag records a named fact.
func (gs *GameState) SetFlag(name string) { gs.Flags.Add(name) }

// ClearFlag retracts a named fact. Clearing an unset flag is a no-op.
func (gs *GameState) ClearFlag(name string) { gs.Flags.Remove(name) }

// HasItem reports whether the player carries the item.
func (gs *GameState) HasItem(id string) bool { return gs.Inventory.Has(id) }

// AddItem puts an item in the inventory and marks it taken, so no scene or
// object listing ever shows it again.
func (gs *GameState) AddItem(id string) {
	gs.Inventory.Add(id)
	gs.Flags.Add(takenFlagPrefix + id)
}

// RemoveItem drops an item from the inventory. The taken mark stays: an item
// given away does not reappear where it was first found.
func (gs *GameState) RemoveItem(id string) { gs.Inventory.Remove(id) }

// MarkRevealed records that a hidden entity has been uncovered for the rest
// of the session.
func (gs *GameState) MarkRevealed(id string) { gs.Flags.Add(revealedFlagPrefix + id) }

// Revealed reports whether a hidden entity has been uncovered.
func (gs *GameState) Revealed(id string) bool { return gs.Flags.Has(revealedFlagPrefix + id) }

// Taken reports whether an item has ever been acquired.
func (gs *GameState) Taken(id string) bool { return gs.Flags.Has(takenFlagPrefix + id) }

// Clone returns a deep copy. The action executor mutates a clone and swaps
// it in only on success, so a failed action list is never observable.
func (gs *GameState) Clone() *GameState {
	return &GameState{
		ID:        gs.ID,
		Game:      gs.Game,
		Scene:     gs.Scene,
		Flags:     gs.Flags.Clone(),
		Inventory: gs.Inventory.Clone(),
	}
}

// Snapshot serializes the full session state.
func (gs *GameState) Snapshot() ([]byte, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gamestate: %w", err)
	}
	return data, nil
}

// RestoreSnapshot parses a snapshot. It validates before returning, so a
// corrupt snapshot never yields a partially initialized state.
func RestoreSnapshot(data []byte) (*GameState, error) {
	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gamestate: %w", err)
	}
	if gs.Scene == "" {
		return nil, errors.New("snapshot has no current scene")
	}
	if gs.Flags == nil {
		gs.Flags = make(StringSet)
	}
	if gs.Inventory == nil {
		gs.Inventory = make(StringSet)
	}
	return &gs, nil
}
