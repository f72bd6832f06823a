package engine

import (
	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// Engine resolves a loaded world against a session's flag state. It holds no
// mutable state of its own; every method is a function of (world, gamestate)
// and a World may be shared read-only across sessions.
type Engine struct {
	w *world.World
}

// New creates an engine over a loaded, indexed world.
func New(w *world.World) *Engine {
	return &Engine{w: w}
}

// World returns the engine's world.
func (e *Engine) World() *world.World { return e.w }

// EffectiveScene is the fully resolved view of a scene at a point in time:
// the active description and only the entities currently visible. It is a
// value snapshot; mutating the gamestate afterwards does not change it.
type EffectiveScene struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description"`
	Exits       []ExitView      `json:"exits,omitempty"`
	Objects     []ObjectView    `json:"objects,omitempty"`
	Items       []ItemView      `json:"items,omitempty"`
	Characters  []CharacterView `json:"characters,omitempty"`
}

type ExitView struct {
	Name        string `json:"name"`
	Target      string `json:"target"`
	Description string `json:"description,omitempty"`
}

type ObjectView struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

type ItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CharacterView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Resolve computes the effective view of a scene for the given flag state.
// Description overrides are evaluated in declaration order and the first
// match wins. Visibility of exits, objects and items is the declared hidden
// flag overridden by a recorded reveal. The result is recomputed on every
// call and never cached.
func (e *Engine) Resolve(gs *state.GameState, sceneID string) (*EffectiveScene, error) {
	sc, ok := e.w.Scene(sceneID)
	if !ok {
		return nil, &world.RefError{Kind: "scene", ID: sceneID}
	}

	eff := &EffectiveScene{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
	}
	for _, st := range sc.States {
		if st.Condition.Met(gs) {
			eff.Description = st.Description
			break
		}
	}

	for _, ex := range sc.Exits {
		if ex.Hidden && !gs.Revealed(ex.Name) {
			continue
		}
		eff.Exits = append(eff.Exits, ExitView{
			Name:        ex.Name,
			Target:      ex.Target,
			Description: ex.Description,
		})
	}

	for _, obj := range sc.Objects {
		if obj.Hidden && !gs.Revealed(obj.ID) {
			continue
		}
		eff.Objects = append(eff.Objects, ObjectView{ID: obj.ID, Description: obj.Description})
	}

	// Items placed directly in the scene, then items uncovered from visible
	// objects. Declaration order keeps the projection deterministic.
	for _, placed := range sc.Items {
		if placed.Hidden && !gs.Revealed(placed.ID) {
			continue
		}
		e.appendItem(eff, gs, placed.ID)
	}
	for _, obj := range sc.Objects {
		if obj.Hidden && !gs.Revealed(obj.ID) {
			continue
		}
		for _, id := range obj.Contains {
			if !gs.Revealed(id) {
				continue
			}
			e.appendItem(eff, gs, id)
		}
	}

	for _, p := range sc.Characters {
		if !p.Condition.Met(gs) {
			continue
		}
		ch, ok := e.w.Character(p.ID)
		if !ok {
			return nil, &world.RefError{Kind: "character", ID: p.ID, From: "scene " + sc.ID}
		}
		eff.Characters = append(eff.Characters, CharacterView{
			ID:          ch.ID,
			Name:        ch.Name,
			Description: ch.Description,
		})
	}

	return eff, nil
}

func (e *Engine) appendItem(eff *EffectiveScene, gs *state.GameState, id string) {
	if gs.Taken(id) || gs.HasItem(id) {
		return
	}
	it, ok := e.w.Item(id)
	if !ok {
		return
	}
	for _, existing := range eff.Items {
		if existing.ID == id {
			return
		}
	}
	eff.Items = append(eff.Items, ItemView{ID: it.ID, Name: it.DisplayName(), Description: it.Description})
}
