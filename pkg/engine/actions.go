package engine

import (
	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// Apply executes an action list in declared order as one atomic unit. All
// actions are validated and applied against a clone of the gamestate; the
// clone replaces the caller's state only when every action succeeded, so a
// rejected list is never observable, not even partially.
func (e *Engine) Apply(gs *state.GameState, actions []world.Action) error {
	next := gs.Clone()
	for _, a := range actions {
		if err := a.Validate(); err != nil {
			return err
		}
		switch a.Type {
		case world.ActionSetFlag:
			next.SetFlag(a.Flag)
		case world.ActionClearFlag:
			next.ClearFlag(a.Flag)
		case world.ActionGiveItem:
			if _, ok := e.w.Item(a.Item); !ok {
				return &world.RefError{Kind: "item", ID: a.Item, From: "give_item action"}
			}
			next.AddItem(a.Item)
		case world.ActionTakeItem:
			if _, ok := e.w.Item(a.Item); !ok {
				return &world.RefError{Kind: "item", ID: a.Item, From: "take_item action"}
			}
			next.RemoveItem(a.Item)
		case world.ActionChangeScene:
			if _, ok := e.w.Scene(a.Scene); !ok {
				return &world.RefError{Kind: "scene", ID: a.Scene, From: "change_scene action"}
			}
			next.Scene = a.Scene
		}
	}
	*gs = *next
	return nil
}
