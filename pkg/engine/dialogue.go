package engine

import (
	"errors"

	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// ErrOptionOutOfRange is returned when a dialogue option index is outside
// the active node's option list. The caller's state is left untouched.
var ErrOptionOutOfRange = errors.New("dialogue option index out of range")

// OpenDialogue selects the active dialogue node for a character: the first
// declared state whose condition holds, else the default node. The same
// first-match-wins rule as scene state overrides.
func (e *Engine) OpenDialogue(charID string, gs *state.GameState) (*world.Character, *world.DialogueNode, error) {
	ch, ok := e.w.Character(charID)
	if !ok {
		return nil, nil, &world.RefError{Kind: "character", ID: charID}
	}
	for i := range ch.States {
		if ch.States[i].Condition.Met(gs) {
			return ch, &ch.States[i].Node, nil
		}
	}
	return ch, &ch.Dialogue, nil
}

// ChooseOption validates the index against the node and returns the chosen
// option. The engine defends against out-of-range indices regardless of
// what the presentation layer offered.
func ChooseOption(node *world.DialogueNode, index int) (*world.DialogueOption, error) {
	if node == nil || index < 0 || index >= len(node.Options) {
		return nil, ErrOptionOutOfRange
	}
	return &node.Options[index], nil
}
