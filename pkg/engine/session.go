package engine

import (
	"strings"

	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// Session runs one player's command loop over a world. It is the only owner
// of the session's GameState and the Idle/InDialogue machine. Sessions are
// strictly request/response: Step never blocks and never runs concurrently
// with itself. Multiple sessions may share one World.
type Session struct {
	eng  *Engine
	gs   *state.GameState
	char *world.Character
	node *world.DialogueNode
}

// TurnResult is the structured outcome of one command cycle. The
// presentation layer decides how to render it.
type TurnResult struct {
	Output          string          `json:"output,omitempty"`
	Speaker         string          `json:"speaker,omitempty"` // set when Output is spoken by a character
	Scene           *EffectiveScene `json:"scene"`
	DialogueOptions []string        `json:"dialogue_options,omitempty"`
	NoMatch         bool            `json:"no_match,omitempty"`
	Input           string          `json:"input,omitempty"` // original text, echoed on NoMatch
}

// NewSession creates a session over a loaded world. A nil gamestate starts a
// fresh session at the world's starting scene; a restored one resumes where
// it was saved.
func NewSession(w *world.World, gs *state.GameState) (*Session, error) {
	if gs == nil {
		gs = state.NewGameState(w.StartScene)
	}
	if _, ok := w.Scene(gs.Scene); !ok {
		return nil, &world.RefError{Kind: "scene", ID: gs.Scene, From: "gamestate"}
	}
	return &Session{eng: New(w), gs: gs}, nil
}

// GameState returns the session's mutable state.
func (s *Session) GameState() *state.GameState { return s.gs }

// Fork returns an independent copy of the session over the same shared
// world: the gamestate is cloned, the dialogue position carried over.
// Callers can run commands on the fork and either discard it or adopt it
// in place of the original; the original never observes the fork.
func (s *Session) Fork() *Session {
	return &Session{eng: s.eng, gs: s.gs.Clone(), char: s.char, node: s.node}
}

// InDialogue reports whether a conversation is open.
func (s *Session) InDialogue() bool { return s.node != nil }

// ActiveCharacter returns the character being spoken to, or nil.
func (s *Session) ActiveCharacter() *world.Character { return s.char }

// Look resolves the current scene without consuming a command.
func (s *Session) Look() (*TurnResult, error) {
	eff, err := s.eng.Resolve(s.gs, s.gs.Scene)
	if err != nil {
		return nil, err
	}
	return &TurnResult{
		Output:          eff.Description,
		Scene:           eff,
		DialogueOptions: s.optionPrompts(),
	}, nil
}

// Step processes one player command: match, execute, re-resolve. The
// gamestate either reflects the whole command's effects or none of them.
func (s *Session) Step(input string) (*TurnResult, error) {
	if res, handled, err := s.tryShortcut(input); handled {
		return res, err
	}

	eff, err := s.eng.Resolve(s.gs, s.gs.Scene)
	if err != nil {
		return nil, err
	}

	m := s.eng.Match(input, s.gs, eff, s.node)
	switch m.Kind {
	case MatchNone:
		return &TurnResult{
			Scene:           eff,
			DialogueOptions: s.optionPrompts(),
			NoMatch:         true,
			Input:           m.Input,
		}, nil

	case MatchLeave:
		s.closeDialogue()
		return s.finishTurn("You end the conversation.", "")

	case MatchOption:
		return s.stepOption(m.Option)

	case MatchEvent:
		if err := s.eng.Apply(s.gs, m.Event.Actions()); err != nil {
			return nil, err
		}
		for _, id := range m.Event.Reveals {
			s.gs.MarkRevealed(id)
		}
		return s.finishTurn(m.Event.Message, "")

	case MatchMove:
		if m.Exit.Lock.Engaged(s.gs) {
			return s.finishTurn(lockMessage(m.Exit.Lock, "That way is locked."), "")
		}
		if err := s.eng.Apply(s.gs, []world.Action{{Type: world.ActionChangeScene, Scene: m.Exit.Target}}); err != nil {
			return nil, err
		}
		s.closeDialogue()
		next, err := s.eng.Resolve(s.gs, s.gs.Scene)
		if err != nil {
			return nil, err
		}
		return &TurnResult{Output: next.Description, Scene: next}, nil

	case MatchExamine:
		return s.stepExamine(m)

	case MatchTake:
		if sc, ok := s.eng.World().Scene(s.gs.Scene); ok {
			if lk := sc.ItemLockFor(m.Item.ID); lk != nil && lk.Condition.Met(s.gs) {
				msg := lk.Message
				if msg == "" {
					msg = "You can't take that right now."
				}
				return s.finishTurn(msg, "")
			}
		}
		if err := s.eng.Apply(s.gs, []world.Action{{Type: world.ActionGiveItem, Item: m.Item.ID}}); err != nil {
			return nil, err
		}
		return s.finishTurn("You take the "+m.Item.DisplayName()+".", "")

	case MatchTalk:
		ch, node, err := s.eng.OpenDialogue(m.Character.ID, s.gs)
		if err != nil {
			return nil, err
		}
		s.char, s.node = ch, node
		return s.finishTurn(node.Text, ch.Name)

	default:
		return &TurnResult{Scene: eff, NoMatch: true, Input: input}, nil
	}
}

// stepOption applies a chosen dialogue option and re-selects the dialogue
// node against the updated flags. The conversation stays open as long as
// the refreshed node still offers options and no scene change occurred.
func (s *Session) stepOption(index int) (*TurnResult, error) {
	opt, err := ChooseOption(s.node, index)
	if err != nil {
		return nil, err
	}
	speaker := s.char.Name
	before := s.gs.Scene
	if err := s.eng.Apply(s.gs, opt.Actions); err != nil {
		return nil, err
	}

	if s.gs.Scene != before {
		s.closeDialogue()
	} else {
		_, node, err := s.eng.OpenDialogue(s.char.ID, s.gs)
		if err != nil {
			return nil, err
		}
		s.node = node
		if len(node.Options) == 0 {
			s.closeDialogue()
		}
	}
	return s.finishTurn(opt.Response, speaker)
}

func (s *Session) stepExamine(m Match) (*TurnResult, error) {
	switch {
	case m.Object != nil:
		// Examining or moving an object uncovers whatever it reveals or
		// contains, for the remainder of the session.
		for _, id := range m.Object.Reveals {
			s.gs.MarkRevealed(id)
		}
		for _, id := range m.Object.Contains {
			s.gs.MarkRevealed(id)
		}
		return s.finishTurn(m.Object.Description, "")
	case m.Item != nil:
		return s.finishTurn(m.Item.Description, "")
	case m.Character != nil:
		return s.finishTurn(m.Character.Description, "")
	}
	return s.finishTurn("", "")
}

// tryShortcut handles session-level commands that bypass the matcher.
func (s *Session) tryShortcut(input string) (*TurnResult, bool, error) {
	if s.node != nil {
		return nil, false, nil
	}
	switch Normalize(input) {
	case "look", "l":
		res, err := s.Look()
		return res, true, err
	case "inventory", "i":
		res, err := s.finishTurn(s.describeInventory(), "")
		return res, true, err
	}
	return nil, false, nil
}

func (s *Session) describeInventory() string {
	if len(s.gs.Inventory) == 0 {
		return "Your inventory is empty."
	}
	names := make([]string, 0, len(s.gs.Inventory))
	for _, id := range s.gs.Inventory.Sorted() {
		if it, ok := s.eng.World().Item(id); ok {
			names = append(names, it.DisplayName())
		} else {
			names = append(names, id)
		}
	}
	return "You are carrying: " + strings.Join(names, ", ") + "."
}

func (s *Session) optionPrompts() []string {
	if s.node == nil {
		return nil
	}
	prompts := make([]string, len(s.node.Options))
	for i, opt := range s.node.Options {
		prompts[i] = opt.Prompt
	}
	return prompts
}

func (s *Session) closeDialogue() {
	s.char = nil
	s.node = nil
}

func lockMessage(l *world.Lock, fallback string) string {
	if l.Message != "" {
		return l.Message
	}
	return fallback
}

func (s *Session) finishTurn(output, speaker string) (*TurnResult, error) {
	eff, err := s.eng.Resolve(s.gs, s.gs.Scene)
	if err != nil {
		return nil, err
	}
	return &TurnResult{
		Output:          output,
		Speaker:         speaker,
		Scene:           eff,
		DialogueOptions: s.optionPrompts(),
	}, nil
}

// Snapshot serializes the session's gamestate for persistence.
func (s *Session) Snapshot() ([]byte, error) {
	return s.gs.Snapshot()
}

// Restore replaces the gamestate wholesale from a snapshot. Any open
// dialogue is closed and the effective scene is recomputed by the next
// query. A snapshot that fails to parse or points at an unknown scene
// leaves the session untouched.
func (s *Session) Restore(data []byte) error {
	gs, err := state.RestoreSnapshot(data)
	if err != nil {
		return err
	}
	if _, ok := s.eng.World().Scene(gs.Scene); !ok {
		return &world.RefError{Kind: "scene", ID: gs.Scene, From: "snapshot"}
	}
	s.gs = gs
	s.closeDialogue()
	return nil
}
