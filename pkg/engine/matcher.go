package engine

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

// MatchKind discriminates what a player command resolved to.
type MatchKind string

const (
	MatchNone    MatchKind = "none"
	MatchOption  MatchKind = "dialogue_option"
	MatchLeave   MatchKind = "leave_dialogue"
	MatchEvent   MatchKind = "event"
	MatchMove    MatchKind = "move"
	MatchExamine MatchKind = "examine"
	MatchTake    MatchKind = "take"
	MatchTalk    MatchKind = "talk"
)

// Match is the outcome of resolving raw player text. MatchNone is a normal
// outcome, never an error: it carries the original input so the presentation
// layer can answer "I didn't understand".
type Match struct {
	Kind  MatchKind
	Input string

	Option    int // dialogue option index, valid for MatchOption
	Event     *world.Event
	Exit      *world.Exit
	Object    *world.Object
	Item      *world.Item
	Character *world.Character
	Moved     bool // object was moved/pushed rather than looked at
}

var (
	moveVerbs    = []string{"go to", "go", "move to", "walk to", "walk", "enter", "head to", "head"}
	examineVerbs = []string{"examine", "look at", "look in", "inspect", "check", "search"}
	shiftVerbs   = []string{"move", "push", "pull", "slide"}
	takeVerbs    = []string{"take", "pick up", "grab", "get", "collect"}
	talkVerbs    = []string{"talk to", "talk with", "talk", "speak to", "speak with", "greet"}
	leaveWords   = []string{"leave", "bye", "goodbye", "done"}
)

// Normalize case-folds input and collapses whitespace. All trigger and
// identifier comparisons go through it.
func Normalize(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// idMatches reports whether normalized player text names the identifier,
// accepting underscores spoken as spaces ("hidden key slot").
func idMatches(text, id string) bool {
	if text == Normalize(id) {
		return true
	}
	return text == Normalize(strings.ReplaceAll(id, "_", " "))
}

func stripArticle(s string) string {
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}

// Match resolves raw player text against the current context. Precedence is
// fixed: open-dialogue options, then event triggers, then movement, then
// examination, then talk, then "use X on Y". The first stage that produces a
// resolution wins; if none do, the result is MatchNone.
func (e *Engine) Match(input string, gs *state.GameState, eff *EffectiveScene, node *world.DialogueNode) Match {
	norm := Normalize(input)
	noMatch := Match{Kind: MatchNone, Input: input}
	if norm == "" {
		return noMatch
	}

	if node != nil {
		return e.matchDialogue(norm, input, node)
	}

	sc, ok := e.w.Scene(eff.ID)
	if !ok {
		return noMatch
	}

	if m, ok := e.matchEvent(norm, input, sc, gs); ok {
		return m
	}
	if m, ok := matchMove(norm, input, sc, eff); ok {
		return m
	}
	if m, ok := e.matchExamine(norm, input, sc, eff, gs); ok {
		return m
	}
	if m, ok := e.matchTake(norm, input, eff); ok {
		return m
	}
	if m, ok := e.matchTalk(norm, input, eff); ok {
		return m
	}
	if m, ok := e.matchUse(norm, input, sc, eff, gs); ok {
		return m
	}
	return noMatch
}

// matchDialogue resolves input while a conversation is open: a leave word,
// a 1-based option number, or an exact/prefix match of an option prompt.
func (e *Engine) matchDialogue(norm, input string, node *world.DialogueNode) Match {
	for _, w := range leaveWords {
		if norm == w {
			return Match{Kind: MatchLeave, Input: input}
		}
	}

	if n, err := strconv.Atoi(norm); err == nil {
		if n >= 1 && n <= len(node.Options) {
			return Match{Kind: MatchOption, Input: input, Option: n - 1}
		}
		return Match{Kind: MatchNone, Input: input}
	}

	for i, opt := range node.Options {
		if Normalize(opt.Prompt) == norm {
			return Match{Kind: MatchOption, Input: input, Option: i}
		}
	}
	for i, opt := range node.Options {
		if strings.HasPrefix(Normalize(opt.Prompt), norm) {
			return Match{Kind: MatchOption, Input: input, Option: i}
		}
	}
	return Match{Kind: MatchNone, Input: input}
}

// matchEvent finds an event whose trigger phrase matches exactly and whose
// condition currently holds.
func (e *Engine) matchEvent(norm, input string, sc *world.Scene, gs *state.GameState) (Match, bool) {
	for i := range sc.Events {
		ev := &sc.Events[i]
		if Normalize(ev.Trigger) == norm && ev.Condition.Met(gs) {
			return Match{Kind: MatchEvent, Input: input, Event: ev}, true
		}
	}
	return Match{}, false
}

func matchMove(norm, input string, sc *world.Scene, eff *EffectiveScene) (Match, bool) {
	target := ""
	for _, verb := range moveVerbs {
		if strings.HasPrefix(norm, verb+" ") {
			target = stripArticle(strings.TrimPrefix(norm, verb+" "))
			break
		}
	}
	if target == "" {
		target = norm // bare exit name
	}

	for _, ev := range eff.Exits {
		if !idMatches(target, ev.Name) {
			continue
		}
		for i := range sc.Exits {
			if sc.Exits[i].Name == ev.Name {
				return Match{Kind: MatchMove, Input: input, Exit: &sc.Exits[i]}, true
			}
		}
	}
	return Match{}, false
}

// matchExamine resolves examination intents against visible objects, items
// (in the scene or carried) and characters. Shift verbs only apply to
// movable objects, and mark the match as a move so reveals still fire.
func (e *Engine) matchExamine(norm, input string, sc *world.Scene, eff *EffectiveScene, gs *state.GameState) (Match, bool) {
	target := ""
	moved := false
	for _, verb := range examineVerbs {
		if strings.HasPrefix(norm, verb+" ") {
			target = stripArticle(strings.TrimPrefix(norm, verb+" "))
			break
		}
	}
	if target == "" {
		for _, verb := range shiftVerbs {
			if strings.HasPrefix(norm, verb+" ") {
				target = stripArticle(strings.TrimPrefix(norm, verb+" "))
				moved = true
				break
			}
		}
	}
	if target == "" {
		return Match{}, false
	}

	for _, ov := range eff.Objects {
		if !idMatches(target, ov.ID) {
			continue
		}
		for i := range sc.Objects {
			obj := &sc.Objects[i]
			if obj.ID != ov.ID {
				continue
			}
			if moved && !obj.Movable {
				return Match{}, false
			}
			return Match{Kind: MatchExamine, Input: input, Object: obj, Moved: moved}, true
		}
	}
	if moved {
		return Match{}, false
	}

	for _, iv := range eff.Items {
		if idMatches(target, iv.ID) || target == Normalize(iv.Name) {
			if it, ok := e.w.Item(iv.ID); ok {
				return Match{Kind: MatchExamine, Input: input, Item: it}, true
			}
		}
	}
	for id := range gs.Inventory {
		it, ok := e.w.Item(id)
		if !ok {
			continue
		}
		if idMatches(target, it.ID) || target == Normalize(it.Name) {
			return Match{Kind: MatchExamine, Input: input, Item: it}, true
		}
	}

	for _, cv := range eff.Characters {
		if idMatches(target, cv.ID) || target == Normalize(cv.Name) {
			if ch, ok := e.w.Character(cv.ID); ok {
				return Match{Kind: MatchExamine, Input: input, Character: ch}, true
			}
		}
	}
	return Match{}, false
}

// matchTake resolves pickup intents against items visible in the scene.
// Fixed items stay where they are and fall through to later stages.
func (e *Engine) matchTake(norm, input string, eff *EffectiveScene) (Match, bool) {
	target := ""
	for _, verb := range takeVerbs {
		if strings.HasPrefix(norm, verb+" ") {
			target = stripArticle(strings.TrimPrefix(norm, verb+" "))
			break
		}
	}
	if target == "" {
		return Match{}, false
	}

	for _, iv := range eff.Items {
		if !idMatches(target, iv.ID) && target != Normalize(iv.Name) {
			continue
		}
		it, ok := e.w.Item(iv.ID)
		if !ok || it.Fixed {
			continue
		}
		return Match{Kind: MatchTake, Input: input, Item: it}, true
	}
	return Match{}, false
}

func (e *Engine) matchTalk(norm, input string, eff *EffectiveScene) (Match, bool) {
	target := ""
	for _, verb := range talkVerbs {
		if strings.HasPrefix(norm, verb+" ") {
			target = stripArticle(strings.TrimPrefix(norm, verb+" "))
			break
		}
	}
	if target == "" {
		target = norm // bare character name addresses them
	}

	for _, cv := range eff.Characters {
		if idMatches(target, cv.ID) || target == Normalize(cv.Name) {
			if ch, ok := e.w.Character(cv.ID); ok {
				return Match{Kind: MatchTalk, Input: input, Character: ch}, true
			}
		}
	}
	return Match{}, false
}

// matchUse handles the "use X on Y" grammar. Both operands are resolved to
// canonical identifiers (X against the inventory, Y against visible
// objects), then the scene's events are searched for the canonical trigger.
// A matching event with an unmet condition stays unmatched.
func (e *Engine) matchUse(norm, input string, sc *world.Scene, eff *EffectiveScene, gs *state.GameState) (Match, bool) {
	if !strings.HasPrefix(norm, "use ") {
		return Match{}, false
	}
	rest := strings.TrimPrefix(norm, "use ")
	var x, y string
	for _, sep := range []string{" on ", " with ", " in "} {
		if idx := strings.Index(rest, sep); idx > 0 {
			x = stripArticle(strings.TrimSpace(rest[:idx]))
			y = stripArticle(strings.TrimSpace(rest[idx+len(sep):]))
			break
		}
	}
	if x == "" || y == "" {
		return Match{}, false
	}

	var itemID string
	for id := range gs.Inventory {
		it, ok := e.w.Item(id)
		if !ok {
			continue
		}
		if idMatches(x, it.ID) || x == Normalize(it.Name) {
			itemID = it.ID
			break
		}
	}
	if itemID == "" {
		return Match{}, false
	}

	var objectID string
	for _, ov := range eff.Objects {
		if idMatches(y, ov.ID) {
			objectID = ov.ID
			break
		}
	}
	if objectID == "" {
		return Match{}, false
	}

	canonical := Normalize("use " + itemID + " on " + objectID)
	for i := range sc.Events {
		ev := &sc.Events[i]
		if Normalize(ev.Trigger) == canonical && ev.Condition.Met(gs) {
			return Match{Kind: MatchEvent, Input: input, Event: ev}, true
		}
	}
	return Match{}, false
}
