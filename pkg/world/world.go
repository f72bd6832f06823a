package world

import (
	"errors"
	"fmt"
)

// World is the immutable, fully loaded game content. Scenes, items and
// characters keep their declaration order; lookups go through the indexes
// built by Index. Nothing in here is mutated after load; all per-session
// variation lives in the flag state.
type World struct {
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author,omitempty" yaml:"author,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	StartScene  string `json:"starting_scene" yaml:"starting_scene"`

	Scenes     []*Scene     `json:"scenes" yaml:"scenes"`
	Items      []*Item      `json:"items,omitempty" yaml:"items,omitempty"`
	Characters []*Character `json:"characters,omitempty" yaml:"characters,omitempty"`

	sceneIndex map[string]*Scene
	itemIndex  map[string]*Item
	charIndex  map[string]*Character
}

// Index builds the identifier lookup tables. It must be called once after
// load, before any lookup. Duplicate identifiers are load errors.
func (w *World) Index() error {
	w.sceneIndex = make(map[string]*Scene, len(w.Scenes))
	for _, s := range w.Scenes {
		if s.ID == "" {
			return errors.New("scene with empty id")
		}
		if _, dup := w.sceneIndex[s.ID]; dup {
			return fmt.Errorf("duplicate scene id %q", s.ID)
		}
		w.sceneIndex[s.ID] = s
	}

	w.itemIndex = make(map[string]*Item, len(w.Items))
	for _, it := range w.Items {
		if it.ID == "" {
			return errors.New("item with empty id")
		}
		if _, dup := w.itemIndex[it.ID]; dup {
			return fmt.Errorf("duplicate item id %q", it.ID)
		}
		w.itemIndex[it.ID] = it
	}

	w.charIndex = make(map[string]*Character, len(w.Characters))
	for _, c := range w.Characters {
		if c.ID == "" {
			return errors.New("character with empty id")
		}
		if _, dup := w.charIndex[c.ID]; dup {
			return fmt.Errorf("duplicate character id %q", c.ID)
		}
		w.charIndex[c.ID] = c
	}
	return nil
}

// Scene looks up a scene by id.
func (w *World) Scene(id string) (*Scene, bool) {
	s, ok := w.sceneIndex[id]
	return s, ok
}

// Item looks up an item by id.
func (w *World) Item(id string) (*Item, bool) {
	it, ok := w.itemIndex[id]
	return it, ok
}

// Character looks up a character by id.
func (w *World) Character(id string) (*Character, bool) {
	c, ok := w.charIndex[id]
	return c, ok
}

// Validate checks referential integrity across the whole world: exit
// targets, reveals lists, contained and placed items, character presence,
// event and dialogue actions. It returns the first dangling reference found.
// Index must have been called first.
func (w *World) Validate() error {
	if w.StartScene == "" {
		return errors.New("starting_scene is not set")
	}
	if _, ok := w.sceneIndex[w.StartScene]; !ok {
		return &RefError{Kind: "scene", ID: w.StartScene, From: "starting_scene"}
	}

	for _, s := range w.Scenes {
		if err := w.validateScene(s); err != nil {
			return err
		}
	}

	for _, c := range w.Characters {
		if err := w.validateNode(&c.Dialogue, fmt.Sprintf("character %q dialogue", c.ID)); err != nil {
			return err
		}
		for _, st := range c.States {
			if err := w.validateNode(&st.Node, fmt.Sprintf("character %q state %q", c.ID, st.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *World) validateScene(s *Scene) error {
	from := fmt.Sprintf("scene %q", s.ID)

	revealable := make(map[string]bool)
	for _, e := range s.Exits {
		revealable[e.Name] = true
	}
	for _, o := range s.Objects {
		revealable[o.ID] = true
	}

	for _, e := range s.Exits {
		if _, ok := w.sceneIndex[e.Target]; !ok {
			return &RefError{Kind: "scene", ID: e.Target, From: from + " exit " + e.Name}
		}
	}
	for _, o := range s.Objects {
		for _, id := range o.Contains {
			if _, ok := w.itemIndex[id]; !ok {
				return &RefError{Kind: "item", ID: id, From: from + " object " + o.ID}
			}
		}
		for _, id := range o.Reveals {
			if !revealable[id] {
				return &RefError{Kind: "object", ID: id, From: from + " object " + o.ID + " reveals"}
			}
		}
	}
	for _, p := range s.Items {
		if _, ok := w.itemIndex[p.ID]; !ok {
			return &RefError{Kind: "item", ID: p.ID, From: from + " items"}
		}
	}
	for _, lk := range s.ItemLocks {
		if _, ok := w.itemIndex[lk.Item]; !ok {
			return &RefError{Kind: "item", ID: lk.Item, From: from + " locked_items"}
		}
	}
	for _, p := range s.Characters {
		if _, ok := w.charIndex[p.ID]; !ok {
			return &RefError{Kind: "character", ID: p.ID, From: from + " characters"}
		}
	}
	for _, ev := range s.Events {
		if ev.Trigger == "" {
			return fmt.Errorf("%s has an event with an empty trigger", from)
		}
		for _, id := range ev.Reveals {
			if !revealable[id] {
				return &RefError{Kind: "object", ID: id, From: from + " event " + ev.Trigger + " reveals"}
			}
		}
		for _, a := range ev.Actions() {
			if err := w.validateAction(a, from+" event "+ev.Trigger); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *World) validateNode(n *DialogueNode, from string) error {
	for _, opt := range n.Options {
		for _, a := range opt.Actions {
			if err := w.validateAction(a, from); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *World) validateAction(a Action, from string) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%s: %w", from, err)
	}
	switch a.Type {
	case ActionGiveItem, ActionTakeItem:
		if _, ok := w.itemIndex[a.Item]; !ok {
			return &RefError{Kind: "item", ID: a.Item, From: from}
		}
	case ActionChangeScene:
		if _, ok := w.sceneIndex[a.Scene]; !ok {
			return &RefError{Kind: "scene", ID: a.Scene, From: from}
		}
	}
	return nil
}
