package engine

import (
	"testing"

	"github.com/fable-engine/fable/pkg/world"
)

// testWorld is a small three-scene game used across the engine tests: a
// study with a movable portrait hiding a key slot, a desk containing a
// brass key, and a professor in the hallway whose dialogue changes once
// the journals have been read.
func testWorld(t *testing.T) *world.World {
	t.Helper()

	w := &world.World{
		Title:      "The Locked Study",
		StartScene: "study",
		Scenes: []*world.Scene{
			{
				ID:          "study",
				Name:        "The Study",
				Description: "Dust hangs in the lamplight. A portrait hangs crooked on the wall.",
				States: []world.StateOverride{
					{
						Condition:   world.Condition{HasFlags: []string{"secret_passage_revealed"}},
						Description: "The portrait stands swung away from the wall, a passage behind it.",
					},
				},
				Exits: []world.Exit{
					{Name: "hallway", Target: "hallway", Description: "A door to the hallway."},
					{Name: "secret_passage", Target: "archive", Hidden: true},
				},
				Objects: []world.Object{
					{
						ID:          "portrait",
						Description: "A scowling founder. Behind one corner, a small brass slot.",
						Movable:     true,
						Reveals:     []string{"hidden_key_slot"},
					},
					{
						ID:          "hidden_key_slot",
						Description: "A small brass keyhole, flush with the wall.",
						Hidden:      true,
					},
					{
						ID:          "desk",
						Description: "The drawer is stuck half-open. A brass key glints inside.",
						Contains:    []string{"brass_key"},
					},
				},
				Events: []world.Event{
					{
						Trigger:   "use brass_key on hidden_key_slot",
						Condition: world.Condition{LacksFlags: []string{"secret_passage_revealed"}},
						Message:   "The key turns with a soft click. The portrait swings away from the wall.",
						SetFlags:  []string{"secret_passage_revealed"},
						Reveals:   []string{"secret_passage"},
					},
				},
			},
			{
				ID:          "hallway",
				Name:        "The Hallway",
				Description: "A long hallway lined with cabinets.",
				Exits: []world.Exit{
					{Name: "study", Target: "study"},
				},
				Objects: []world.Object{
					{ID: "journals", Description: "Years of field notes in a cramped hand."},
				},
				Events: []world.Event{
					{
						Trigger:  "read journals",
						Message:  "One entry circles the study's portrait twice, in red ink.",
						SetFlags: []string{"read_journals"},
					},
				},
				Characters: []world.Presence{{ID: "professor"}},
			},
			{
				ID:          "archive",
				Name:        "The Hidden Archive",
				Description: "Shelves of uncatalogued papers stretch into the dark.",
				Exits: []world.Exit{
					{Name: "study", Target: "study"},
				},
			},
		},
		Items: []*world.Item{
			{ID: "brass_key", Name: "brass key", Description: "A small brass key."},
		},
		Characters: []*world.Character{
			{
				ID:          "professor",
				Name:        "Professor Hale",
				Description: "Grey-haired and ink-stained.",
				Dialogue: world.DialogueNode{
					Text: "Yes? I am rather busy.",
					Options: []world.DialogueOption{
						{Prompt: "Ask about the study", Response: "Nothing of note in there."},
						{Prompt: "Ask about the journals", Response: "Old field notes."},
					},
				},
				States: []world.DialogueState{
					{
						Name:      "after_reading_journals",
						Condition: world.Condition{HasFlags: []string{"read_journals"}},
						Node: world.DialogueNode{
							Text: "You have been reading my journals.",
							Options: []world.DialogueOption{
								{
									Prompt:   "Ask about the portrait",
									Response: "Look behind the portrait, and take what you find in the desk.",
									Actions: []world.Action{
										{Type: world.ActionSetFlag, Flag: "professor_hint"},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	if err := w.Index(); err != nil {
		t.Fatalf("failed to index test world: %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("test world is invalid: %v", err)
	}
	return w
}
