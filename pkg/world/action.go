package world

import "fmt"

// ActionType discriminates the Action variant.
type ActionType string

const (
	ActionSetFlag     ActionType = "set_flag"
	ActionClearFlag   ActionType = "clear_flag"
	ActionGiveItem    ActionType = "give_item"
	ActionTakeItem    ActionType = "take_item"
	ActionChangeScene ActionType = "change_scene"
)

// Action is a single state mutation attached to a dialogue option or event.
// Exactly one of Flag, Item or Scene is set, matching the Type.
type Action struct {
	Type  ActionType `json:"type" yaml:"type"`
	Flag  string     `json:"flag,omitempty" yaml:"flag,omitempty"`
	Item  string     `json:"item,omitempty" yaml:"item,omitempty"`
	Scene string     `json:"scene,omitempty" yaml:"scene,omitempty"`
}

// Validate checks that the action's type is known and its argument is set.
func (a Action) Validate() error {
	switch a.Type {
	case ActionSetFlag, ActionClearFlag:
		if a.Flag == "" {
			return fmt.Errorf("action %s: missing flag name", a.Type)
		}
	case ActionGiveItem, ActionTakeItem:
		if a.Item == "" {
			return fmt.Errorf("action %s: missing item id", a.Type)
		}
	case ActionChangeScene:
		if a.Scene == "" {
			return fmt.Errorf("action %s: missing scene id", a.Type)
		}
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
	return nil
}
