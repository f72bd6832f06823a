package world

// Character is someone the player can talk to. Dialogue is the default
// conversation; States are conditional replacements evaluated in declaration
// order, first match wins.
type Character struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Dialogue    DialogueNode    `json:"dialogue" yaml:"dialogue"`
	States      []DialogueState `json:"states,omitempty" yaml:"states,omitempty"`
}

// DialogueState is a named, condition-guarded replacement dialogue.
type DialogueState struct {
	Name      string       `json:"name" yaml:"name"`
	Condition Condition    `json:"condition,omitempty" yaml:"condition,omitempty"`
	Node      DialogueNode `json:"dialogue" yaml:"dialogue"`
}

// DialogueNode is one screen of conversation: narrator text plus an ordered
// list of options the player can pick from.
type DialogueNode struct {
	Text    string           `json:"text" yaml:"text"`
	Options []DialogueOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// DialogueOption is a single player choice with the character's response and
// the actions applied when it is chosen.
type DialogueOption struct {
	Prompt   string   `json:"prompt" yaml:"prompt"`
	Response string   `json:"response,omitempty" yaml:"response,omitempty"`
	Actions  []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Item is something the player can carry. Placement in scenes and objects is
// declared on the scene side; once acquired, an item lives only in inventory.
// Fixed items can be examined but never picked up.
type Item struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Fixed       bool   `json:"fixed,omitempty" yaml:"fixed,omitempty"`
}

// DisplayName returns the item's name, falling back to its ID.
func (i *Item) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}
