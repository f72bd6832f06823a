package world

// Scene is a single location in the game world. All fields are read-only
// after load; anything that varies during play is derived from the flag
// state, never written back here.
type Scene struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description" yaml:"description"`

	// States are description overrides evaluated in declaration order.
	// The first state whose condition is met replaces the base description.
	States []StateOverride `json:"states,omitempty" yaml:"states,omitempty"`

	Exits      []Exit        `json:"exits,omitempty" yaml:"exits,omitempty"`
	Objects    []Object      `json:"objects,omitempty" yaml:"objects,omitempty"`
	Items      []ScenePlaced `json:"items,omitempty" yaml:"items,omitempty"`
	ItemLocks  []ItemLock    `json:"locked_items,omitempty" yaml:"locked_items,omitempty"`
	Events     []Event       `json:"events,omitempty" yaml:"events,omitempty"`
	Characters []Presence    `json:"characters,omitempty" yaml:"characters,omitempty"`
}

// ItemLockFor returns this scene's lock for an item, or nil.
func (s *Scene) ItemLockFor(id string) *ItemLock {
	for i := range s.ItemLocks {
		if s.ItemLocks[i].Item == id {
			return &s.ItemLocks[i]
		}
	}
	return nil
}

// StateOverride is a conditional replacement for a scene description.
type StateOverride struct {
	Condition   Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	Description string    `json:"description" yaml:"description"`
}

// Exit leads from a scene to a target scene. Hidden exits are excluded from
// rendering and matching until revealed by an Object's reveals list. A
// locked exit stays visible but refuses passage while its lock is engaged.
type Exit struct {
	Name        string `json:"name" yaml:"name"`
	Target      string `json:"target" yaml:"target"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Lock        *Lock  `json:"locked,omitempty" yaml:"locked,omitempty"`
}

// Lock refuses an interaction while Condition holds, surfacing Message (or
// a default) in place of the action. An empty condition is a lock that
// never opens.
type Lock struct {
	Condition Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// Engaged reports whether the lock currently refuses the interaction.
func (l *Lock) Engaged(flags FlagView) bool {
	return l != nil && l.Condition.Met(flags)
}

// ItemLock refuses pickup of one item in a scene while its condition holds.
type ItemLock struct {
	Item      string    `json:"item" yaml:"item"`
	Condition Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// Object is scenery the player can examine or move. Examining (or moving,
// for movable objects) fires its Reveals and Contains lists.
type Object struct {
	ID          string   `json:"id" yaml:"id"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Movable     bool     `json:"movable,omitempty" yaml:"movable,omitempty"`
	Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Contains    []string `json:"contains,omitempty" yaml:"contains,omitempty"` // item IDs uncovered by this object
	Reveals     []string `json:"reveals,omitempty" yaml:"reveals,omitempty"`   // exit names / object IDs made visible
}

// ScenePlaced places a world item in a scene. Hidden items stay out of the
// effective scene until revealed.
type ScenePlaced struct {
	ID     string `json:"id" yaml:"id"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Presence declares that a character appears in a scene when its condition
// is met.
type Presence struct {
	ID        string    `json:"id" yaml:"id"`
	Condition Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// Event binds a trigger phrase to a scripted outcome. Reveals lets an event
// uncover hidden exits or objects the same way examining an object does,
// which is how authors open a secret passage from a key turn rather than a
// glance.
type Event struct {
	Trigger     string    `json:"trigger" yaml:"trigger"`
	Condition   Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	Message     string    `json:"message,omitempty" yaml:"message,omitempty"`
	SetFlags    []string  `json:"set_flags,omitempty" yaml:"set_flags,omitempty"`
	GiveItems   []string  `json:"give_items,omitempty" yaml:"give_items,omitempty"`
	Reveals     []string  `json:"reveals,omitempty" yaml:"reveals,omitempty"`
	ChangeScene string    `json:"change_scene,omitempty" yaml:"change_scene,omitempty"`
}

// Actions flattens the event outcome into the executor's action list.
func (e *Event) Actions() []Action {
	var actions []Action
	for _, f := range e.SetFlags {
		actions = append(actions, Action{Type: ActionSetFlag, Flag: f})
	}
	for _, id := range e.GiveItems {
		actions = append(actions, Action{Type: ActionGiveItem, Item: id})
	}
	if e.ChangeScene != "" {
		actions = append(actions, Action{Type: ActionChangeScene, Scene: e.ChangeScene})
	}
	return actions
}
