package world

// FlagView is the minimal read interface a Condition needs to evaluate.
// The state package implements it; declaring it here avoids an import cycle.
type FlagView interface {
	HasFlag(name string) bool
}

// Condition gates content on the player's flag state. It is the conjunction
// of two optional clauses: every flag in HasFlags must be set, and every flag
// in LacksFlags must be unset. An empty condition is always true.
type Condition struct {
	HasFlags   []string `json:"has_flags,omitempty" yaml:"has_flags,omitempty"`
	LacksFlags []string `json:"lacks_flags,omitempty" yaml:"lacks_flags,omitempty"`
}

// Met reports whether the condition holds for the given flag state.
// It is pure and costs O(len(HasFlags)+len(LacksFlags)).
func (c Condition) Met(flags FlagView) bool {
	for _, f := range c.HasFlags {
		if !flags.HasFlag(f) {
			return false
		}
	}
	for _, f := range c.LacksFlags {
		if flags.HasFlag(f) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the condition has no clauses.
func (c Condition) IsEmpty() bool {
	return len(c.HasFlags) == 0 && len(c.LacksFlags) == 0
}
