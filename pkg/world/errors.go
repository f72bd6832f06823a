package world

import "fmt"

// RefError reports a reference to an entity that does not exist in the
// world. It carries the offending identifier so callers can surface it.
type RefError struct {
	Kind string // "scene", "item", "object", "exit", "character"
	ID   string
	From string // where the dangling reference was declared
}

func (e *RefError) Error() string {
	if e.From != "" {
		return fmt.Sprintf("%s %q referenced from %s does not exist", e.Kind, e.ID, e.From)
	}
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.ID)
}
