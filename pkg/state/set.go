package state

import (
	"encoding/json"
	"sort"
)

// StringSet is a presence-only set of identifiers. It serializes as a sorted
// JSON array so snapshots are stable and diffable.
type StringSet map[string]struct{}

// NewStringSet builds a set from its members.
func NewStringSet(members ...string) StringSet {
	s := make(StringSet, len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

func (s StringSet) Add(v string)      { s[v] = struct{}{} }
func (s StringSet) Remove(v string)   { delete(s, v) }
func (s StringSet) Has(v string) bool { _, ok := s[v]; return ok }

// Clone returns an independent copy of the set.
func (s StringSet) Clone() StringSet {
	c := make(StringSet, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// Sorted returns the members in lexical order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var members []string
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	*s = NewStringSet(members...)
	return nil
}
