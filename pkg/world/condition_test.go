package world

import "testing"

// flagMap is a minimal FlagView for tests.
type flagMap map[string]bool

func (f flagMap) HasFlag(name string) bool { return f[name] }

func TestCondition_Met(t *testing.T) {
	tests := []struct {
		name  string
		cond  Condition
		flags flagMap
		want  bool
	}{
		{
			name:  "empty condition is always true",
			cond:  Condition{},
			flags: flagMap{},
			want:  true,
		},
		{
			name:  "empty condition true even with flags set",
			cond:  Condition{},
			flags: flagMap{"anything": true},
			want:  true,
		},
		{
			name:  "single has_flags present",
			cond:  Condition{HasFlags: []string{"met_guard"}},
			flags: flagMap{"met_guard": true},
			want:  true,
		},
		{
			name:  "single has_flags missing",
			cond:  Condition{HasFlags: []string{"met_guard"}},
			flags: flagMap{},
			want:  false,
		},
		{
			name:  "all has_flags must be present",
			cond:  Condition{HasFlags: []string{"met_guard", "has_map"}},
			flags: flagMap{"met_guard": true},
			want:  false,
		},
		{
			name:  "single lacks_flags absent",
			cond:  Condition{LacksFlags: []string{"door_open"}},
			flags: flagMap{},
			want:  true,
		},
		{
			name:  "single lacks_flags present",
			cond:  Condition{LacksFlags: []string{"door_open"}},
			flags: flagMap{"door_open": true},
			want:  false,
		},
		{
			name: "conjunction of both clauses",
			cond: Condition{
				HasFlags:   []string{"met_guard"},
				LacksFlags: []string{"door_open"},
			},
			flags: flagMap{"met_guard": true},
			want:  true,
		},
		{
			name: "conjunction fails on lacks clause",
			cond: Condition{
				HasFlags:   []string{"met_guard"},
				LacksFlags: []string{"door_open"},
			},
			flags: flagMap{"met_guard": true, "door_open": true},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.Met(tt.flags); got != tt.want {
				t.Errorf("Met() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCondition_IsEmpty(t *testing.T) {
	if !(Condition{}).IsEmpty() {
		t.Error("expected zero condition to be empty")
	}
	if (Condition{HasFlags: []string{"x"}}).IsEmpty() {
		t.Error("expected condition with has_flags to be non-empty")
	}
	if (Condition{LacksFlags: []string{"x"}}).IsEmpty() {
		t.Error("expected condition with lacks_flags to be non-empty")
	}
}
