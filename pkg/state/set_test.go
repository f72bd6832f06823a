package state

import (
	"encoding/json"
	"testing"
)

func TestStringSet_MarshalSorted(t *testing.T) {
	s := NewStringSet("gamma", "alpha", "beta")
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["alpha","beta","gamma"]` {
		t.Errorf("unexpected serialization: %s", data)
	}
}

func TestStringSet_UnmarshalDeduplicates(t *testing.T) {
	var s StringSet
	if err := json.Unmarshal([]byte(`["a","b","a"]`), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(s) != 2 {
		t.Errorf("expected 2 members, got %d", len(s))
	}
	if !s.Has("a") || !s.Has("b") {
		t.Error("expected members a and b")
	}
}

func TestStringSet_EmptyMarshalsAsArray(t *testing.T) {
	data, err := json.Marshal(make(StringSet))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("expected empty array, got %s", data)
	}
}
