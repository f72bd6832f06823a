package state

import (
	"encoding/json"
	"testing"
)

func TestGameState_SnapshotRoundTrip(t *testing.T) {
	gs := NewGameState("study")
	gs.Game = "locked-study"
	gs.SetFlag("read_journals")
	gs.SetFlag("secret_passage_revealed")
	gs.AddItem("brass_key")
	gs.MarkRevealed("hidden_key_slot")

	data, err := gs.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}

	restored, err := RestoreSnapshot(data)
	if err != nil {
		t.Fatalf("RestoreSnapshot() failed: %v", err)
	}

	if restored.ID != gs.ID {
		t.Errorf("expected ID %v, got %v", gs.ID, restored.ID)
	}
	if restored.Game != "locked-study" {
		t.Errorf("expected game 'locked-study', got %q", restored.Game)
	}
	if restored.Scene != "study" {
		t.Errorf("expected scene 'study', got %q", restored.Scene)
	}
	if !restored.HasFlag("read_journals") || !restored.HasFlag("secret_passage_revealed") {
		t.Error("authored flags did not survive the round trip")
	}
	if !restored.HasItem("brass_key") {
		t.Error("inventory did not survive the round trip")
	}

	// Engine bookkeeping travels inside the flag set.
	if !restored.Revealed("hidden_key_slot") {
		t.Error("reveal mark did not survive the round trip")
	}
	if !restored.Taken("brass_key") {
		t.Error("taken mark did not survive the round trip")
	}
}

func TestGameState_SnapshotIsSorted(t *testing.T) {
	gs := NewGameState("study")
	gs.SetFlag("zebra")
	gs.SetFlag("apple")
	gs.SetFlag("mango")

	data, err := gs.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() failed: %v", err)
	}

	var doc struct {
		Flags []string `json:"flags"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to parse snapshot: %v", err)
	}
	want := []string{"apple", "mango", "zebra"}
	if len(doc.Flags) != len(want) {
		t.Fatalf("expected %d flags, got %d", len(want), len(doc.Flags))
	}
	for i, f := range want {
		if doc.Flags[i] != f {
			t.Errorf("flags[%d] = %q, want %q", i, doc.Flags[i], f)
		}
	}
}

func TestRestoreSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed json", data: `{"scene": `},
		{name: "missing scene", data: `{"flags": [], "inventory": []}`},
		{name: "empty scene", data: `{"scene": "", "flags": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RestoreSnapshot([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRestoreSnapshot_InitializesNilSets(t *testing.T) {
	gs, err := RestoreSnapshot([]byte(`{"scene": "study"}`))
	if err != nil {
		t.Fatalf("RestoreSnapshot() failed: %v", err)
	}
	if gs.Flags == nil || gs.Inventory == nil {
		t.Error("expected flags and inventory to be initialized")
	}
	gs.SetFlag("safe_to_mutate")
	gs.AddItem("safe_to_mutate")
}

func TestGameState_CloneIsIndependent(t *testing.T) {
	gs := NewGameState("study")
	gs.SetFlag("original")
	gs.AddItem("rope")

	clone := gs.Clone()
	clone.SetFlag("cloned")
	clone.RemoveItem("rope")
	clone.Scene = "kitchen"

	if gs.HasFlag("cloned") {
		t.Error("mutating the clone leaked a flag into the original")
	}
	if !gs.HasItem("rope") {
		t.Error("mutating the clone removed an item from the original")
	}
	if gs.Scene != "study" {
		t.Errorf("expected scene 'study', got %q", gs.Scene)
	}
}

func TestGameState_RemoveItemKeepsTakenMark(t *testing.T) {
	gs := NewGameState("study")
	gs.AddItem("brass_key")
	gs.RemoveItem("brass_key")

	if gs.HasItem("brass_key") {
		t.Error("expected item to be gone from inventory")
	}
	if !gs.Taken("brass_key") {
		t.Error("expected taken mark to persist after removal")
	}
}
