package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fable-engine/fable/pkg/state"
	"github.com/fable-engine/fable/pkg/world"
)

func TestMockStorage_SaveAndLoadGameState(t *testing.T) {
	mock := NewMockStorage()
	ctx := context.Background()

	gs := state.NewGameState("study")
	gs.Game = "locked-study"
	gs.SetFlag("read_journals")
	gs.AddItem("brass_key")

	if err := mock.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState failed: %v", err)
	}

	loaded, err := mock.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("LoadGameState failed: %v", err)
	}
	if loaded.ID != gs.ID || loaded.Scene != "study" || loaded.Game != "locked-study" {
		t.Errorf("loaded state differs: %+v", loaded)
	}
	if !loaded.HasFlag("read_journals") || !loaded.HasItem("brass_key") {
		t.Error("flags or inventory lost")
	}
}

func TestMockStorage_ReturnsClones(t *testing.T) {
	mock := NewMockStorage()
	ctx := context.Background()

	gs := state.NewGameState("study")
	if err := mock.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState failed: %v", err)
	}

	// Mutating the caller's copy after saving must not affect the store.
	gs.SetFlag("mutated_after_save")
	loaded, err := mock.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("LoadGameState failed: %v", err)
	}
	if loaded.HasFlag("mutated_after_save") {
		t.Error("store shares memory with the caller")
	}

	// Same for the loaded copy.
	loaded.SetFlag("mutated_after_load")
	again, _ := mock.LoadGameState(ctx, gs.ID)
	if again.HasFlag("mutated_after_load") {
		t.Error("loads share memory with each other")
	}
}

func TestMockStorage_LoadMissing(t *testing.T) {
	mock := NewMockStorage()
	_, err := mock.LoadGameState(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMockStorage_Delete(t *testing.T) {
	mock := NewMockStorage()
	ctx := context.Background()

	gs := state.NewGameState("study")
	if err := mock.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState failed: %v", err)
	}
	if err := mock.DeleteGameState(ctx, gs.ID); err != nil {
		t.Fatalf("DeleteGameState failed: %v", err)
	}
	if _, err := mock.LoadGameState(ctx, gs.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMockStorage_Worlds(t *testing.T) {
	mock := NewMockStorage()
	ctx := context.Background()

	mock.AddWorld("locked-study", &world.World{Title: "The Locked Study"})

	games, err := mock.ListGames(ctx)
	if err != nil {
		t.Fatalf("ListGames failed: %v", err)
	}
	if games["The Locked Study"] != "locked-study" {
		t.Errorf("unexpected listing: %v", games)
	}

	if _, err := mock.LoadWorld(ctx, "locked-study"); err != nil {
		t.Errorf("LoadWorld failed: %v", err)
	}
	if _, err := mock.LoadWorld(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMockStorage_PingError(t *testing.T) {
	mock := NewMockStorage()
	if err := mock.Ping(context.Background()); err != nil {
		t.Errorf("expected healthy ping, got %v", err)
	}
	boom := errors.New("boom")
	mock.SetPingError(boom)
	if err := mock.Ping(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected configured error, got %v", err)
	}
}
