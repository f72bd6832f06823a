package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fable-engine/fable/pkg/state"
)

// restoreFromFile reads a local save snapshot.
func restoreFromFile(path string) (*state.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	return state.RestoreSnapshot(data)
}

// resumeState loads the snapshot at path for a resumed session. A save file
// that does not exist yet means a fresh start; any other failure is
// surfaced, so a corrupt save is reported instead of silently overwritten
// by the next in-game save.
func resumeState(path string) (*state.GameState, error) {
	if path == "" {
		return nil, nil
	}
	gs, err := restoreFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return gs, err
}

// writeSaveFile writes a snapshot via a temp file and rename, so a crash
// mid-write never leaves a corrupt save behind.
func writeSaveFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fable-save-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close save file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
