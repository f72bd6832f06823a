package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeGame lays out a content directory from a path -> YAML map.
func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	return dir
}

func minimalGame() map[string]string {
	return map[string]string{
		"game.yaml": `title: Test Game
author: tester
starting_scene: cellar
`,
		"scenes/cellar.yaml": `description: A damp cellar.
exits:
  - name: stairs
    target: kitchen
`,
		"scenes/kitchen.yaml": `description: A warm kitchen.
items:
  - id: ladle
characters:
  - id: cook
`,
		"items/ladle.yaml": `name: ladle
description: A dented ladle.
`,
		"characters/cook.yaml": `name: The Cook
dialogue:
  text: Out of my kitchen.
`,
	}
}

func TestLoad(t *testing.T) {
	dir := writeGame(t, minimalGame())

	w, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if w.Title != "Test Game" {
		t.Errorf("expected title 'Test Game', got %q", w.Title)
	}
	if w.StartScene != "cellar" {
		t.Errorf("expected start scene 'cellar', got %q", w.StartScene)
	}

	// IDs default to file names; declaration order is lexical.
	if len(w.Scenes) != 2 || w.Scenes[0].ID != "cellar" || w.Scenes[1].ID != "kitchen" {
		t.Fatalf("unexpected scenes: %+v", w.Scenes)
	}
	if _, ok := w.Item("ladle"); !ok {
		t.Error("item 'ladle' not loaded")
	}
	ch, ok := w.Character("cook")
	if !ok {
		t.Fatal("character 'cook' not loaded")
	}
	if ch.Name != "The Cook" {
		t.Errorf("expected name 'The Cook', got %q", ch.Name)
	}
}

func TestLoad_ExplicitIDWinsOverFilename(t *testing.T) {
	files := minimalGame()
	files["scenes/cellar.yaml"] = `id: wine_cellar
description: Racks of dusty bottles.
`
	files["game.yaml"] = `title: Test Game
starting_scene: wine_cellar
`
	// Fix the dangling exit from the renamed scene's neighbors.
	files["scenes/kitchen.yaml"] = `description: A warm kitchen.
`
	dir := writeGame(t, files)

	w, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := w.Scene("wine_cellar"); !ok {
		t.Error("explicit id not honored")
	}
	if _, ok := w.Scene("cellar"); ok {
		t.Error("filename id used despite explicit id")
	}
}

func TestLoad_CharacterNameDefaultsToID(t *testing.T) {
	files := minimalGame()
	files["characters/cook.yaml"] = `dialogue:
  text: Out of my kitchen.
`
	dir := writeGame(t, files)

	w, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ch, _ := w.Character("cook")
	if ch.Name != "cook" {
		t.Errorf("expected name to default to id, got %q", ch.Name)
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	files := minimalGame()
	files["scenes/cellar.yaml"] = `description: A damp cellar.
exits:
  - name: stairs
    target: kitchen
    descriptino: typo
`
	dir := writeGame(t, files)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "cellar.yaml") {
		t.Errorf("error should name the offending file: %v", err)
	}
}

func TestLoad_EmptyFileRejected(t *testing.T) {
	files := minimalGame()
	files["scenes/void.yaml"] = ""
	dir := writeGame(t, files)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for empty scene file")
	}
	if !strings.Contains(err.Error(), "void.yaml") {
		t.Errorf("error should name the offending file: %v", err)
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("error should say the file is empty, got: %v", err)
	}
}

func TestLoad_DanglingReferenceRejected(t *testing.T) {
	files := minimalGame()
	files["scenes/cellar.yaml"] = `description: A damp cellar.
exits:
  - name: stairs
    target: attic
`
	dir := writeGame(t, files)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for dangling exit target")
	}
	if !strings.Contains(err.Error(), "attic") {
		t.Errorf("error should name the missing scene: %v", err)
	}
}

func TestLoad_DuplicateIDRejected(t *testing.T) {
	files := minimalGame()
	files["scenes/pantry.yaml"] = `id: kitchen
description: Duplicate of the kitchen.
`
	dir := writeGame(t, files)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for duplicate scene id")
	}
}

func TestLoad_MissingGameFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing game.yaml")
	}
}

func TestLoad_MissingOptionalDirectories(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.yaml": `title: Bare Game
starting_scene: only
`,
		"scenes/only.yaml": `description: The only room.
`,
	})

	w, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(w.Items) != 0 || len(w.Characters) != 0 {
		t.Error("expected no items or characters")
	}
}
