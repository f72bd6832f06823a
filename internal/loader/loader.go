// Package loader reads authored game content from a directory of YAML files
// and produces an immutable, validated world. Layout:
//
//	game.yaml        top-level metadata and the starting scene
//	scenes/*.yaml    one scene per file, id defaults to the file name
//	items/*.yaml     one item per file, id defaults to the file name
//	characters/*.yaml one character per file, id defaults to the file name
//
// Malformed content and dangling references are load errors; the engine
// assumes referential integrity and never re-checks it at runtime.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fable-engine/fable/pkg/world"
)

const gameFile = "game.yaml"

type gameMeta struct {
	Title         string `yaml:"title"`
	Author        string `yaml:"author"`
	Version       string `yaml:"version"`
	Description   string `yaml:"description"`
	StartingScene string `yaml:"starting_scene"`
}

// Load reads a game directory into a fully indexed and validated World.
func Load(dir string) (*world.World, error) {
	data, err := os.ReadFile(filepath.Join(dir, gameFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", gameFile, err)
	}

	var meta gameMeta
	if err := strictUnmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", gameFile, err)
	}

	w := &world.World{
		Title:       meta.Title,
		Author:      meta.Author,
		Version:     meta.Version,
		Description: meta.Description,
		StartScene:  meta.StartingScene,
	}

	if err := loadEach(filepath.Join(dir, "scenes"), func(id string, data []byte) error {
		sc := &world.Scene{}
		if err := strictUnmarshal(data, sc); err != nil {
			return err
		}
		if sc.ID == "" {
			sc.ID = id
		}
		w.Scenes = append(w.Scenes, sc)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadEach(filepath.Join(dir, "items"), func(id string, data []byte) error {
		it := &world.Item{}
		if err := strictUnmarshal(data, it); err != nil {
			return err
		}
		if it.ID == "" {
			it.ID = id
		}
		w.Items = append(w.Items, it)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadEach(filepath.Join(dir, "characters"), func(id string, data []byte) error {
		ch := &world.Character{}
		if err := strictUnmarshal(data, ch); err != nil {
			return err
		}
		if ch.ID == "" {
			ch.ID = id
		}
		if ch.Name == "" {
			ch.Name = ch.ID
		}
		w.Characters = append(w.Characters, ch)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := w.Index(); err != nil {
		return nil, fmt.Errorf("invalid game content: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game content: %w", err)
	}
	return w, nil
}

// loadEach walks a content directory in lexical order, so declaration order
// is stable across loads. A missing directory is not an error; a game can
// have no items or characters.
func loadEach(dir string, fn func(id string, data []byte) error) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := fn(id, data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func isYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// strictUnmarshal rejects unknown fields, so typos in authored content fail
// at load time instead of silently dropping behavior. An empty document is
// named as such rather than surfacing a bare EOF.
func strictUnmarshal(data []byte, out any) error {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("file is empty")
		}
		return err
	}
	return nil
}
