package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Scaffold a new game content directory",
	Long:  "Creates a playable sample game (a study with a hidden passage) to edit into your own.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "my-game"
		if len(args) == 1 {
			dir = args[0]
		}
		if _, err := os.Stat(dir); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", dir)
		}

		for path, content := range sampleGame {
			full := filepath.Join(dir, path)
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", filepath.Dir(full), err)
			}
			if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", full, err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s. Try it with:\n\n  fable play %s\n", dir, dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}

/// sampleGame is a complete small game: a locked study, a hidden key slot
// behind a portrait, and a professor whose dialogue changes once the player
// has read the journals. It is meant as a worked example of the content
// format, not a catalogue of every feature.
var sampleGame = map[string]string{
	"game.yaml": `title: The Locked Study
author: you
version: 0.1.0
description: A small mystery about a portrait that hangs slightly crooked.
starting_scene: study
`,

	"scenes/study.yaml": `name: The Study
description: >
  Dust hangs in the lamplight. A stern portrait hangs slightly crooked on
  the east wall, and a heavy oak desk sits beneath the window.
states:
  - condition:
      has_flags: [secret_passage_revealed]
    description: >
      The portrait stands swung away from the wall. Behind it, a narrow
      passage breathes cold air into the study.
exits:
  - name: hallway
    target: hallway
    description: A door opens onto the hallway.
  - name: secret_passage
    target: archive
    description: A narrow passage behind the portrait.
    hidden: true
objects:
  - id: portrait
    description: >
      A scowling founder in oils. When you lift one corner, a small brass
      slot shows in the plaster behind it.
    movable: true
    reveals: [hidden_key_slot]
  - id: hidden_key_slot
    description: A small brass keyhole, flush with the wall.
    hidden: true
  - id: desk
    description: The drawer is stuck half-open. A brass key glints inside.
    contains: [brass_key]
events:
  - trigger: use brass_key on hidden_key_slot
    condition:
      lacks_flags: [secret_passage_revealed]
    message: >
      The key turns with a soft click. The portrait swings away from the
      wall, revealing a narrow passage.
    set_flags: [secret_passage_revealed]
    reveals: [secret_passage]
`,

	"scenes/hallway.yaml": `name: The Hallway
description: >
  A long hallway lined with cabinets. Field journals are piled on a side
  table, and the professor stands over them, pretending not to watch you.
exits:
  - name: study
    target: study
    description: The study door.
objects:
  - id: journals
    description: Years of field notes in a cramped, impatient hand.
events:
  - trigger: read journals
    message: >
      You leaf through the journals. One entry circles the study's portrait
      twice, in red ink.
    set_flags: [read_journals]
characters:
  - id: professor
`,

	"scenes/archive.yaml": `name: The Hidden Archive
description: >
  Shelves of uncatalogued papers stretch into the dark. Whatever the
  founder wanted forgotten, it was filed here. A red-bound dossier lies
  on the nearest shelf.
exits:
  - name: study
    target: study
    description: Back through the passage.
items:
  - id: dossier
locked_items:
  - item: dossier
    condition:
      lacks_flags: [professor_hint]
    message: You hesitate. Better to hear the professor out first.
`,

	"items/dossier.yaml": `name: red dossier
description: A red-bound dossier, its string tie knotted twice.
`,

	"items/brass_key.yaml": `name: brass key
description: A small brass key, colder and heavier than it looks.
`,

	"characters/professor.yaml": `name: Professor Hale
description: Grey-haired, ink-stained, and visibly annoyed to have company.
dialogue:
  text: '"Yes? I am rather busy."'
  options:
    - prompt: Ask about the study
      response: '"Nothing of note in there. Do close the door behind you."'
    - prompt: Ask about the journals
      response: '"Old field notes. Read them if you must."'
states:
  - name: after_reading_journals
    condition:
      has_flags: [read_journals]
    dialogue:
      text: '"You have been reading my journals." The professor narrows their eyes.'
      options:
        - prompt: Ask about the portrait
          response: >
            "So you noticed the red ink. Fine. Look behind the portrait,
            and take what you find in the desk."
          actions:
            - type: set_flag
              flag: professor_hint
`,
}
