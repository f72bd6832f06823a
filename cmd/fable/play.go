package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fable-engine/fable/internal/loader"
	"github.com/fable-engine/fable/pkg/engine"
)

var playSaveFile string

var playCmd = &cobra.Command{
	Use:   "play [game-dir]",
	Short: "Play a game from a content directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		w, err := loader.Load(dir)
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}

		gs, err := resumeState(playSaveFile)
		if err != nil {
			return fmt.Errorf("failed to load save %s: %w", playSaveFile, err)
		}

		sess, err := engine.NewSession(w, gs)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		p := tea.NewProgram(newPlayUI(w, sess, playSaveFile), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringVarP(&playSaveFile, "save", "s", "", "save file to resume from and write to")
	rootCmd.AddCommand(playCmd)
}
