package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fable-engine/fable/internal/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate [game-dir]",
	Short: "Validate a game content directory",
	Long:  "Loads the game and checks referential integrity: exit targets, reveals lists, item placements, character references and dialogue actions.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		w, err := loader.Load(dir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d scenes, %d items, %d characters\n",
			w.Title, len(w.Scenes), len(w.Items), len(w.Characters))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
