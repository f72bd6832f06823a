package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fable",
	Short: "Fable is an engine for YAML-authored text adventures",
	Long: `Fable turns a directory of declarative YAML content (scenes, items,
characters and events) into an interactive text adventure session.`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
