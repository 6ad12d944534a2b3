package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/isotopegame/isotope/internal/config"
	"github.com/isotopegame/isotope/internal/econ"
	"github.com/isotopegame/isotope/internal/save"
	"github.com/isotopegame/isotope/internal/storage"
)

var flagHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save file and start over",
	Long: `Delete the save file. The next 'isotope play' starts a fresh game.
Run history is kept unless --history is given.

Examples:
  isotope reset
  isotope reset --history`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagHistory, "history", false, "Also clear recorded run history")
}

func runReset(cmd *cobra.Command, args []string) {
	logger := log.New(os.Stderr)

	adapter, err := save.New(flagSavePath, econ.DefaultCatalog(), config.DefaultConfig().Rules(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := adapter.Delete(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Save file removed: %s\n", adapter.Path())

	if !flagHistory {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Run history cleared.")
}
