package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/isotopegame/isotope/internal/config"
	"github.com/isotopegame/isotope/internal/econ"
	"github.com/isotopegame/isotope/internal/platform/tui"
	"github.com/isotopegame/isotope/internal/save"
	"github.com/isotopegame/isotope/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game. Progress is saved automatically and on exit.

Controls:
  1/2/3      - Buy alpha/beta/gamma particles
  Z/X/C      - Buy upgrades
  V/B        - Buy boosters
  P          - Prestige (reset for a permanent bonus)
  Ctrl+S     - Save now
  ?          - Toggle full help
  Q/Ctrl+C   - Save and quit

Examples:
  isotope play
  isotope play --fps 60
  isotope play --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := log.New(os.Stderr)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}

	// Get terminal size early for layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cat := econ.DefaultCatalog()
	cat.Validate(logger)
	rules := cfg.Rules()

	adapter, err := save.New(flagSavePath, cat, rules, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sess := econ.NewSession(econ.NewEngine(cat, rules), adapter, nil)

	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		FPS:      flagFPS,
		Autosave: cfg.AutosaveInterval(),
		Width:    width,
		Height:   height,
	}

	runErr := tui.Run(sess, store, opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
