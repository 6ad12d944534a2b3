// isotope is a terminal idle game about particle production.
//
// Usage:
//
//	isotope play             - Play the game
//	isotope stats            - Show run history and lifetime statistics
//	isotope reset            - Delete the save file
//
// Global flags:
//
//	--save <path>   - Set save file path (default: ~/.isotope/save.json)
//	--db <path>     - Set history database path (default: ~/.isotope/history.db)
//	--fps <rate>    - Set tick rate (default: 30)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSavePath string
	flagDBPath   string
	flagFPS      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "isotope",
	Short: "Isotope - An idle particle factory in your terminal",
	Long: `Isotope is a terminal idle game. Buy alpha, beta and gamma particles,
let them generate cash and feed each other, purchase upgrades, and
prestige to restart with a permanent production bonus.

Available commands:
  play     - Play the game
  stats    - View run history and lifetime statistics
  reset    - Delete the save file and start over

Examples:
  isotope play
  isotope play --fps 60
  isotope stats
  isotope reset --history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagSavePath, "save", "~/.isotope/save.json", "Path to save file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.isotope/history.db", "Path to history database")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
}
