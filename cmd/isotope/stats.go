package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isotopegame/isotope/internal/storage"
)

var flagLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run history and lifetime statistics",
	Long: `Display recorded prestige resets, recent play sessions, and
aggregate lifetime statistics.

Examples:
  isotope stats
  isotope stats --limit 20`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of history entries to show")
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Lifetime Statistics")
	fmt.Println()
	fmt.Printf("  Sessions played:   %d\n", stats.SessionCount)
	fmt.Printf("  Total playtime:    %s\n", stats.TotalPlaytime)
	fmt.Printf("  Best earnings:     $%.2f\n", stats.BestEarnings)
	fmt.Printf("  Prestige resets:   %d\n", stats.PrestigeCount)
	fmt.Printf("  Highest prestige:  %d\n", stats.HighestLevel)
	fmt.Println()

	prestiges, err := store.Prestiges(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving prestiges: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Prestiges")
	if len(prestiges) == 0 {
		fmt.Println("  No prestiges recorded yet.")
	} else {
		fmt.Printf("  %-6s  %-12s  %-14s  %s\n", "Level", "Cash spent", "Earnings", "Date")
		for _, e := range prestiges {
			fmt.Printf("  %-6d  %-12.2f  %-14.2f  %s\n",
				e.Level, e.CashSpent, e.TotalEarnings, e.CreatedAt.Format("2006-01-02 15:04"))
		}
	}
	fmt.Println()

	sessions, err := store.Sessions(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Sessions")
	if len(sessions) == 0 {
		fmt.Println("  No sessions recorded yet.")
		fmt.Println()
		fmt.Println("  Play 'isotope play' to start your first run!")
		return
	}
	fmt.Printf("  %-10s  %-12s  %-14s  %s\n", "Duration", "Cash", "Earnings", "Date")
	for _, e := range sessions {
		fmt.Printf("  %-10s  %-12.2f  %-14.2f  %s\n",
			formatDuration(e.DurationSecs), e.CashEnd, e.TotalEarnings,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func formatDuration(secs int) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	if secs < 3600 {
		return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%dh%02dm", secs/3600, (secs%3600)/60)
}
