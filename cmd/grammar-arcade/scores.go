package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grammar-arcade/internal/registry"
	"github.com/vovakirdan/grammar-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show your results for a mode",
	Long: `Display recent results, the best time and completion state for
the specified mode and the current user (see --user).

Examples:
  grammar-arcade scores runner
  grammar-arcade scores racing --user alice`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'grammar-arcade list' to see available modes.")
		os.Exit(1)
	}

	// Get mode title
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := store.Stats(ctx, flagUser, modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	results, err := store.RecentResults(ctx, flagUser, modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s (%s)\n", title, flagUser)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'grammar-arcade play %s' to record the first one!\n", modeID)
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-8s  %-9s  %s\n", "Date", "Score", "Time", "Result")
	fmt.Printf("  %-16s  %-8s  %-9s  %s\n", "----", "-----", "----", "------")

	for _, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Printf("  %-16s  %-8d  %-9s  %s\n",
			r.PlayedAt.Format("2006-01-02 15:04"),
			r.Score,
			fmt.Sprintf("%.1fs", r.Elapsed),
			outcome)
	}

	fmt.Println()
	fmt.Printf("Sessions: %d  Wins: %d  High score: %d\n", stats.Sessions, stats.Wins, stats.HighScore)
	if stats.BestTime > 0 {
		fmt.Printf("Best time: %.1fs\n", stats.BestTime)
	}
	if stats.Completed {
		fmt.Println("Mode completed ✓")
	}
}
