// grammar-arcade is a terminal arcade for practicing grammar: answer
// multiple-choice questions to keep running or racing.
//
// Usage:
//
//	grammar-arcade list              - List available modes
//	grammar-arcade play <mode>       - Play a mode
//	grammar-arcade menu              - Start menu to pick modes interactively
//	grammar-arcade scores <mode>     - Show your results for a mode
//	grammar-arcade serve             - Start the HTTP API server
//	grammar-arcade ssh               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.grammar-arcade/progress.db)
//	--user <id>     - Player identity for progress tracking (default: local)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/grammar-arcade/internal/games/racing"
	_ "github.com/vovakirdan/grammar-arcade/internal/games/runner"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagUser   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "grammar-arcade",
	Short: "Grammar Arcade - Practice grammar by playing in your terminal",
	Long: `Grammar Arcade turns grammar drills into terminal mini-games.
Each obstacle or speed boost is a multiple-choice question; answer
correctly to keep going.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  scores   - View your results and best times
  serve    - Start the HTTP API server
  ssh      - Start SSH server for remote play

Examples:
  grammar-arcade list
  grammar-arcade play runner
  grammar-arcade play racing --user alice
  grammar-arcade menu
  grammar-arcade ssh --ssh :2222
  grammar-arcade scores runner`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.grammar-arcade/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "local", "Player identity for progress tracking")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
}
