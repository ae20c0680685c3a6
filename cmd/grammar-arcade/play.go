package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grammar-arcade/internal/core"
	"github.com/vovakirdan/grammar-arcade/internal/games/racing"
	"github.com/vovakirdan/grammar-arcade/internal/games/runner"
	"github.com/vovakirdan/grammar-arcade/internal/platform/tui"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
	"github.com/vovakirdan/grammar-arcade/internal/registry"
	"github.com/vovakirdan/grammar-arcade/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  1-4        - Answer the current question
  Enter      - Start
  R          - Restart (after a round ends)
  B/Esc      - Back to menu (between rounds)
  Q/Ctrl+C   - Quit

Examples:
  grammar-arcade play runner
  grammar-arcade play racing --user alice
  grammar-arcade play runner --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom mode config YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'grammar-arcade list' to see available modes.")
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open progress storage; it doubles as the question source
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - built-in questions still work
		store = nil
	}

	wireModes(store)

	// Create mode instance
	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running mode: %v\n", runErr)
		os.Exit(1)
	}
}

// wireModes injects the shared dependencies into both mode packages.
func wireModes(store *storage.Store) {
	var source quiz.Source
	if store != nil {
		source = store
	}

	runner.SetConfigPath(flagConfig)
	runner.SetSource(source)
	runner.SetUser(flagUser)

	racing.SetConfigPath(flagConfig)
	racing.SetSource(source)
	racing.SetUser(flagUser)

	if store != nil {
		runner.SetStore(store)
		racing.SetStore(store)
	}
}
