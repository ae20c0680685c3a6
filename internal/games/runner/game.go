// Package runner implements the Grammar Runner mode: a side-scrolling
// obstacle run where each obstacle carries a grammar question. The
// correct answer launches a timed jump; a collision or a wrong answer
// ends the run.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/grammar-arcade/internal/config"
	"github.com/vovakirdan/grammar-arcade/internal/core"
	"github.com/vovakirdan/grammar-arcade/internal/game"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
	"github.com/vovakirdan/grammar-arcade/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// source supplies questions; nil means built-in only.
var source quiz.Source

// store receives finished session results; nil disables persistence.
var store game.ProgressStore

// userID identifies the player in persisted results.
var userID = "local"

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetSource sets the question source for new sessions.
func SetSource(s quiz.Source) {
	source = s
}

// SetStore sets the progress store for result persistence.
func SetStore(s game.ProgressStore) {
	store = s
}

// SetUser sets the player identity for persisted results.
func SetUser(id string) {
	if id != "" {
		userID = id
	}
}

// Game adapts the shared simulation core to the registry interface.
type Game struct {
	session *game.Session
	mech    *game.RunnerMechanics
	cfg     core.RuntimeConfig
	user    string
}

// New creates a new Grammar Runner instance.
func New() *Game {
	return &Game{user: userID}
}

// SetSessionUser overrides the player identity for this instance only.
// Used by the SSH server, where each connection carries its own user.
func (g *Game) SetSessionUser(id string) {
	if id != "" {
		g.user = id
	}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return quiz.ModeRunner
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Grammar Runner"
}

// Reset initializes a fresh session in the menu state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg

	rcfg, err := config.LoadRunner(configPath)
	if err != nil {
		rcfg = config.DefaultRunnerConfig()
	}

	params := game.RunnerParams{
		ObstacleSpeed:       rcfg.Obstacles.BaseSpeed,
		Gravity:             rcfg.Physics.Gravity,
		LaunchVelocity:      rcfg.Physics.LaunchVelocity,
		Clearance:           rcfg.Physics.Clearance,
		SpawnChance:         rcfg.Obstacles.SpawnChance,
		FinishDistance:      rcfg.Goal.FinishDistance,
		CompletionScore:     rcfg.Goal.CompletionScore,
		DifficultyOff:       !rcfg.Difficulty.Enabled,
		DifficultyStep:      rcfg.Difficulty.Step,
		DifficultyIncrement: rcfg.Difficulty.Increment,
	}
	g.mech = game.NewRunnerMechanics(params)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	questions, err := quiz.Load(ctx, source, quiz.ModeRunner)
	if err != nil {
		questions = nil
	}

	var finalizer *game.Finalizer
	if store != nil {
		finalizer = game.NewFinalizer(store)
	}

	g.session = game.NewSession(g.mech, game.Options{
		Questions: questions,
		TickRate:  cfg.TickRate,
		Seed:      cfg.Seed,
		UserID:    g.user,
		Finalizer: finalizer,
	})
}

// Step advances the session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.session.State() {
	case game.StateMenu:
		if in.Has(core.ActionStart) {
			g.session.Start()
		}
	case game.StateFinished:
		if in.Has(core.ActionStart) || in.Has(core.ActionRestart) {
			g.session.Start()
		}
	case game.StatePlaying:
		if idx := in.AnswerIndex(); idx >= 0 {
			g.session.AnswerChoice(idx)
		}
	}

	g.session.Tick()
	return core.StepResult{State: g.State()}
}

// State returns the current platform-level state.
func (g *Game) State() core.GameState {
	snap := g.session.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		Playing:  snap.State == game.StatePlaying,
		Finished: snap.State == game.StateFinished,
		Won:      snap.Won,
	}
}

// Render draws the run into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.session.Snapshot()
	world := g.mech.Snapshot()

	w := dst.Width()
	h := dst.Height()
	groundY := h - 2

	// Ground
	dst.DrawHLine(0, groundY, w, '═')

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", snap.Score))
	dst.DrawText(w-16, 0, fmt.Sprintf(" Time: %5.1fs ", snap.Elapsed))

	// Track progress toward the finish line
	if world.FinishDistance > 0 {
		frac := core.ClampF(world.Distance/world.FinishDistance, 0, 1)
		barW := w - 4
		filled := int(frac * float64(barW))
		for x := 0; x < barW; x++ {
			c := '░'
			if x < filled {
				c = '▓'
			}
			dst.SetColored(2+x, 1, c, core.ColorCyan)
		}
	}

	// Player: vertical offset scaled from world jump height
	scaleY := float64(groundY-4) / maxJumpHeight(game.RunnerLaunchVelocity, game.RunnerGravity)
	playerRow := groundY - 1 - int(world.JumpHeight*scaleY)
	playerCol := int(game.RunnerPlayerX / game.RunnerFieldWidth * float64(w))
	dst.SetColored(playerCol, playerRow, '@', core.ColorBrightYellow)
	dst.SetColored(playerCol, playerRow-1, 'o', core.ColorBrightYellow)

	// Obstacle
	if world.ObstacleActive {
		col := int(world.ObstacleX / game.RunnerFieldWidth * float64(w))
		if col >= 0 && col < w {
			dst.SetColored(col, groundY-1, '▲', core.ColorRed)
		}
	}

	// Question panel
	if snap.Pending != nil {
		drawQuestion(dst, snap.Pending, groundY)
	}

	switch snap.State {
	case game.StateMenu:
		drawCenteredMessage(dst, "GRAMMAR RUNNER",
			"Answer with 1-4 to jump obstacles  |  Press Enter to start")
	case game.StateFinished:
		title := "RUN FAILED"
		if snap.Won {
			title = "RUN COMPLETE"
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  |  Time: %.1fs  |  Press R to restart", snap.Score, snap.Elapsed))
	}
}

// maxJumpHeight computes the apex of a jump arc for render scaling.
func maxJumpHeight(launch, gravity float64) float64 {
	if gravity <= 0 {
		return 1
	}
	return launch * launch / (2 * gravity)
}

// drawQuestion renders the pending prompt and its numbered choices.
func drawQuestion(dst *core.Screen, q *game.ChallengeView, groundY int) {
	y := 3
	dst.DrawTextColored(2, y, q.Prompt, core.ColorWhite)
	for i, choice := range q.Choices {
		if y+1+i >= groundY-2 {
			break
		}
		dst.DrawText(4, y+1+i, fmt.Sprintf("%d) %s", i+1, choice))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Register the mode with the registry
func init() {
	registry.Register(quiz.ModeRunner, func() registry.Game {
		return New()
	})
}
