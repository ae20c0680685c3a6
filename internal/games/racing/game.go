// Package racing implements the Grammar Racing mode: a race against a
// computer car. Correct answers raise the player's speed, wrong answers
// lower it, and the computer speeds up on its own randomized timer.
package racing

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
	mech    *game.RacerMechanics
	cfg     core.RuntimeConfig
	user    string
}

// New creates a new Grammar Racing instance.
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
	return quiz.ModeRacing
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Grammar Racing"
}

// Reset initializes a fresh session in the menu state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg

	rcfg, err := config.LoadRacing(configPath)
	if err != nil {
		rcfg = config.DefaultRacingConfig()
	}

	params := game.RacerParams{
		StartSpeed:     rcfg.Speed.Start,
		SpeedStep:      rcfg.Speed.Step,
		SpeedFloor:     rcfg.Speed.Floor,
		FinishLine:     rcfg.Track.FinishLine,
		ProgressFactor: rcfg.Track.ProgressFactor,
		TickRate:       cfg.TickRate,
	}
	g.mech = game.NewRacerMechanics(params)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	questions, err := quiz.Load(ctx, source, quiz.ModeRacing)
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

// Render draws the race into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.session.Snapshot()
	world := g.mech.Snapshot()

	w := dst.Width()

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", snap.Score))
	dst.DrawText(w-16, 0, fmt.Sprintf(" Time: %5.1fs ", snap.Elapsed))

	// Two lanes with progress bars and a finish line on the right
	drawLane(dst, 2, "YOU", world.PlayerProgress, world.FinishLine, world.PlayerSpeed, core.ColorGreen)
	drawLane(dst, 5, "CPU", world.OpponentProgress, world.FinishLine, world.OpponentSpeed, core.ColorRed)

	// Question panel
	if snap.Pending != nil {
		y := 8
		dst.DrawTextColored(2, y, snap.Pending.Prompt, core.ColorWhite)
		for i, choice := range snap.Pending.Choices {
			dst.DrawText(4, y+2+i, fmt.Sprintf("%d) %s", i+1, choice))
		}
	}

	switch snap.State {
	case game.StateMenu:
		drawCenteredMessage(dst, "GRAMMAR RACING",
			"Answer with 1-4 to speed up  |  Press Enter to start")
	case game.StateFinished:
		title := "YOU LOST"
		if snap.Won {
			title = "YOU WON"
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  |  Time: %.1fs  |  Press R to restart", snap.Score, snap.Elapsed))
	}
}

// drawLane renders one car lane: label, progress bar, car and speed.
func drawLane(dst *core.Screen, y int, label string, progress, finish, speed float64, c core.Color) {
	w := dst.Width()
	barX := 6
	barW := w - barX - 12

	dst.DrawText(1, y, label)
	dst.DrawHLine(barX, y+1, barW, '─')
	dst.SetColored(barX+barW, y, '|', core.ColorWhite) // Finish line

	frac := core.ClampF(progress/finish, 0, 1)
	carX := barX + int(frac*float64(barW-1))
	dst.SetColored(carX, y, '»', c)

	dst.DrawText(barX+barW+2, y, fmt.Sprintf("%3.0f km/h", speed))
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
	registry.Register(quiz.ModeRacing, func() registry.Game {
		return New()
	})
}
