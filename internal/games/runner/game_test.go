package runner

import (
	"testing"

	"github.com/vovakirdan/grammar-arcade/internal/core"
	"github.com/vovakirdan/grammar-arcade/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func TestGameIdentity(t *testing.T) {
	g := New()
	if g.ID() != "runner" {
		t.Errorf("ID() = %q, expected runner", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() is empty")
	}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("runner") {
		t.Fatal("runner mode not registered")
	}
	g, err := registry.Create("runner")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "runner" {
		t.Errorf("registry returned %q", g.ID())
	}
}

func TestGameResetStartsInMenu(t *testing.T) {
	g := newTestGame(t)

	state := g.State()
	if state.Playing || state.Finished {
		t.Errorf("fresh session state = %+v, expected menu", state)
	}
	if state.Score != 0 {
		t.Errorf("fresh score = %d", state.Score)
	}
}

func TestGameStartTransition(t *testing.T) {
	g := newTestGame(t)

	frame := core.NewInputFrame()
	frame.Set(core.ActionStart)
	res := g.Step(frame)

	if !res.State.Playing {
		t.Error("session not playing after Start action")
	}

	// Subsequent idle ticks keep playing.
	res = g.Step(core.NewInputFrame())
	if !res.State.Playing {
		t.Error("session dropped out of playing on an idle tick")
	}
}

func TestGameIdleTickStaysInMenu(t *testing.T) {
	g := newTestGame(t)

	res := g.Step(core.NewInputFrame())
	if res.State.Playing || res.State.Finished {
		t.Errorf("idle tick left the menu: %+v", res.State)
	}
}

func TestGameRenderDoesNotPanic(t *testing.T) {
	g := newTestGame(t)

	for _, dims := range [][2]int{{80, 24}, {40, 12}, {10, 4}, {2, 2}} {
		screen := core.NewScreen(dims[0], dims[1])
		g.Render(screen)

		frame := core.NewInputFrame()
		frame.Set(core.ActionStart)
		g.Step(frame)
		g.Render(screen)
	}
}

func TestGameRenderShowsScore(t *testing.T) {
	g := newTestGame(t)

	frame := core.NewInputFrame()
	frame.Set(core.ActionStart)
	g.Step(frame)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if row := screen.Row(0); !containsScore(row) {
		t.Errorf("HUD row missing score: %q", row)
	}
}

func containsScore(row string) bool {
	for i := 0; i+5 < len(row); i++ {
		if row[i:i+5] == "Score" {
			return true
		}
	}
	return false
}

func TestGameSetSessionUserIsPerInstance(t *testing.T) {
	a := New()
	b := New()

	a.SetSessionUser("alice")
	if a.user != "alice" {
		t.Errorf("user = %q, expected alice", a.user)
	}
	if b.user == "alice" {
		t.Error("SetSessionUser leaked across instances")
	}

	a.SetSessionUser("")
	if a.user != "alice" {
		t.Error("empty id overwrote the user")
	}
}
