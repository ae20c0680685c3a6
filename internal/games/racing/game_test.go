package racing

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
	if g.ID() != "racing" {
		t.Errorf("ID() = %q, expected racing", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() is empty")
	}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("racing") {
		t.Fatal("racing mode not registered")
	}
	g, err := registry.Create("racing")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "racing" {
		t.Errorf("registry returned %q", g.ID())
	}
}

func TestGameResetStartsInMenu(t *testing.T) {
	g := newTestGame(t)

	state := g.State()
	if state.Playing || state.Finished {
		t.Errorf("fresh session state = %+v, expected menu", state)
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
}

func TestGameRaceRunsToCompletion(t *testing.T) {
	g := newTestGame(t)

	frame := core.NewInputFrame()
	frame.Set(core.ActionStart)
	g.Step(frame)

	// Both cars always move forward, so the race must end eventually.
	// At 100 units/s scaled by 0.01 per tick and a 700-unit track, a
	// couple of minutes of simulated time is more than enough.
	idle := core.NewInputFrame()
	var finished bool
	for i := 0; i < 60*120; i++ {
		if res := g.Step(idle); res.State.Finished {
			finished = true
			break
		}
	}
	if !finished {
		t.Fatal("race never finished")
	}

	// Restart returns to a live session.
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	if res := g.Step(restart); !res.State.Playing {
		t.Error("restart did not begin a new race")
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
}
