package game

import (
	"math/rand"
	"testing"
)

func TestDifficultyMultiplier(t *testing.T) {
	tests := []struct {
		score    int
		expected float64
	}{
		{0, 1.0},
		{49, 1.0},
		{50, 1.25},
		{99, 1.25},
		{100, 1.5},
		{150, 1.75},
		{200, 2.0},
	}

	for _, tc := range tests {
		if got := DifficultyMultiplier(tc.score); got != tc.expected {
			t.Errorf("DifficultyMultiplier(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestRunnerDifficultyDisabled(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{DifficultyOff: true})
	m.Reset(rand.New(rand.NewSource(1)))

	m.Step(0)
	d1 := m.distance
	m.distance = 0
	m.Step(500)
	d2 := m.distance

	if d1 != d2 {
		t.Errorf("disabled difficulty still scaled speed: %v vs %v", d1, d2)
	}
}

func TestRunnerSpeedScalesWithScore(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))

	m.Step(0)
	base := m.distance
	m.distance = 0
	m.Step(50)
	bumped := m.distance

	if bumped != base*1.25 {
		t.Errorf("distance at score 50 = %v, expected %v", bumped, base*1.25)
	}
}

func TestRunnerSpawnOnlyWithoutActiveObstacle(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{SpawnChance: 1.0})
	rng := rand.New(rand.NewSource(1))
	m.Reset(rng)

	if !m.SpawnCheck(rng) {
		t.Fatal("expected spawn with no active obstacle and chance 1.0")
	}

	m.Begin()
	if m.SpawnCheck(rng) {
		t.Error("spawned while an obstacle is active")
	}
}

func TestRunnerBeginPlacesObstacleAtFieldEdge(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))

	m.Begin()

	snap := m.Snapshot()
	if !snap.ObstacleActive {
		t.Fatal("obstacle not active after Begin")
	}
	if snap.ObstacleX != RunnerFieldWidth {
		t.Errorf("obstacle spawned at %v, expected %v", snap.ObstacleX, RunnerFieldWidth)
	}
}

func TestRunnerWrongAnswerLoses(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))
	m.Begin()

	if lost := m.Resolve(false); !lost {
		t.Error("wrong answer did not end the run")
	}
}

func TestRunnerCorrectAnswerLaunchesJump(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))
	m.Begin()

	if lost := m.Resolve(true); lost {
		t.Fatal("correct answer ended the run")
	}

	snap := m.Snapshot()
	if !snap.Jumping {
		t.Error("player not jumping after correct answer")
	}
	if m.jumpVel != RunnerLaunchVelocity {
		t.Errorf("launch velocity = %v, expected %v", m.jumpVel, RunnerLaunchVelocity)
	}
}

func TestRunnerJumpPhysics(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))
	m.Begin()
	m.Resolve(true)

	// First tick: height += 10, vel -= 0.25
	m.Step(0)
	if m.jumpHeight != RunnerLaunchVelocity {
		t.Errorf("height after first tick = %v, expected %v", m.jumpHeight, RunnerLaunchVelocity)
	}
	if m.jumpVel != RunnerLaunchVelocity-RunnerGravity {
		t.Errorf("velocity after first tick = %v, expected %v", m.jumpVel, RunnerLaunchVelocity-RunnerGravity)
	}

	// The arc must come back down and snap to the ground.
	for i := 0; i < 200 && m.jumping; i++ {
		m.Step(0)
	}
	if m.jumping {
		t.Fatal("jump never landed")
	}
	if m.jumpHeight != 0 || m.jumpVel != 0 {
		t.Errorf("landing state height=%v vel=%v, expected 0/0", m.jumpHeight, m.jumpVel)
	}
}

func TestRunnerClearanceBoundaryInclusive(t *testing.T) {
	tests := []struct {
		name      string
		height    float64
		collision bool
	}{
		{"exactly at clearance", RunnerClearance, false},
		{"just below clearance", RunnerClearance - 1, true},
		{"above clearance", RunnerClearance + 10, false},
		{"on the ground", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewRunnerMechanics(RunnerParams{})
			m.Reset(rand.New(rand.NewSource(1)))

			// Obstacle overlapping the player hitbox, jump frozen at the
			// test height (zero velocity so Step leaves it unchanged).
			m.obstacleActive = true
			m.obstacleAnswered = true
			m.obstacleX = RunnerPlayerX
			m.jumping = tc.height > 0
			m.jumpHeight = tc.height
			m.jumpVel = 0

			// Cancel the obstacle's own movement this tick so the overlap holds.
			m.obstacleX += RunnerObstacleSpeed

			ev := m.Step(0)
			if ev.Collided != tc.collision {
				t.Errorf("height %v: collided = %v, expected %v", tc.height, ev.Collided, tc.collision)
			}
		})
	}
}

func TestRunnerObstacleExitClosure(t *testing.T) {
	tests := []struct {
		name      string
		answered  bool
		cleared   bool
		discarded bool
	}{
		{"answered obstacle exits as cleared", true, true, false},
		{"unanswered obstacle exits as discarded", false, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewRunnerMechanics(RunnerParams{})
			m.Reset(rand.New(rand.NewSource(1)))

			m.obstacleActive = true
			m.obstacleAnswered = tc.answered
			// Just past the left edge after this tick's movement.
			m.obstacleX = -RunnerObstacleWidth + RunnerObstacleSpeed

			ev := m.Step(0)
			if ev.Cleared != tc.cleared {
				t.Errorf("cleared = %v, expected %v", ev.Cleared, tc.cleared)
			}
			if ev.Discarded != tc.discarded {
				t.Errorf("discarded = %v, expected %v", ev.Discarded, tc.discarded)
			}
			if m.obstacleActive {
				t.Error("obstacle still active after leaving the field")
			}
		})
	}
}

func TestRunnerClearedWhenObstaclePassesPlayer(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))

	m.obstacleActive = true
	m.obstacleAnswered = true
	// After this tick the obstacle's right edge sits left of the player.
	m.obstacleX = RunnerPlayerX - RunnerObstacleWidth - 1 + RunnerObstacleSpeed
	m.jumping = true
	m.jumpHeight = RunnerClearance + 20
	m.jumpVel = 0

	ev := m.Step(0)
	if !ev.Cleared {
		t.Error("obstacle passing under the player did not clear")
	}
}

func TestRunnerFinishDistance(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{FinishDistance: 100})
	m.Reset(rand.New(rand.NewSource(1)))

	var finished bool
	for i := 0; i < 100; i++ {
		ev := m.Step(0)
		if ev.Finished {
			if !ev.Won {
				t.Error("finish by distance should be a win")
			}
			finished = true
			break
		}
	}
	if !finished {
		t.Error("run never reached the finish distance")
	}
	if m.distance < 100 {
		t.Errorf("finished at distance %v, expected >= 100", m.distance)
	}
}

func TestRunnerCompletionByScore(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})

	tests := []struct {
		score    int
		won      bool
		expected bool
	}{
		{100, true, true},
		{100, false, true}, // Score alone is what matters
		{110, false, true},
		{90, true, false}, // Winning the run is not sufficient
		{0, true, false},
	}

	for _, tc := range tests {
		if got := m.Completed(tc.score, tc.won); got != tc.expected {
			t.Errorf("Completed(%d, %v) = %v, expected %v", tc.score, tc.won, got, tc.expected)
		}
	}
}

func TestRunnerResetClearsWorld(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})
	m.Reset(rand.New(rand.NewSource(1)))

	m.Begin()
	m.Resolve(true)
	m.Step(0)
	m.Reset(rand.New(rand.NewSource(2)))

	snap := m.Snapshot()
	if snap.ObstacleActive || snap.Jumping || snap.JumpHeight != 0 || snap.Distance != 0 {
		t.Errorf("Reset left world state: %+v", snap)
	}
}

func TestRunnerDefaultParams(t *testing.T) {
	m := NewRunnerMechanics(RunnerParams{})

	if m.params.ObstacleSpeed != RunnerObstacleSpeed {
		t.Errorf("default speed = %v, expected %v", m.params.ObstacleSpeed, RunnerObstacleSpeed)
	}
	if m.params.Gravity != RunnerGravity {
		t.Errorf("default gravity = %v, expected %v", m.params.Gravity, RunnerGravity)
	}
	if m.params.CompletionScore != RunnerCompletionScore {
		t.Errorf("default completion score = %v, expected %v", m.params.CompletionScore, RunnerCompletionScore)
	}
}
