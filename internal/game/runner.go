package game

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/grammar-arcade/internal/core"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

// Runner world constants, in world units. The difficulty formula and
// the physics constants are load-bearing for game feel; changing them
// changes how jumps line up with obstacles.
const (
	RunnerFieldWidth     = 800.0
	RunnerPlayerX        = 50.0
	RunnerPlayerWidth    = 60.0
	RunnerPlayerHeight   = 80.0
	RunnerObstacleWidth  = 20.0
	RunnerObstacleHeight = 20.0

	RunnerObstacleSpeed  = 2.5  // World units per tick before difficulty scaling
	RunnerGravity        = 0.25 // Velocity decrement per tick while airborne
	RunnerLaunchVelocity = 10.0 // Vertical velocity set by a correct answer
	RunnerClearance      = 30.0 // Minimum jump height that avoids an obstacle (inclusive)
	RunnerSpawnChance    = 0.02 // Per-tick spawn probability while no obstacle is active

	RunnerCompletionScore = 100    // Terminal score needed to mark the mode completed
	RunnerFinishDistance  = 3000.0 // Scrolled distance at which the run ends in success

	difficultyStep      = 50   // Score interval per difficulty bump
	difficultyIncrement = 0.25 // Multiplier added per bump
)

// DifficultyMultiplier returns the obstacle speed scalar for a score
// under the stock progression. Steps up by 0.25 every 50 points:
// 1.0 at 0-49, 1.25 at 50-99, and so on.
func DifficultyMultiplier(score int) float64 {
	return 1 + math.Floor(float64(score)/difficultyStep)*difficultyIncrement
}

// RunnerParams tunes the runner world. Zero values fall back to the
// package defaults via DefaultRunnerParams.
type RunnerParams struct {
	ObstacleSpeed   float64
	Gravity         float64
	LaunchVelocity  float64
	Clearance       float64
	SpawnChance     float64
	FinishDistance  float64
	CompletionScore int

	DifficultyOff       bool // Disables speed progression entirely
	DifficultyStep      int
	DifficultyIncrement float64
}

// DefaultRunnerParams returns the stock runner tuning.
func DefaultRunnerParams() RunnerParams {
	return RunnerParams{
		ObstacleSpeed:       RunnerObstacleSpeed,
		Gravity:             RunnerGravity,
		LaunchVelocity:      RunnerLaunchVelocity,
		Clearance:           RunnerClearance,
		SpawnChance:         RunnerSpawnChance,
		FinishDistance:      RunnerFinishDistance,
		CompletionScore:     RunnerCompletionScore,
		DifficultyStep:      difficultyStep,
		DifficultyIncrement: difficultyIncrement,
	}
}

// RunnerMechanics implements the side-scrolling obstacle run: an
// obstacle binds a question; a correct answer launches a timed jump,
// a wrong answer or a collision ends the run. The run succeeds when
// the scrolled distance reaches the finish threshold.
type RunnerMechanics struct {
	params RunnerParams

	obstacleX        float64
	obstacleActive   bool
	obstacleAnswered bool

	jumping    bool
	jumpHeight float64
	jumpVel    float64

	distance float64
}

// NewRunnerMechanics creates runner mechanics with the given tuning.
func NewRunnerMechanics(params RunnerParams) *RunnerMechanics {
	def := DefaultRunnerParams()
	if params.ObstacleSpeed <= 0 {
		params.ObstacleSpeed = def.ObstacleSpeed
	}
	if params.Gravity <= 0 {
		params.Gravity = def.Gravity
	}
	if params.LaunchVelocity <= 0 {
		params.LaunchVelocity = def.LaunchVelocity
	}
	if params.Clearance <= 0 {
		params.Clearance = def.Clearance
	}
	if params.SpawnChance <= 0 {
		params.SpawnChance = def.SpawnChance
	}
	if params.FinishDistance <= 0 {
		params.FinishDistance = def.FinishDistance
	}
	if params.CompletionScore <= 0 {
		params.CompletionScore = def.CompletionScore
	}
	if params.DifficultyStep <= 0 {
		params.DifficultyStep = def.DifficultyStep
	}
	if params.DifficultyIncrement <= 0 {
		params.DifficultyIncrement = def.DifficultyIncrement
	}
	return &RunnerMechanics{params: params}
}

// multiplier computes the configured speed progression for a score.
func (m *RunnerMechanics) multiplier(score int) float64 {
	if m.params.DifficultyOff {
		return 1
	}
	return 1 + math.Floor(float64(score)/float64(m.params.DifficultyStep))*m.params.DifficultyIncrement
}

// Mode implements Mechanics.
func (m *RunnerMechanics) Mode() string { return quiz.ModeRunner }

// Reset implements Mechanics.
func (m *RunnerMechanics) Reset(_ *rand.Rand) {
	m.obstacleX = 0
	m.obstacleActive = false
	m.obstacleAnswered = false
	m.jumping = false
	m.jumpHeight = 0
	m.jumpVel = 0
	m.distance = 0
}

// SpawnCheck implements Mechanics: probabilistic spawn while no
// obstacle is on the field.
func (m *RunnerMechanics) SpawnCheck(rng *rand.Rand) bool {
	return !m.obstacleActive && rng.Float64() < m.params.SpawnChance
}

// Begin implements Mechanics: a new obstacle enters at the far edge.
func (m *RunnerMechanics) Begin() {
	m.obstacleX = RunnerFieldWidth
	m.obstacleActive = true
	m.obstacleAnswered = false
}

// Resolve implements Mechanics. A correct answer launches the jump;
// a wrong answer loses immediately, with no physics chance to avoid it.
func (m *RunnerMechanics) Resolve(correct bool) bool {
	if !correct {
		return true
	}
	m.obstacleAnswered = true
	m.jumping = true
	m.jumpHeight = 0
	m.jumpVel = m.params.LaunchVelocity
	return false
}

// Step implements Mechanics: advance the obstacle and jump physics,
// then judge collision, clearance and the finish condition.
func (m *RunnerMechanics) Step(score int) StepEvents {
	var ev StepEvents

	speed := m.params.ObstacleSpeed * m.multiplier(score)
	m.distance += speed

	if m.obstacleActive {
		m.obstacleX -= speed
	}

	if m.jumping {
		m.jumpHeight += m.jumpVel
		m.jumpVel -= m.params.Gravity
		if m.jumpHeight <= 0 {
			m.jumpHeight = 0
			m.jumpVel = 0
			m.jumping = false
		}
	}

	if m.obstacleActive {
		switch {
		case m.obstacleAnswered && m.obstacleX+RunnerObstacleWidth < RunnerPlayerX:
			// Obstacle passed under the airborne player.
			m.obstacleActive = false
			ev.Cleared = true

		case m.overlapsPlayer() && (!m.jumping || m.jumpHeight < m.params.Clearance):
			m.obstacleActive = false
			ev.Collided = true
			return ev

		case m.obstacleX+RunnerObstacleWidth <= 0:
			// Left the field unresolved. An answered obstacle still
			// counts as cleared; an unanswered one is discarded along
			// with its pending question.
			m.obstacleActive = false
			if m.obstacleAnswered {
				ev.Cleared = true
			} else {
				ev.Discarded = true
			}
		}
	}

	if m.distance >= m.params.FinishDistance {
		ev.Finished = true
		ev.Won = true
	}
	return ev
}

// overlapsPlayer reports horizontal overlap between the obstacle and
// the player hitbox.
func (m *RunnerMechanics) overlapsPlayer() bool {
	obstacle := core.NewRect(m.obstacleX, 0, RunnerObstacleWidth, RunnerObstacleHeight)
	player := core.NewRect(RunnerPlayerX, 0, RunnerPlayerWidth, RunnerPlayerHeight)
	return obstacle.Intersects(player)
}

// Completed implements Mechanics: the runner mode is completed by
// score alone; reaching the finish line is not sufficient.
func (m *RunnerMechanics) Completed(score int, _ bool) bool {
	return score >= m.params.CompletionScore
}

// RunnerSnapshot is the runner world state for rendering.
type RunnerSnapshot struct {
	ObstacleX      float64
	ObstacleActive bool
	Jumping        bool
	JumpHeight     float64
	Distance       float64
	FinishDistance float64
}

// Snapshot returns the current world state.
func (m *RunnerMechanics) Snapshot() RunnerSnapshot {
	return RunnerSnapshot{
		ObstacleX:      m.obstacleX,
		ObstacleActive: m.obstacleActive,
		Jumping:        m.jumping,
		JumpHeight:     m.jumpHeight,
		Distance:       m.distance,
		FinishDistance: m.params.FinishDistance,
	}
}
