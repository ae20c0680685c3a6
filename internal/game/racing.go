package game

import (
	"math/rand"

	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

// Racing world constants.
const (
	RacerStartSpeed = 100.0 // Both cars start here
	RacerSpeedStep  = 10.0  // Speed change per answer (and per opponent boost)
	RacerSpeedFloor = 50.0  // Player speed never drops below this
	RacerFinishLine = 700.0 // Progress threshold that ends the race

	RacerProgressFactor = 0.01 // Progress gained per tick per unit of speed

	// The opponent speeds up on its own randomized timer to keep
	// pressure on a player who stops answering.
	racerBoostMinSeconds = 2
	racerBoostMaxSeconds = 10
)

// RacerParams tunes the racing world. Zero values fall back to the
// package defaults via DefaultRacerParams.
type RacerParams struct {
	StartSpeed     float64
	SpeedStep      float64
	SpeedFloor     float64
	FinishLine     float64
	ProgressFactor float64
	TickRate       int // Ticks per second, used to scale the opponent boost timer
}

// DefaultRacerParams returns the stock racing tuning.
func DefaultRacerParams() RacerParams {
	return RacerParams{
		StartSpeed:     RacerStartSpeed,
		SpeedStep:      RacerSpeedStep,
		SpeedFloor:     RacerSpeedFloor,
		FinishLine:     RacerFinishLine,
		ProgressFactor: RacerProgressFactor,
		TickRate:       60,
	}
}

// RacerMechanics implements the race against a computer car: correct
// answers raise the player's speed, wrong answers lower it (floored),
// and both cars accrue progress proportional to speed each tick. The
// computer boosts its speed on a uniform random 2-10 second timer.
type RacerMechanics struct {
	params RacerParams

	playerSpeed    float64
	playerProgress float64

	opponentSpeed    float64
	opponentProgress float64
	boostTicks       int // Ticks until the next opponent boost

	rng *rand.Rand
}

// NewRacerMechanics creates racing mechanics with the given tuning.
func NewRacerMechanics(params RacerParams) *RacerMechanics {
	def := DefaultRacerParams()
	if params.StartSpeed <= 0 {
		params.StartSpeed = def.StartSpeed
	}
	if params.SpeedStep <= 0 {
		params.SpeedStep = def.SpeedStep
	}
	if params.SpeedFloor <= 0 {
		params.SpeedFloor = def.SpeedFloor
	}
	if params.FinishLine <= 0 {
		params.FinishLine = def.FinishLine
	}
	if params.ProgressFactor <= 0 {
		params.ProgressFactor = def.ProgressFactor
	}
	if params.TickRate <= 0 {
		params.TickRate = def.TickRate
	}
	return &RacerMechanics{params: params}
}

// Mode implements Mechanics.
func (m *RacerMechanics) Mode() string { return quiz.ModeRacing }

// Reset implements Mechanics.
func (m *RacerMechanics) Reset(rng *rand.Rand) {
	m.rng = rng
	m.playerSpeed = m.params.StartSpeed
	m.playerProgress = 0
	m.opponentSpeed = m.params.StartSpeed
	m.opponentProgress = 0
	m.boostTicks = m.nextBoost()
}

// SpawnCheck implements Mechanics: the racer always has a question up,
// so a new one appears as soon as the previous is resolved.
func (m *RacerMechanics) SpawnCheck(_ *rand.Rand) bool {
	return true
}

// Begin implements Mechanics. The question has no world-bound entity
// in this mode; nothing to place.
func (m *RacerMechanics) Begin() {}

// Resolve implements Mechanics: correct answers speed the player up,
// wrong answers slow the player down to no less than the floor. A
// wrong answer never ends the race directly.
func (m *RacerMechanics) Resolve(correct bool) bool {
	if correct {
		m.playerSpeed += m.params.SpeedStep
	} else {
		m.playerSpeed -= m.params.SpeedStep
		if m.playerSpeed < m.params.SpeedFloor {
			m.playerSpeed = m.params.SpeedFloor
		}
	}
	return false
}

// Step implements Mechanics: both cars accrue progress; the opponent
// boosts on timer expiry. Reaching the finish line first decides the
// outcome; a simultaneous arrival goes to the player.
func (m *RacerMechanics) Step(_ int) StepEvents {
	var ev StepEvents

	m.playerProgress += m.playerSpeed * m.params.ProgressFactor
	m.opponentProgress += m.opponentSpeed * m.params.ProgressFactor

	m.boostTicks--
	if m.boostTicks <= 0 {
		m.opponentSpeed += m.params.SpeedStep
		m.boostTicks = m.nextBoost()
	}

	if m.playerProgress >= m.params.FinishLine {
		ev.Finished = true
		ev.Won = true
	} else if m.opponentProgress >= m.params.FinishLine {
		ev.Finished = true
		ev.Won = false
	}
	return ev
}

// Completed implements Mechanics: winning the race is both necessary
// and sufficient.
func (m *RacerMechanics) Completed(_ int, won bool) bool {
	return won
}

// nextBoost picks the tick count until the opponent's next speed-up,
// uniform over the 2-10 second window.
func (m *RacerMechanics) nextBoost() int {
	window := racerBoostMaxSeconds - racerBoostMinSeconds
	secs := racerBoostMinSeconds + window/2
	if m.rng != nil {
		secs = racerBoostMinSeconds + m.rng.Intn(window+1)
	}
	return secs * m.params.TickRate
}

// RacerSnapshot is the racing world state for rendering.
type RacerSnapshot struct {
	PlayerSpeed      float64
	PlayerProgress   float64
	OpponentSpeed    float64
	OpponentProgress float64
	FinishLine       float64
}

// Snapshot returns the current world state.
func (m *RacerMechanics) Snapshot() RacerSnapshot {
	return RacerSnapshot{
		PlayerSpeed:      m.playerSpeed,
		PlayerProgress:   m.playerProgress,
		OpponentSpeed:    m.opponentSpeed,
		OpponentProgress: m.opponentProgress,
		FinishLine:       m.params.FinishLine,
	}
}
