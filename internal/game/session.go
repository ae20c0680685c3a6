// Package game implements the shared mini-game simulation core: a
// session state machine, a challenge scheduler, per-mode mechanics
// (runner, racing) and fire-and-forget result finalization.
//
// The package contains pure logic with no presentation dependencies.
// A Session is driven by the host: one Tick per fixed timestep while
// playing, plus discrete commands (Start, SubmitAnswer). All public
// methods are safe for concurrent use.
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

// State is the lifecycle state of a session.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// StepEvents reports what happened during one mechanics tick.
type StepEvents struct {
	Cleared   bool // Challenge resolved successfully; award score
	Collided  bool // Player collided; session ends in failure
	Discarded bool // Unanswered challenge left the field; drop it silently
	Finished  bool // The mode's goal condition ended the session
	Won       bool // Valid when Finished
}

// Mechanics is the variant-specific half of the simulation: world
// update, spawn policy, answer resolution and the completion rule.
// One session owns one mechanics instance; the session serializes all
// calls into it.
type Mechanics interface {
	// Mode returns the mode identifier ("runner", "racing").
	Mode() string

	// Reset restores the initial world state for a new session.
	Reset(rng *rand.Rand)

	// SpawnCheck reports whether a new challenge should appear this
	// tick. Only consulted when no challenge is pending.
	SpawnCheck(rng *rand.Rand) bool

	// Begin attaches a freshly spawned challenge to the world.
	Begin()

	// Resolve applies the player's answer to the pending challenge.
	// Returns true if a wrong answer ends the session immediately.
	Resolve(correct bool) (lost bool)

	// Step advances the world by one tick at the given score.
	Step(score int) StepEvents

	// Completed reports whether the terminal score/outcome earns the
	// mode's completion flag.
	Completed(score int, won bool) bool
}

// Challenge is a pending question with its shuffled answer choices.
type Challenge struct {
	Question quiz.Question
	Choices  []string
	correct  int
}

// IsCorrect reports whether the given choice index is the right answer.
func (c *Challenge) IsCorrect(choice int) bool {
	return choice == c.correct
}

// Options configures a new session.
type Options struct {
	Questions []quiz.Question // Loaded challenge content (built-in fallback applied by the caller)
	TickRate  int             // Ticks per second; defaults to 60
	Seed      int64           // RNG seed; 0 means time-based
	UserID    string          // Player identity for persisted results
	Score     int             // Points per cleared challenge; defaults to ScoreIncrement
	Finalizer *Finalizer      // Optional result sink; nil disables persistence
}

// ScoreIncrement is the fixed award per correctly resolved challenge.
const ScoreIncrement = 10

// Session drives one play-through of a mini-game from start to finish.
// It owns the state machine and the challenge scheduler; the attached
// Mechanics owns physics and win conditions.
type Session struct {
	mu sync.Mutex

	mech      Mechanics
	questions []quiz.Question
	rng       *rand.Rand

	state     State
	elapsed   float64
	score     int
	answered  int
	won       bool
	pending   *Challenge
	dt        float64
	scoreStep int

	userID    string
	finalizer *Finalizer
}

// NewSession creates a session in the Menu state.
func NewSession(mech Mechanics, opts Options) *Session {
	tickRate := opts.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scoreStep := opts.Score
	if scoreStep <= 0 {
		scoreStep = ScoreIncrement
	}

	return &Session{
		mech:      mech,
		questions: opts.Questions,
		rng:       rand.New(rand.NewSource(seed)),
		state:     StateMenu,
		dt:        1.0 / float64(tickRate),
		scoreStep: scoreStep,
		userID:    opts.UserID,
		finalizer: opts.Finalizer,
	}
}

// Start begins a new play-through. Valid from Menu or Finished; a call
// while Playing is ignored. Resets score, elapsed time, the pending
// challenge and the mechanics world state.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePlaying {
		return
	}

	s.elapsed = 0
	s.score = 0
	s.answered = 0
	s.won = false
	s.pending = nil
	s.mech.Reset(s.rng)
	s.state = StatePlaying
}

// Tick advances the simulation by one fixed timestep. A no-op outside
// the Playing state, so a host may harmlessly race ticks against state
// changes.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return
	}

	s.elapsed += s.dt

	// At most one unresolved challenge at a time.
	if s.pending == nil && len(s.questions) > 0 && s.mech.SpawnCheck(s.rng) {
		s.spawn()
	}

	ev := s.mech.Step(s.score)
	if ev.Cleared {
		s.score += s.scoreStep
	}
	if ev.Discarded {
		s.pending = nil
	}
	if ev.Collided {
		s.finishLocked(false)
		return
	}
	if ev.Finished {
		s.finishLocked(ev.Won)
	}
}

// spawn picks a random question, shuffles its choices and attaches a
// new challenge to the mechanics world.
func (s *Session) spawn() {
	q := s.questions[s.rng.Intn(len(s.questions))]
	choices, correct := q.Choices(s.rng)
	s.pending = &Challenge{Question: q, Choices: choices, correct: correct}
	s.mech.Begin()
}

// SubmitAnswer resolves the pending challenge with an already-judged
// answer. Ignored while not Playing or when no challenge is pending.
// Exactly one challenge is resolved per call.
func (s *Session) SubmitAnswer(correct bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resolveLocked(correct)
}

// AnswerChoice resolves the pending challenge by display-choice index,
// judging it against the shuffled correct position. Out-of-range
// indices count as wrong answers.
func (s *Session) AnswerChoice(choice int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying || s.pending == nil {
		return
	}
	s.resolveLocked(s.pending.IsCorrect(choice))
}

// resolveLocked applies a judged answer to the pending challenge.
// Caller must hold s.mu and have verified Playing state.
func (s *Session) resolveLocked(correct bool) {
	if s.state != StatePlaying || s.pending == nil {
		return
	}

	s.pending = nil
	s.answered++
	if lost := s.mech.Resolve(correct); lost {
		s.finishLocked(false)
	}
}

// finishLocked transitions to Finished and hands the outcome to the
// finalizer. Persistence is fire-and-forget; the state transition never
// waits on the store. Caller must hold s.mu.
func (s *Session) finishLocked(won bool) {
	if s.state != StatePlaying {
		return
	}

	s.state = StateFinished
	s.won = won
	s.pending = nil

	if s.finalizer != nil {
		res := Result{
			UserID:            s.userID,
			Mode:              s.mech.Mode(),
			Elapsed:           s.elapsed,
			Score:             s.score,
			Won:               won,
			QuestionsAnswered: s.answered,
			PlayedAt:          time.Now(),
		}
		completed := s.mech.Completed(s.score, won)
		go s.finalizer.Record(res, completed)
	}
}

// Finish ends the session explicitly with the given outcome. Used by
// hosts that tear a session down mid-play (e.g. navigating away).
// Ignored outside Playing.
func (s *Session) Finish(won bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishLocked(won)
}

// Snapshot is a read-only view of the session for the presentation
// layer, refreshed every tick.
type Snapshot struct {
	State             State
	Score             int
	Elapsed           float64
	QuestionsAnswered int
	Won               bool
	Pending           *ChallengeView
}

// ChallengeView exposes the pending challenge without its answer key.
type ChallengeView struct {
	Prompt      string
	Choices     []string
	Explanation string
}

// Snapshot returns the current read-only session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:             s.state,
		Score:             s.score,
		Elapsed:           s.elapsed,
		QuestionsAnswered: s.answered,
		Won:               s.won,
	}
	if s.pending != nil {
		choices := make([]string, len(s.pending.Choices))
		copy(choices, s.pending.Choices)
		snap.Pending = &ChallengeView{
			Prompt:      s.pending.Question.Prompt,
			Choices:     choices,
			Explanation: s.pending.Question.Explanation,
		}
	}
	return snap
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Elapsed returns the accumulated play time in seconds.
func (s *Session) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Won reports the outcome; valid once Finished.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// HasPending reports whether a challenge is awaiting an answer.
func (s *Session) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
