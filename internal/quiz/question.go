// Package quiz provides grammar question content for the arcade games:
// the question domain model, a built-in fallback set, and pluggable
// sources (sqlite, postgres) with an optional redis caching layer.
package quiz

import (
	"errors"
	"math/rand"
	"strings"
)

// Game mode identifiers. They double as registry game IDs and as the
// mode column in question and progress storage.
const (
	ModeRunner = "runner"
	ModeRacing = "racing"
)

var (
	// ErrNoQuestions indicates a source returned no usable questions.
	ErrNoQuestions = errors.New("quiz: no questions available")
	// ErrUnknownMode indicates a mode with no question content.
	ErrUnknownMode = errors.New("quiz: unknown mode")
)

// Question is a single grammar challenge: a prompt, the correct answer
// and one or more distractors.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Correct     string   `json:"correct"`
	Distractors []string `json:"distractors"`
	Explanation string   `json:"explanation,omitempty"`
}

// Valid reports whether the question is well formed: non-empty prompt
// and correct answer, at least one distractor, and no distractor equal
// to the correct answer (case-insensitive).
func (q Question) Valid() bool {
	if strings.TrimSpace(q.Prompt) == "" || strings.TrimSpace(q.Correct) == "" {
		return false
	}
	if len(q.Distractors) == 0 {
		return false
	}
	for _, d := range q.Distractors {
		if strings.EqualFold(d, q.Correct) {
			return false
		}
	}
	return true
}

// Choices returns the correct answer and distractors in a randomized
// display order, plus the index of the correct answer in that order.
func (q Question) Choices(rng *rand.Rand) ([]string, int) {
	choices := make([]string, 0, len(q.Distractors)+1)
	choices = append(choices, q.Correct)
	choices = append(choices, q.Distractors...)

	correct := 0
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
		switch correct {
		case i:
			correct = j
		case j:
			correct = i
		}
	})
	return choices, correct
}

// FilterValid drops malformed questions from the list.
// Returns the kept questions and the number dropped.
func FilterValid(questions []Question) ([]Question, int) {
	kept := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.Valid() {
			kept = append(kept, q)
		}
	}
	return kept, len(questions) - len(kept)
}
