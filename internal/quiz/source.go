package quiz

import (
	"context"

	"github.com/charmbracelet/log"
)

// Source supplies the question list for a game mode.
// Implementations must tolerate being called concurrently.
type Source interface {
	Questions(ctx context.Context, mode string) ([]Question, error)
}

// StaticSource serves a fixed in-memory question list for every mode.
// Used in tests and as the carrier for the built-in fallback set.
type StaticSource struct {
	ByMode map[string][]Question
}

// Questions implements Source.
func (s StaticSource) Questions(_ context.Context, mode string) ([]Question, error) {
	qs, ok := s.ByMode[mode]
	if !ok || len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return cloneQuestions(qs), nil
}

// BuiltinSource serves the built-in fallback sets.
type BuiltinSource struct{}

// Questions implements Source.
func (BuiltinSource) Questions(_ context.Context, mode string) ([]Question, error) {
	return Builtin(mode)
}

// FallbackSource wraps a primary source and substitutes the built-in
// set whenever the primary errors, returns nothing, or returns only
// malformed questions. Source failures are logged, never surfaced.
type FallbackSource struct {
	Primary Source
}

// Questions implements Source.
func (f FallbackSource) Questions(ctx context.Context, mode string) ([]Question, error) {
	if f.Primary != nil {
		qs, err := f.Primary.Questions(ctx, mode)
		if err == nil {
			qs, dropped := FilterValid(qs)
			if dropped > 0 {
				log.Warn("quiz: dropped malformed questions", "mode", mode, "dropped", dropped)
			}
			if len(qs) > 0 {
				return qs, nil
			}
		} else {
			log.Warn("quiz: source failed, using built-in questions", "mode", mode, "err", err)
		}
	}
	return Builtin(mode)
}

// Load fetches questions for a mode with the built-in fallback applied.
// Convenience for call sites that hold a possibly-nil source.
func Load(ctx context.Context, src Source, mode string) ([]Question, error) {
	return FallbackSource{Primary: src}.Questions(ctx, mode)
}
