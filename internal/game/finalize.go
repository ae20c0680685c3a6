package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Result is the outcome summary of one finished session.
type Result struct {
	UserID            string
	Mode              string
	Elapsed           float64 // Seconds
	Score             int
	Won               bool
	QuestionsAnswered int
	PlayedAt          time.Time
}

// ProgressStore is the persistence contract the finalizer writes to.
// Implemented by the sqlite store; a hosted deployment can substitute
// any other backend.
type ProgressStore interface {
	// BestTime returns the stored best time for a user and mode.
	// ok is false when no best time exists yet.
	BestTime(ctx context.Context, userID, mode string) (best float64, ok bool, err error)

	// SaveResult records one finished session.
	SaveResult(ctx context.Context, res Result) error

	// UpsertBestTime replaces the stored best time. Only called when a
	// new best has been detected.
	UpsertBestTime(ctx context.Context, userID, mode string, elapsed float64) error

	// SetCompleted marks the mode completed for the user.
	SetCompleted(ctx context.Context, userID, mode string) error
}

// Finalizer persists session outcomes best-effort. Writes never block
// the session's state transition; every failure is logged and
// swallowed so the on-screen summary is unaffected.
type Finalizer struct {
	store   ProgressStore
	timeout time.Duration
}

// NewFinalizer creates a finalizer writing to the given store.
func NewFinalizer(store ProgressStore) *Finalizer {
	return &Finalizer{
		store:   store,
		timeout: 5 * time.Second,
	}
}

// Record persists a session result: the result row always, the best
// time when a won session beats the stored best (strictly), and the
// completion flag when the mode's rule is met. Intended to run on its
// own goroutine.
func (f *Finalizer) Record(res Result, completed bool) {
	if f == nil || f.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.store.SaveResult(ctx, res); err != nil {
		log.Error("finalizer: save result failed", "mode", res.Mode, "user", res.UserID, "err", err)
	}

	if res.Won {
		best, ok, err := f.store.BestTime(ctx, res.UserID, res.Mode)
		if err != nil {
			// Read failure means "no best time yet"; still try the write.
			log.Warn("finalizer: best time read failed", "mode", res.Mode, "user", res.UserID, "err", err)
			ok = false
		}
		if !ok || res.Elapsed < best {
			if err := f.store.UpsertBestTime(ctx, res.UserID, res.Mode, res.Elapsed); err != nil {
				log.Error("finalizer: best time write failed", "mode", res.Mode, "user", res.UserID, "err", err)
			}
		}
	}

	if completed {
		if err := f.store.SetCompleted(ctx, res.UserID, res.Mode); err != nil {
			log.Error("finalizer: completion flag write failed", "mode", res.Mode, "user", res.UserID, "err", err)
		}
	}
}
