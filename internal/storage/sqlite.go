// Package storage provides SQLite-based persistence for session
// results, per-user best times, completion flags and offline question
// content. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/grammar-arcade/internal/game"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ResultEntry is one persisted session result.
type ResultEntry struct {
	ID                int64
	UserID            string
	Mode              string
	Elapsed           float64
	Score             int
	Won               bool
	QuestionsAnswered int
	PlayedAt          time.Time
}

// ModeStats contains aggregated statistics for one mode and user.
type ModeStats struct {
	Mode       string
	Sessions   int
	Wins       int
	HighScore  int
	BestTime   float64 // 0 when no winning session exists
	Completed  bool
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed, runs migrations and
// seeds the questions table with the built-in set on first run.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	if err := store.seedQuestions(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: question seed failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			elapsed REAL NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			questions_answered INTEGER NOT NULL DEFAULT 0,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_user_mode ON results(user_id, mode);
		CREATE INDEX IF NOT EXISTS idx_results_recent ON results(user_id, mode, played_at DESC);

		CREATE TABLE IF NOT EXISTS progress (
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			best_time REAL NOT NULL,
			PRIMARY KEY (user_id, mode)
		);

		CREATE TABLE IF NOT EXISTS completions (
			user_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, mode)
		);

		CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			prompt TEXT NOT NULL,
			correct TEXT NOT NULL,
			distractors TEXT NOT NULL,
			explanation TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_questions_mode ON questions(mode);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedQuestions inserts the built-in question set for each mode when
// that mode's table slice is empty, so offline play has content from
// the first run on. Existing rows are never touched.
func (s *Store) seedQuestions() error {
	for _, mode := range []string{quiz.ModeRunner, quiz.ModeRacing} {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM questions WHERE mode = ?", mode).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		builtin, err := quiz.Builtin(mode)
		if err != nil {
			return err
		}
		for _, q := range builtin {
			distractors, err := json.Marshal(q.Distractors)
			if err != nil {
				return err
			}
			_, err = s.db.Exec(
				`INSERT INTO questions (id, mode, prompt, correct, distractors, explanation)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				q.ID, mode, q.Prompt, q.Correct, string(distractors), q.Explanation,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records one finished session. Implements game.ProgressStore.
func (s *Store) SaveResult(ctx context.Context, res game.Result) error {
	playedAt := res.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (user_id, mode, elapsed, score, won, questions_answered, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.UserID, res.Mode, res.Elapsed, res.Score, boolToInt(res.Won),
		res.QuestionsAnswered, playedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// BestTime returns the stored best time for a user and mode.
// Implements game.ProgressStore; ok is false when no best exists yet.
func (s *Store) BestTime(ctx context.Context, userID, mode string) (float64, bool, error) {
	var best float64
	err := s.db.QueryRowContext(ctx,
		"SELECT best_time FROM progress WHERE user_id = ? AND mode = ?",
		userID, mode,
	).Scan(&best)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	return best, true, nil
}

// UpsertBestTime stores a new best time. Implements game.ProgressStore.
// The caller decides whether the new time actually beats the old one;
// the upsert itself still guards with MIN so concurrent finalizers
// cannot regress a better stored time.
func (s *Store) UpsertBestTime(ctx context.Context, userID, mode string, elapsed float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, mode, best_time) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, mode) DO UPDATE SET best_time = MIN(best_time, excluded.best_time)`,
		userID, mode, elapsed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert best time: %w", err)
	}
	return nil
}

// SetCompleted marks a mode completed for the user. Idempotent.
// Implements game.ProgressStore.
func (s *Store) SetCompleted(ctx context.Context, userID, mode string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completions (user_id, mode) VALUES (?, ?)
		 ON CONFLICT(user_id, mode) DO NOTHING`,
		userID, mode,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set completion flag: %w", err)
	}
	return nil
}

// IsCompleted reports whether the user has completed the mode.
func (s *Store) IsCompleted(ctx context.Context, userID, mode string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM completions WHERE user_id = ? AND mode = ?",
		userID, mode,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query completion flag: %w", err)
	}
	return true, nil
}

// RecentResults retrieves the most recent results for a user and mode.
func (s *Store) RecentResults(ctx context.Context, userID, mode string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, mode, elapsed, score, won, questions_answered, played_at
		 FROM results
		 WHERE user_id = ? AND mode = ?
		 ORDER BY played_at DESC, id DESC
		 LIMIT ?`,
		userID, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var won int
		var playedAt any
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mode, &e.Elapsed, &e.Score, &won, &e.QuestionsAnswered, &playedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Won = won != 0
		e.PlayedAt = parseTimestamp(playedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Stats retrieves aggregated statistics for a user and mode.
func (s *Store) Stats(ctx context.Context, userID, mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(MAX(played_at), '')
		 FROM results WHERE user_id = ? AND mode = ?`,
		userID, mode,
	).Scan(&stats.Sessions, &stats.Wins, &stats.HighScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	if best, ok, err := s.BestTime(ctx, userID, mode); err != nil {
		return nil, err
	} else if ok {
		stats.BestTime = best
	}

	completed, err := s.IsCompleted(ctx, userID, mode)
	if err != nil {
		return nil, err
	}
	stats.Completed = completed

	return stats, nil
}

// Questions loads the question set for a mode. Implements quiz.Source,
// making the local database the offline question provider.
func (s *Store) Questions(ctx context.Context, mode string) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, prompt, correct, distractors, explanation
		 FROM questions
		 WHERE mode = ?
		 ORDER BY id`,
		mode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query questions: %w", err)
	}
	defer rows.Close()

	var questions []quiz.Question
	for rows.Next() {
		var q quiz.Question
		var distractors string
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Correct, &distractors, &q.Explanation); err != nil {
			return nil, fmt.Errorf("storage: cannot scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(distractors), &q.Distractors); err != nil {
			return nil, fmt.Errorf("storage: cannot decode distractors for %s: %w", q.ID, err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	if len(questions) == 0 {
		return nil, quiz.ErrNoQuestions
	}
	return questions, nil
}

// Ensure Store satisfies the contracts it backs.
var (
	_ game.ProgressStore = (*Store)(nil)
	_ quiz.Source        = (*Store)(nil)
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTimestamp handles both time.Time and string representations
// returned by the sqlite driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
