package quiz

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresSource loads questions from a hosted Postgres deployment.
// Schema: questions(id, mode, prompt, correct, distractors text[], explanation).
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source backed by the given connection pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Questions implements Source.
func (s *PostgresSource) Questions(ctx context.Context, mode string) ([]Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, prompt, correct, distractors, COALESCE(explanation, '')
		 FROM questions
		 WHERE mode = $1
		 ORDER BY id`,
		mode,
	)
	if err != nil {
		return nil, fmt.Errorf("quiz: query questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Prompt, &q.Correct, &q.Distractors, &q.Explanation); err != nil {
			return nil, fmt.Errorf("quiz: scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quiz: iterate questions: %w", err)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}
