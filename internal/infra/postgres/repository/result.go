package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/quiz-bot/internal/infra/postgres"
)

const createResultsTable = `
	CREATE TABLE IF NOT EXISTS quiz_results (
		run_id      UUID PRIMARY KEY,
		user_id     BIGINT NOT NULL,
		score       INT NOT NULL,
		total       INT NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS quiz_results_user_finished_idx
		ON quiz_results (user_id, finished_at DESC);
`

// ResultRepository provides access to finished quiz runs in the database.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided database handle.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// EnsureSchema creates the results table if it does not exist.
func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createResultsTable); err != nil {
		return fmt.Errorf("create quiz_results: %w", err)
	}
	return nil
}

// Save stores a finished run. Saving the same run twice is a no-op.
func (r *ResultRepository) Save(ctx context.Context, res entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (run_id, user_id, score, total, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		res.RunID,
		res.UserID,
		res.Score,
		res.Total,
		res.StartedAt,
		res.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	return nil
}

// ListByUser returns the latest results of a user, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error) {
	query := `
		SELECT run_id, user_id, score, total, started_at, finished_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	var results []entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		if err := rows.Scan(
			&res.RunID,
			&res.UserID,
			&res.Score,
			&res.Total,
			&res.StartedAt,
			&res.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}

	return results, nil
}
