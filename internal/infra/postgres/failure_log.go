package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz-service/internal/domain"
)

// FailureLog writes failed acquisition attempts to Postgres so operators can
// inspect the raw AI responses. Implements app.FailureSink.
type FailureLog struct {
	pool *pgxpool.Pool
}

func NewFailureLog(pool *pgxpool.Pool) *FailureLog {
	return &FailureLog{pool: pool}
}

func (l *FailureLog) Record(ctx context.Context, failure domain.GenerationFailure) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO generation_failures (category, level, question_type, requested, reason, raw_response)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		failure.Category, string(failure.Level), string(failure.Type),
		failure.Requested, failure.Reason, failure.RawResponse,
	)
	if err != nil {
		return fmt.Errorf("record generation failure: %w", err)
	}
	return nil
}
