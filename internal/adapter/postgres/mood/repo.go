// Package mood implements the MoodEntry repository using PostgreSQL.
package mood

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// Repo provides mood entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new mood repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO mood_entries (id, user_id, mood, recorded_at)
VALUES ($1, $2, $3, $4)`

// Insert stores one mood check-in.
func (r *Repo) Insert(ctx context.Context, e *domain.MoodEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := q.Exec(ctx, insertSQL, e.ID, e.UserID, e.Label, e.RecordedAt)
	if err != nil {
		return mapError(err, "mood_entry", e.UserID)
	}

	return nil
}

const listSinceSQL = `
SELECT id, user_id, mood, recorded_at
FROM mood_entries
WHERE user_id = $1 AND recorded_at >= $2
ORDER BY recorded_at`

// ListSince returns mood entries recorded at or after the given time.
func (r *Repo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSinceSQL, userID, since)
	if err != nil {
		return nil, mapError(err, "mood_entry", userID)
	}
	defer rows.Close()

	var out []domain.MoodEntry
	for rows.Next() {
		var e domain.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Label, &e.RecordedAt); err != nil {
			return nil, mapError(err, "mood_entry", userID)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
