// Package codingday implements the CodingDay repository using PostgreSQL.
package codingday

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

// Repo provides coding time persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new coding day repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertSQL = `
INSERT INTO coding_days (user_id, day, total_sec, weekend)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, day) DO UPDATE
SET total_sec = EXCLUDED.total_sec,
    weekend   = EXCLUDED.weekend`

// Upsert writes one day of synced coding time. Re-syncing a day
// overwrites it with the provider's latest total.
func (r *Repo) Upsert(ctx context.Context, d *domain.CodingDay) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, upsertSQL, d.UserID, d.Day, d.TotalSec, d.Weekend)
	if err != nil {
		return mapError(err, "coding_day", d.UserID)
	}

	return nil
}

const listSinceSQL = `
SELECT user_id, day, total_sec, weekend
FROM coding_days
WHERE user_id = $1 AND day >= $2
ORDER BY day`

// ListSince returns synced days at or after the given day. An empty
// result means the coding-time integration has produced no data.
func (r *Repo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CodingDay, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSinceSQL, userID, since)
	if err != nil {
		return nil, mapError(err, "coding_day", userID)
	}
	defer rows.Close()

	var out []domain.CodingDay
	for rows.Next() {
		var d domain.CodingDay
		if err := rows.Scan(&d.UserID, &d.Day, &d.TotalSec, &d.Weekend); err != nil {
			return nil, mapError(err, "coding_day", userID)
		}
		out = append(out, d)
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
