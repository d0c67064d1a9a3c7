// Package velocity implements the VelocityEntry repository using PostgreSQL.
package velocity

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

// Repo provides velocity entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new velocity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertSQL = `
INSERT INTO velocity_entries (id, user_id, points, completed_at)
VALUES ($1, $2, $3, $4)`

// Insert stores one completed-work entry.
func (r *Repo) Insert(ctx context.Context, e *domain.VelocityEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := q.Exec(ctx, insertSQL, e.ID, e.UserID, e.Points, e.CompletedAt)
	if err != nil {
		return mapError(err, "velocity_entry", e.UserID)
	}

	return nil
}

const sumBetweenSQL = `
SELECT COALESCE(SUM(points), 0)
FROM velocity_entries
WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3`

// SumBetween returns the total points completed in [from, to).
func (r *Repo) SumBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var sum int
	if err := q.QueryRow(ctx, sumBetweenSQL, userID, from, to).Scan(&sum); err != nil {
		return 0, mapError(err, "velocity_entry", userID)
	}

	return sum, nil
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
