// Package breakrecord implements the BreakRecord repository using PostgreSQL.
package breakrecord

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

// Repo provides break record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new break record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO break_records (id, user_id, session_id, started_at)
VALUES ($1, $2, $3, $4)`

// Create opens a new break. A partial unique index allows at most one
// open break per user; a second open maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, b *domain.BreakRecord) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	_, err := q.Exec(ctx, createSQL, b.ID, b.UserID, b.SessionID, b.StartedAt)
	if err != nil {
		return mapError(err, "break_record", b.UserID)
	}

	return nil
}

const breakCols = `id, user_id, session_id, started_at, ended_at, duration_sec, valid`

const getOpenSQL = `
SELECT ` + breakCols + `
FROM break_records
WHERE user_id = $1 AND ended_at IS NULL`

// GetOpen returns the user's currently open break, or domain.ErrNotFound.
func (r *Repo) GetOpen(ctx context.Context, userID uuid.UUID) (*domain.BreakRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBreak(q.QueryRow(ctx, getOpenSQL, userID))
	if err != nil {
		return nil, mapError(err, "break_record", userID)
	}
	return b, nil
}

const closeSQL = `
UPDATE break_records
SET ended_at = $2, duration_sec = $3, valid = $4
WHERE id = $1 AND ended_at IS NULL
RETURNING ` + breakCols

// Close ends an open break with its computed duration and validity.
// Returns domain.ErrNotFound if the break is missing or already closed,
// which makes concurrent reconciliation of the same break harmless.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b, err := scanBreak(q.QueryRow(ctx, closeSQL, id, endedAt, durationSec, valid))
	if err != nil {
		return nil, mapError(err, "break_record", id)
	}
	return b, nil
}

const listBetweenSQL = `
SELECT ` + breakCols + `
FROM break_records
WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
ORDER BY started_at`

// ListBetween returns breaks started in [from, to).
func (r *Repo) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listBetweenSQL, userID, from, to)
	if err != nil {
		return nil, mapError(err, "break_record", userID)
	}
	defer rows.Close()

	var out []domain.BreakRecord
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, mapError(err, "break_record", userID)
		}
		out = append(out, *b)
	}

	return out, rows.Err()
}

const listOrphanedSQL = `
SELECT ` + breakCols + `
FROM break_records
WHERE ended_at IS NULL AND started_at < $1
ORDER BY started_at
LIMIT $2`

// ListOrphanedBefore returns open breaks, across all users, whose start
// is older than the cutoff. Used by the reconciliation job.
func (r *Repo) ListOrphanedBefore(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listOrphanedSQL, cutoff, limit)
	if err != nil {
		return nil, mapError(err, "break_record", uuid.Nil)
	}
	defer rows.Close()

	var out []domain.BreakRecord
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, mapError(err, "break_record", uuid.Nil)
		}
		out = append(out, *b)
	}

	return out, rows.Err()
}

func scanBreak(row pgx.Row) (*domain.BreakRecord, error) {
	var b domain.BreakRecord
	err := row.Scan(&b.ID, &b.UserID, &b.SessionID, &b.StartedAt, &b.EndedAt, &b.DurationSec, &b.Valid)
	if err != nil {
		return nil, err
	}
	return &b, nil
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
