// Package worksession implements the WorkSession repository using PostgreSQL.
package worksession

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

// Repo provides work session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new work session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO work_sessions (id, user_id, started_at, breaks_taken)
VALUES ($1, $2, $3, 0)`

// Create opens a new work session. A partial unique index allows at most
// one open session per user; a second open maps to domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, s *domain.WorkSession) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := q.Exec(ctx, createSQL, s.ID, s.UserID, s.StartedAt)
	if err != nil {
		return mapError(err, "work_session", s.UserID)
	}

	return nil
}

const sessionCols = `id, user_id, started_at, ended_at, duration_min, breaks_taken`

const getOpenSQL = `
SELECT ` + sessionCols + `
FROM work_sessions
WHERE user_id = $1 AND ended_at IS NULL`

// GetOpen returns the user's currently open session, or domain.ErrNotFound.
func (r *Repo) GetOpen(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSession(q.QueryRow(ctx, getOpenSQL, userID))
	if err != nil {
		return nil, mapError(err, "work_session", userID)
	}
	return s, nil
}

const closeSQL = `
UPDATE work_sessions
SET ended_at = $2, duration_min = $3
WHERE id = $1 AND ended_at IS NULL
RETURNING ` + sessionCols

// Close ends an open session, recording its duration in minutes.
// Returns domain.ErrNotFound if the session is missing or already closed.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMin int) (*domain.WorkSession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSession(q.QueryRow(ctx, closeSQL, id, endedAt, durationMin))
	if err != nil {
		return nil, mapError(err, "work_session", id)
	}
	return s, nil
}

const incrementBreaksSQL = `
UPDATE work_sessions
SET breaks_taken = breaks_taken + 1
WHERE id = $1`

// IncrementBreaks bumps the session's valid-break counter.
func (r *Repo) IncrementBreaks(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, incrementBreaksSQL, id)
	if err != nil {
		return mapError(err, "work_session", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("work_session %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

const listSinceSQL = `
SELECT ` + sessionCols + `
FROM work_sessions
WHERE user_id = $1 AND started_at >= $2
ORDER BY started_at`

// ListSince returns sessions started at or after the given time.
func (r *Repo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSinceSQL, userID, since)
	if err != nil {
		return nil, mapError(err, "work_session", userID)
	}
	defer rows.Close()

	var out []domain.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, mapError(err, "work_session", userID)
		}
		out = append(out, *s)
	}

	return out, rows.Err()
}

const countLongNoBreakSQL = `
SELECT count(*)
FROM work_sessions
WHERE user_id = $1 AND started_at >= $2
AND duration_min > $3 AND breaks_taken = 0`

// CountLongWithoutBreaks counts sessions since the given time that ran
// longer than minMinutes without a single valid break.
func (r *Repo) CountLongWithoutBreaks(ctx context.Context, userID uuid.UUID, since time.Time, minMinutes int) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := q.QueryRow(ctx, countLongNoBreakSQL, userID, since, minMinutes).Scan(&n); err != nil {
		return 0, mapError(err, "work_session", userID)
	}

	return n, nil
}

func scanSession(row pgx.Row) (*domain.WorkSession, error) {
	var s domain.WorkSession
	err := row.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.EndedAt, &s.DurationMin, &s.BreaksTaken)
	if err != nil {
		return nil, err
	}
	return &s, nil
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
