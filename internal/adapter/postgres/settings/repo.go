// Package settings implements the UserSettings repository using PostgreSQL.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// Repo provides user settings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT user_id, risk_threshold, notifications_enabled, working_hours_start, working_hours_end, target_break_interval_min, updated_at
FROM user_settings
WHERE user_id = $1`

// Get returns the stored settings for a user.
// Returns domain.ErrNotFound when the user never saved any.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.UserSettings
	err := q.QueryRow(ctx, getSQL, userID).Scan(
		&s.UserID, &s.RiskThreshold, &s.NotificationsEnabled,
		&s.WorkingHoursStart, &s.WorkingHoursEnd, &s.TargetBreakInterval, &s.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "user_settings", userID)
	}

	return &s, nil
}

const upsertSQL = `
INSERT INTO user_settings (user_id, risk_threshold, notifications_enabled, working_hours_start, working_hours_end, target_break_interval_min, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (user_id) DO UPDATE
SET risk_threshold            = EXCLUDED.risk_threshold,
    notifications_enabled     = EXCLUDED.notifications_enabled,
    working_hours_start       = EXCLUDED.working_hours_start,
    working_hours_end         = EXCLUDED.working_hours_end,
    target_break_interval_min = EXCLUDED.target_break_interval_min,
    updated_at                = now()
RETURNING updated_at`

// Upsert writes the full settings row for a user.
func (r *Repo) Upsert(ctx context.Context, s *domain.UserSettings) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, upsertSQL,
		s.UserID, s.RiskThreshold, s.NotificationsEnabled,
		s.WorkingHoursStart, s.WorkingHoursEnd, s.TargetBreakInterval,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return mapError(err, "user_settings", s.UserID)
	}

	return nil
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
