// Package score implements the BurnoutScore repository using PostgreSQL.
package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// Repo provides burnout score persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new score repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertSQL = `
INSERT INTO burnout_scores (id, user_id, day, risk_score, factors, notification_sent, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, false, now(), now())
ON CONFLICT (user_id, day) DO UPDATE
SET risk_score = EXCLUDED.risk_score,
    factors    = EXCLUDED.factors,
    updated_at = now()
RETURNING id, notification_sent, created_at, updated_at`

// Upsert inserts or updates the score for (user, day). On update the
// existing notification_sent flag is preserved so a recompute can never
// re-arm an already-sent alert.
func (r *Repo) Upsert(ctx context.Context, s *domain.BurnoutScore) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	payload, err := marshalFactors(s.Factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}

	err = q.QueryRow(ctx, upsertSQL,
		uuid.New(), s.UserID, s.Day, s.RiskScore, payload,
	).Scan(&s.ID, &s.NotificationSent, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapError(err, "burnout_score", s.UserID)
	}

	return nil
}

const claimNotificationSQL = `
UPDATE burnout_scores
SET notification_sent = true, updated_at = now()
WHERE user_id = $1 AND day = $2 AND notification_sent = false`

// ClaimNotification atomically marks the day's notification as sent.
// Returns true only for the single caller that flipped the flag; every
// concurrent or repeated claim for the same (user, day) returns false.
func (r *Repo) ClaimNotification(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, claimNotificationSQL, userID, day)
	if err != nil {
		return false, mapError(err, "burnout_score", userID)
	}

	return tag.RowsAffected() == 1, nil
}

const selectCols = `id, user_id, day, risk_score, factors, notification_sent, created_at, updated_at`

const getByDaySQL = `
SELECT ` + selectCols + `
FROM burnout_scores
WHERE user_id = $1 AND day = $2`

// GetByDay returns the stored score for a specific day.
func (r *Repo) GetByDay(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.BurnoutScore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanScore(q.QueryRow(ctx, getByDaySQL, userID, day))
	if err != nil {
		return nil, mapError(err, "burnout_score", userID)
	}
	return s, nil
}

const latestSQL = `
SELECT ` + selectCols + `
FROM burnout_scores
WHERE user_id = $1
ORDER BY day DESC
LIMIT 1`

// Latest returns the most recently computed score for the user.
func (r *Repo) Latest(ctx context.Context, userID uuid.UUID) (*domain.BurnoutScore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanScore(q.QueryRow(ctx, latestSQL, userID))
	if err != nil {
		return nil, mapError(err, "burnout_score", userID)
	}
	return s, nil
}

const recentScoresSQL = `
SELECT risk_score
FROM burnout_scores
WHERE user_id = $1
ORDER BY day DESC
LIMIT $2`

// RecentScores returns up to limit of the latest stored risk scores,
// most recent first, regardless of how old they are. Used for trend
// analysis.
func (r *Repo) RecentScores(ctx context.Context, userID uuid.UUID, limit int) ([]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, recentScoresSQL, userID, limit)
	if err != nil {
		return nil, mapError(err, "burnout_score", userID)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, mapError(err, "burnout_score", userID)
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}

// History returns scores in [from, to] ordered by day descending. The
// zero time disables the corresponding bound.
func (r *Repo) History(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.BurnoutScore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id", "user_id", "day", "risk_score", "factors", "notification_sent", "created_at", "updated_at").
		From("burnout_scores").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("day DESC")
	if !from.IsZero() {
		builder = builder.Where(sq.GtOrEq{"day": from})
	}
	if !to.IsZero() {
		builder = builder.Where(sq.LtOrEq{"day": to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "burnout_score", userID)
	}
	defer rows.Close()

	var out []*domain.BurnoutScore
	for rows.Next() {
		s, err := scanScore(rows)
		if err != nil {
			return nil, mapError(err, "burnout_score", userID)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Factors JSONB payload
// ---------------------------------------------------------------------------

// factorsJSON is the stored shape of domain.ScoreFactors. Keep the json
// tags stable: rows written by older builds are normalized on read.
type factorsJSON struct {
	Version          int                          `json:"version"`
	Sources          map[string]sourceReadingJSON `json:"sources"`
	TrendModifier    int                          `json:"trendModifier"`
	SeverityModifier int                          `json:"severityModifier"`
	AvailableSources int                          `json:"availableSources"`
}

type sourceReadingJSON struct {
	Score     int     `json:"score"`
	Available bool    `json:"available"`
	Weight    float64 `json:"weight"`
}

func marshalFactors(f domain.ScoreFactors) ([]byte, error) {
	payload := factorsJSON{
		Version:          f.Version,
		Sources:          make(map[string]sourceReadingJSON, len(f.Sources)),
		TrendModifier:    f.TrendModifier,
		SeverityModifier: f.SeverityModifier,
		AvailableSources: f.AvailableSources,
	}
	if payload.Version == 0 {
		payload.Version = domain.FactorsVersion
	}
	for src, r := range f.Sources {
		payload.Sources[src.String()] = sourceReadingJSON{
			Score:     r.Score,
			Available: r.Available,
			Weight:    r.Weight,
		}
	}
	return json.Marshal(payload)
}

// unmarshalFactors tolerates legacy and malformed payloads: anything that
// cannot be decoded yields an empty factors struct rather than an error,
// and unknown source keys are dropped.
func unmarshalFactors(raw []byte) domain.ScoreFactors {
	var payload factorsJSON
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.ScoreFactors{Version: domain.FactorsVersion, Sources: map[domain.DataSource]domain.SourceReading{}}
	}

	f := domain.ScoreFactors{
		Version:          payload.Version,
		Sources:          make(map[domain.DataSource]domain.SourceReading, len(payload.Sources)),
		TrendModifier:    payload.TrendModifier,
		SeverityModifier: payload.SeverityModifier,
		AvailableSources: payload.AvailableSources,
	}
	if f.Version == 0 {
		f.Version = domain.FactorsVersion
	}
	for key, r := range payload.Sources {
		src := domain.DataSource(key)
		if !src.IsValid() {
			continue
		}
		f.Sources[src] = domain.SourceReading{
			Score:     r.Score,
			Available: r.Available,
			Weight:    r.Weight,
		}
	}
	return f
}

func scanScore(row pgx.Row) (*domain.BurnoutScore, error) {
	var (
		s   domain.BurnoutScore
		raw []byte
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Day, &s.RiskScore, &raw, &s.NotificationSent, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Factors = unmarshalFactors(raw)
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
