// Package commit implements the CommitRecord repository using PostgreSQL.
package commit

import (
	"context"
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

// Repo provides commit record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new commit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// BulkInsert stores fetched commits, skipping shas the user already has.
// Returns the number of rows actually inserted.
func (r *Repo) BulkInsert(ctx context.Context, commits []domain.CommitRecord) (int, error) {
	if len(commits) == 0 {
		return 0, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert("commit_records").
		Columns("id", "user_id", "sha", "repo", "message", "committed_at", "additions", "deletions").
		Suffix("ON CONFLICT (user_id, sha) DO NOTHING")
	for _, c := range commits {
		id := c.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		builder = builder.Values(id, c.UserID, c.SHA, c.Repo, c.Message, c.CommittedAt, c.Additions, c.Deletions)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk insert: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError(err, "commit_record", commits[0].UserID)
	}

	return int(tag.RowsAffected()), nil
}

const windowCountsSQL = `
SELECT
    count(*) AS total,
    count(*) FILTER (
        WHERE EXTRACT(HOUR FROM committed_at AT TIME ZONE 'UTC') >= 22
           OR EXTRACT(HOUR FROM committed_at AT TIME ZONE 'UTC') <= 6
    ) AS late_night,
    count(*) FILTER (
        WHERE EXTRACT(ISODOW FROM committed_at AT TIME ZONE 'UTC') IN (6, 7)
    ) AS weekend,
    count(*) FILTER (WHERE committed_at >= $3) AS recent_total
FROM commit_records
WHERE user_id = $1 AND committed_at >= $2`

// WindowCounts aggregates the user's commits since the window start.
// recentSince bounds the "recent" bucket used for spike detection.
func (r *Repo) WindowCounts(ctx context.Context, userID uuid.UUID, since, recentSince time.Time) (domain.CommitWindowCounts, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.CommitWindowCounts
	err := q.QueryRow(ctx, windowCountsSQL, userID, since, recentSince).
		Scan(&c.Total, &c.LateNight, &c.Weekend, &c.RecentTotal)
	if err != nil {
		return domain.CommitWindowCounts{}, mapError(err, "commit_record", userID)
	}

	return c, nil
}

const listSinceSQL = `
SELECT id, user_id, sha, repo, message, committed_at, additions, deletions
FROM commit_records
WHERE user_id = $1 AND committed_at >= $2
ORDER BY committed_at DESC`

// ListSince returns stored commits since the given time, newest first.
func (r *Repo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CommitRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSinceSQL, userID, since)
	if err != nil {
		return nil, mapError(err, "commit_record", userID)
	}
	defer rows.Close()

	var out []domain.CommitRecord
	for rows.Next() {
		var c domain.CommitRecord
		if err := rows.Scan(&c.ID, &c.UserID, &c.SHA, &c.Repo, &c.Message, &c.CommittedAt, &c.Additions, &c.Deletions); err != nil {
			return nil, mapError(err, "commit_record", userID)
		}
		out = append(out, c)
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
