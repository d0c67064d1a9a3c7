// Package user implements the User repository using PostgreSQL.
package user

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

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO users (id, email, username, name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING created_at, updated_at`

// Create inserts a new user with a bcrypt password hash.
func (r *Repo) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	err := q.QueryRow(ctx, createSQL, u.ID, u.Email, u.Username, u.Name, passwordHash).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapError(err, "user", u.ID)
	}

	return nil
}

const getByIDSQL = `
SELECT id, email, username, name, created_at, updated_at
FROM users
WHERE id = $1`

// GetByID returns a user by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := q.QueryRow(ctx, getByIDSQL, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "user", id)
	}

	return &u, nil
}

const getByEmailSQL = `
SELECT id, email, username, name, password_hash, created_at, updated_at
FROM users
WHERE email = $1`

// GetByEmail returns a user and their stored password hash by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		u    domain.User
		hash string
	)
	err := q.QueryRow(ctx, getByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.Username, &u.Name, &hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, "", mapError(err, "user", uuid.Nil)
	}

	return &u, hash, nil
}

const listIDsSQL = `
SELECT id
FROM users
ORDER BY created_at`

// ListIDs returns the IDs of all users, oldest first. Used by the
// periodic score recompute job.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listIDsSQL)
	if err != nil {
		return nil, mapError(err, "user", uuid.Nil)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err, "user", uuid.Nil)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
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
