package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user and user_settings with default values.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Username:  "testuser-" + suffix,
		Name:      "Test User " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, '', $5, $6)`,
		user.ID, user.Email, user.Username, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	settings := domain.DefaultUserSettings(user.ID)
	settings.UpdatedAt = now

	_, err = pool.Exec(ctx,
		`INSERT INTO user_settings (user_id, risk_threshold, notifications_enabled, working_hours_start, working_hours_end, target_break_interval_min, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		settings.UserID, settings.RiskThreshold, settings.NotificationsEnabled,
		settings.WorkingHoursStart, settings.WorkingHoursEnd, settings.TargetBreakInterval, settings.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user_settings: %v", err)
	}

	return user
}

// SeedWorkSession creates a work session. Pass a nil endedAt for an open session;
// a closed session gets its duration computed from the two timestamps.
func SeedWorkSession(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, startedAt time.Time, endedAt *time.Time, breaksTaken int) domain.WorkSession {
	t.Helper()

	s := domain.WorkSession{
		ID:          uuid.New(),
		UserID:      userID,
		StartedAt:   startedAt.UTC(),
		EndedAt:     endedAt,
		BreaksTaken: breaksTaken,
	}
	if endedAt != nil {
		mins := int(endedAt.Sub(startedAt).Minutes())
		s.DurationMin = &mins
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO work_sessions (id, user_id, started_at, ended_at, duration_min, breaks_taken)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.UserID, s.StartedAt, s.EndedAt, s.DurationMin, s.BreaksTaken,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWorkSession insert: %v", err)
	}

	return s
}

// SeedBreak creates a break record. A closed break gets duration and validity
// computed the same way the tracker computes them.
func SeedBreak(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, sessionID *uuid.UUID, startedAt time.Time, endedAt *time.Time) domain.BreakRecord {
	t.Helper()

	b := domain.BreakRecord{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		StartedAt: startedAt.UTC(),
		EndedAt:   endedAt,
	}
	if endedAt != nil {
		secs := int(endedAt.Sub(startedAt).Seconds())
		valid := secs >= domain.MinValidBreakSeconds
		b.DurationSec = &secs
		b.Valid = &valid
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO break_records (id, user_id, session_id, started_at, ended_at, duration_sec, valid)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.UserID, b.SessionID, b.StartedAt, b.EndedAt, b.DurationSec, b.Valid,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBreak insert: %v", err)
	}

	return b
}

// SeedMood creates a mood entry.
func SeedMood(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, label string, recordedAt time.Time) domain.MoodEntry {
	t.Helper()

	m := domain.MoodEntry{
		ID:         uuid.New(),
		UserID:     userID,
		Label:      label,
		RecordedAt: recordedAt.UTC(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO mood_entries (id, user_id, mood, recorded_at) VALUES ($1, $2, $3, $4)`,
		m.ID, m.UserID, m.Label, m.RecordedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMood insert: %v", err)
	}

	return m
}

// SeedVelocity creates a velocity entry.
func SeedVelocity(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, points int, completedAt time.Time) domain.VelocityEntry {
	t.Helper()

	v := domain.VelocityEntry{
		ID:          uuid.New(),
		UserID:      userID,
		Points:      points,
		CompletedAt: completedAt.UTC(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO velocity_entries (id, user_id, points, completed_at) VALUES ($1, $2, $3, $4)`,
		v.ID, v.UserID, v.Points, v.CompletedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVelocity insert: %v", err)
	}

	return v
}

// SeedCommit creates a commit record with a unique sha.
func SeedCommit(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, committedAt time.Time) domain.CommitRecord {
	t.Helper()

	c := domain.CommitRecord{
		ID:          uuid.New(),
		UserID:      userID,
		SHA:         uuid.New().String(),
		Repo:        "example/repo",
		Message:     "test commit " + uniqueSuffix(),
		CommittedAt: committedAt.UTC(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO commit_records (id, user_id, sha, repo, message, committed_at, additions, deletions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.UserID, c.SHA, c.Repo, c.Message, c.CommittedAt, c.Additions, c.Deletions,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCommit insert: %v", err)
	}

	return c
}

// SeedCodingDay creates one day of synced coding time.
func SeedCodingDay(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, day time.Time, totalSec int) domain.CodingDay {
	t.Helper()

	day = day.UTC().Truncate(24 * time.Hour)
	d := domain.CodingDay{
		UserID:   userID,
		Day:      day,
		TotalSec: totalSec,
		Weekend:  day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO coding_days (user_id, day, total_sec, weekend) VALUES ($1, $2, $3, $4)`,
		d.UserID, d.Day, d.TotalSec, d.Weekend,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCodingDay insert: %v", err)
	}

	return d
}
