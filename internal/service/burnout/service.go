// Package burnout implements the burnout risk scoring engine: six windowed
// data-source calculators, weight redistribution over the available ones,
// trend and severity modifiers, and the daily notification claim.
package burnout

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/config"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type scoreRepo interface {
	Upsert(ctx context.Context, s *domain.BurnoutScore) error
	ClaimNotification(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	GetByDay(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.BurnoutScore, error)
	Latest(ctx context.Context, userID uuid.UUID) (*domain.BurnoutScore, error)
	RecentScores(ctx context.Context, userID uuid.UUID, limit int) ([]int, error)
	History(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.BurnoutScore, error)
}

type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

type velocityRepo interface {
	SumBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
}

type moodRepo interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error)
}

type sessionRepo interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error)
	CountLongWithoutBreaks(ctx context.Context, userID uuid.UUID, since time.Time, minMinutes int) (int, error)
}

type breakRepo interface {
	ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error)
}

type commitRepo interface {
	WindowCounts(ctx context.Context, userID uuid.UUID, since, recentSince time.Time) (domain.CommitWindowCounts, error)
}

type codingRepo interface {
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CodingDay, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the burnout scoring business logic.
type Service struct {
	scores   scoreRepo
	settings settingsRepo
	velocity velocityRepo
	moods    moodRepo
	sessions sessionRepo
	breaks   breakRepo
	commits  commitRepo
	coding   codingRepo
	log      *slog.Logger

	cfg        config.ScoringConfig
	shortBreak time.Duration
	commitDays int
	codingDays int

	now func() time.Time
}

// NewService creates a new burnout scoring service.
func NewService(
	log *slog.Logger,
	scores scoreRepo,
	settings settingsRepo,
	velocity velocityRepo,
	moods moodRepo,
	sessions sessionRepo,
	breaks breakRepo,
	commits commitRepo,
	coding codingRepo,
	cfg config.ScoringConfig,
	breaksCfg config.BreaksConfig,
	integrations config.IntegrationsConfig,
) *Service {
	return &Service{
		scores:     scores,
		settings:   settings,
		velocity:   velocity,
		moods:      moods,
		sessions:   sessions,
		breaks:     breaks,
		commits:    commits,
		coding:     coding,
		log:        log.With("service", "burnout"),
		cfg:        cfg,
		shortBreak: breaksCfg.ShortBreakDuration,
		commitDays: integrations.CommitWindowDays,
		codingDays: integrations.CodingWindowDays,
		now:        time.Now,
	}
}
