// Package tracker implements activity ingestion: work sessions, breaks,
// mood and velocity check-ins, and provider syncs for commits and coding
// time. The scoring engine only ever reads what this package writes.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/config"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetOpen(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMin int) (*domain.WorkSession, error)
	IncrementBreaks(ctx context.Context, id uuid.UUID) error
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error)
}

type breakRepo interface {
	Create(ctx context.Context, b *domain.BreakRecord) error
	GetOpen(ctx context.Context, userID uuid.UUID) (*domain.BreakRecord, error)
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error)
	ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error)
}

type moodRepo interface {
	Insert(ctx context.Context, e *domain.MoodEntry) error
}

type velocityRepo interface {
	Insert(ctx context.Context, e *domain.VelocityEntry) error
}

type commitRepo interface {
	BulkInsert(ctx context.Context, commits []domain.CommitRecord) (int, error)
}

type codingRepo interface {
	Upsert(ctx context.Context, d *domain.CodingDay) error
}

type commitFetcher interface {
	FetchCommits(ctx context.Context, token, login string, since time.Time) ([]provider.CommitResult, error)
}

type codingFetcher interface {
	FetchSummaries(ctx context.Context, apiKey string, start, end time.Time) ([]provider.CodingDayResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the tracking business logic.
type Service struct {
	sessions      sessionRepo
	breaks        breakRepo
	moods         moodRepo
	velocity      velocityRepo
	commits       commitRepo
	coding        codingRepo
	github        commitFetcher
	wakatime      codingFetcher
	tx            txManager
	log           *slog.Logger
	minValidBreak time.Duration
	commitDays    int
	codingDays    int

	now func() time.Time
}

// NewService creates a new tracker service.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	breaks breakRepo,
	moods moodRepo,
	velocity velocityRepo,
	commits commitRepo,
	coding codingRepo,
	github commitFetcher,
	wakatime codingFetcher,
	tx txManager,
	breaksCfg config.BreaksConfig,
	integrations config.IntegrationsConfig,
) *Service {
	return &Service{
		sessions:      sessions,
		breaks:        breaks,
		moods:         moods,
		velocity:      velocity,
		commits:       commits,
		coding:        coding,
		github:        github,
		wakatime:      wakatime,
		tx:            tx,
		log:           log.With("service", "tracker"),
		minValidBreak: breaksCfg.MinValidDuration,
		commitDays:    integrations.CommitWindowDays,
		codingDays:    integrations.CodingWindowDays,
		now:           time.Now,
	}
}

// dayOf truncates a moment to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
