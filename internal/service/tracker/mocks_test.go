package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/internal/provider"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc          func(ctx context.Context, s *domain.WorkSession) error
	GetOpenFunc         func(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error)
	CloseFunc           func(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMin int) (*domain.WorkSession, error)
	IncrementBreaksFunc func(ctx context.Context, id uuid.UUID) error
	ListSinceFunc       func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error)
}

func (m *sessionRepoMock) Create(ctx context.Context, s *domain.WorkSession) error {
	if m.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	return m.CreateFunc(ctx, s)
}

func (m *sessionRepoMock) GetOpen(ctx context.Context, userID uuid.UUID) (*domain.WorkSession, error) {
	if m.GetOpenFunc == nil {
		panic("sessionRepoMock.GetOpenFunc: method is nil but sessionRepo.GetOpen was just called")
	}
	return m.GetOpenFunc(ctx, userID)
}

func (m *sessionRepoMock) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMin int) (*domain.WorkSession, error) {
	if m.CloseFunc == nil {
		panic("sessionRepoMock.CloseFunc: method is nil but sessionRepo.Close was just called")
	}
	return m.CloseFunc(ctx, id, endedAt, durationMin)
}

func (m *sessionRepoMock) IncrementBreaks(ctx context.Context, id uuid.UUID) error {
	if m.IncrementBreaksFunc == nil {
		panic("sessionRepoMock.IncrementBreaksFunc: method is nil but sessionRepo.IncrementBreaks was just called")
	}
	return m.IncrementBreaksFunc(ctx, id)
}

func (m *sessionRepoMock) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error) {
	if m.ListSinceFunc == nil {
		panic("sessionRepoMock.ListSinceFunc: method is nil but sessionRepo.ListSince was just called")
	}
	return m.ListSinceFunc(ctx, userID, since)
}

var _ breakRepo = &breakRepoMock{}

type breakRepoMock struct {
	CreateFunc      func(ctx context.Context, b *domain.BreakRecord) error
	GetOpenFunc     func(ctx context.Context, userID uuid.UUID) (*domain.BreakRecord, error)
	CloseFunc       func(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error)
	ListBetweenFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error)
}

func (m *breakRepoMock) Create(ctx context.Context, b *domain.BreakRecord) error {
	if m.CreateFunc == nil {
		panic("breakRepoMock.CreateFunc: method is nil but breakRepo.Create was just called")
	}
	return m.CreateFunc(ctx, b)
}

func (m *breakRepoMock) GetOpen(ctx context.Context, userID uuid.UUID) (*domain.BreakRecord, error) {
	if m.GetOpenFunc == nil {
		panic("breakRepoMock.GetOpenFunc: method is nil but breakRepo.GetOpen was just called")
	}
	return m.GetOpenFunc(ctx, userID)
}

func (m *breakRepoMock) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error) {
	if m.CloseFunc == nil {
		panic("breakRepoMock.CloseFunc: method is nil but breakRepo.Close was just called")
	}
	return m.CloseFunc(ctx, id, endedAt, durationSec, valid)
}

func (m *breakRepoMock) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error) {
	if m.ListBetweenFunc == nil {
		panic("breakRepoMock.ListBetweenFunc: method is nil but breakRepo.ListBetween was just called")
	}
	return m.ListBetweenFunc(ctx, userID, from, to)
}

var _ moodRepo = &moodRepoMock{}

type moodRepoMock struct {
	InsertFunc func(ctx context.Context, e *domain.MoodEntry) error
}

func (m *moodRepoMock) Insert(ctx context.Context, e *domain.MoodEntry) error {
	if m.InsertFunc == nil {
		panic("moodRepoMock.InsertFunc: method is nil but moodRepo.Insert was just called")
	}
	return m.InsertFunc(ctx, e)
}

var _ velocityRepo = &velocityRepoMock{}

type velocityRepoMock struct {
	InsertFunc func(ctx context.Context, e *domain.VelocityEntry) error
}

func (m *velocityRepoMock) Insert(ctx context.Context, e *domain.VelocityEntry) error {
	if m.InsertFunc == nil {
		panic("velocityRepoMock.InsertFunc: method is nil but velocityRepo.Insert was just called")
	}
	return m.InsertFunc(ctx, e)
}

var _ commitRepo = &commitRepoMock{}

type commitRepoMock struct {
	BulkInsertFunc func(ctx context.Context, commits []domain.CommitRecord) (int, error)
}

func (m *commitRepoMock) BulkInsert(ctx context.Context, commits []domain.CommitRecord) (int, error) {
	if m.BulkInsertFunc == nil {
		panic("commitRepoMock.BulkInsertFunc: method is nil but commitRepo.BulkInsert was just called")
	}
	return m.BulkInsertFunc(ctx, commits)
}

var _ codingRepo = &codingRepoMock{}

type codingRepoMock struct {
	UpsertFunc func(ctx context.Context, d *domain.CodingDay) error
}

func (m *codingRepoMock) Upsert(ctx context.Context, d *domain.CodingDay) error {
	if m.UpsertFunc == nil {
		panic("codingRepoMock.UpsertFunc: method is nil but codingRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, d)
}

var _ commitFetcher = &commitFetcherMock{}

type commitFetcherMock struct {
	FetchCommitsFunc func(ctx context.Context, token, login string, since time.Time) ([]provider.CommitResult, error)
}

func (m *commitFetcherMock) FetchCommits(ctx context.Context, token, login string, since time.Time) ([]provider.CommitResult, error) {
	if m.FetchCommitsFunc == nil {
		panic("commitFetcherMock.FetchCommitsFunc: method is nil but commitFetcher.FetchCommits was just called")
	}
	return m.FetchCommitsFunc(ctx, token, login, since)
}

var _ codingFetcher = &codingFetcherMock{}

type codingFetcherMock struct {
	FetchSummariesFunc func(ctx context.Context, apiKey string, start, end time.Time) ([]provider.CodingDayResult, error)
}

func (m *codingFetcherMock) FetchSummaries(ctx context.Context, apiKey string, start, end time.Time) ([]provider.CodingDayResult, error) {
	if m.FetchSummariesFunc == nil {
		panic("codingFetcherMock.FetchSummariesFunc: method is nil but codingFetcher.FetchSummaries was just called")
	}
	return m.FetchSummariesFunc(ctx, apiKey, start, end)
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}
