package burnout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// Hand-rolled doubles in the moq shape: one Func field per method, panic
// when a test exercises a call it did not stub.

var _ scoreRepo = &scoreRepoMock{}

type scoreRepoMock struct {
	UpsertFunc            func(ctx context.Context, s *domain.BurnoutScore) error
	ClaimNotificationFunc func(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	GetByDayFunc          func(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.BurnoutScore, error)
	LatestFunc            func(ctx context.Context, userID uuid.UUID) (*domain.BurnoutScore, error)
	RecentScoresFunc      func(ctx context.Context, userID uuid.UUID, limit int) ([]int, error)
	HistoryFunc           func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.BurnoutScore, error)
}

func (m *scoreRepoMock) Upsert(ctx context.Context, s *domain.BurnoutScore) error {
	if m.UpsertFunc == nil {
		panic("scoreRepoMock.UpsertFunc: method is nil but scoreRepo.Upsert was just called")
	}
	return m.UpsertFunc(ctx, s)
}

func (m *scoreRepoMock) ClaimNotification(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	if m.ClaimNotificationFunc == nil {
		panic("scoreRepoMock.ClaimNotificationFunc: method is nil but scoreRepo.ClaimNotification was just called")
	}
	return m.ClaimNotificationFunc(ctx, userID, day)
}

func (m *scoreRepoMock) GetByDay(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.BurnoutScore, error) {
	if m.GetByDayFunc == nil {
		panic("scoreRepoMock.GetByDayFunc: method is nil but scoreRepo.GetByDay was just called")
	}
	return m.GetByDayFunc(ctx, userID, day)
}

func (m *scoreRepoMock) Latest(ctx context.Context, userID uuid.UUID) (*domain.BurnoutScore, error) {
	if m.LatestFunc == nil {
		panic("scoreRepoMock.LatestFunc: method is nil but scoreRepo.Latest was just called")
	}
	return m.LatestFunc(ctx, userID)
}

func (m *scoreRepoMock) RecentScores(ctx context.Context, userID uuid.UUID, limit int) ([]int, error) {
	if m.RecentScoresFunc == nil {
		panic("scoreRepoMock.RecentScoresFunc: method is nil but scoreRepo.RecentScores was just called")
	}
	return m.RecentScoresFunc(ctx, userID, limit)
}

func (m *scoreRepoMock) History(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.BurnoutScore, error) {
	if m.HistoryFunc == nil {
		panic("scoreRepoMock.HistoryFunc: method is nil but scoreRepo.History was just called")
	}
	return m.HistoryFunc(ctx, userID, from, to)
}

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	GetFunc func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
}

func (m *settingsRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if m.GetFunc == nil {
		panic("settingsRepoMock.GetFunc: method is nil but settingsRepo.Get was just called")
	}
	return m.GetFunc(ctx, userID)
}

var _ velocityRepo = &velocityRepoMock{}

type velocityRepoMock struct {
	SumBetweenFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
}

func (m *velocityRepoMock) SumBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	if m.SumBetweenFunc == nil {
		panic("velocityRepoMock.SumBetweenFunc: method is nil but velocityRepo.SumBetween was just called")
	}
	return m.SumBetweenFunc(ctx, userID, from, to)
}

var _ moodRepo = &moodRepoMock{}

type moodRepoMock struct {
	ListSinceFunc func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error)
}

func (m *moodRepoMock) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error) {
	if m.ListSinceFunc == nil {
		panic("moodRepoMock.ListSinceFunc: method is nil but moodRepo.ListSince was just called")
	}
	return m.ListSinceFunc(ctx, userID, since)
}

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	ListSinceFunc              func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error)
	CountLongWithoutBreaksFunc func(ctx context.Context, userID uuid.UUID, since time.Time, minMinutes int) (int, error)
}

func (m *sessionRepoMock) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.WorkSession, error) {
	if m.ListSinceFunc == nil {
		panic("sessionRepoMock.ListSinceFunc: method is nil but sessionRepo.ListSince was just called")
	}
	return m.ListSinceFunc(ctx, userID, since)
}

func (m *sessionRepoMock) CountLongWithoutBreaks(ctx context.Context, userID uuid.UUID, since time.Time, minMinutes int) (int, error) {
	if m.CountLongWithoutBreaksFunc == nil {
		panic("sessionRepoMock.CountLongWithoutBreaksFunc: method is nil but sessionRepo.CountLongWithoutBreaks was just called")
	}
	return m.CountLongWithoutBreaksFunc(ctx, userID, since, minMinutes)
}

var _ breakRepo = &breakRepoMock{}

type breakRepoMock struct {
	ListBetweenFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error)
}

func (m *breakRepoMock) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.BreakRecord, error) {
	if m.ListBetweenFunc == nil {
		panic("breakRepoMock.ListBetweenFunc: method is nil but breakRepo.ListBetween was just called")
	}
	return m.ListBetweenFunc(ctx, userID, from, to)
}

var _ commitRepo = &commitRepoMock{}

type commitRepoMock struct {
	WindowCountsFunc func(ctx context.Context, userID uuid.UUID, since, recentSince time.Time) (domain.CommitWindowCounts, error)
}

func (m *commitRepoMock) WindowCounts(ctx context.Context, userID uuid.UUID, since, recentSince time.Time) (domain.CommitWindowCounts, error) {
	if m.WindowCountsFunc == nil {
		panic("commitRepoMock.WindowCountsFunc: method is nil but commitRepo.WindowCounts was just called")
	}
	return m.WindowCountsFunc(ctx, userID, since, recentSince)
}

var _ codingRepo = &codingRepoMock{}

type codingRepoMock struct {
	ListSinceFunc func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CodingDay, error)
}

func (m *codingRepoMock) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.CodingDay, error) {
	if m.ListSinceFunc == nil {
		panic("codingRepoMock.ListSinceFunc: method is nil but codingRepo.ListSince was just called")
	}
	return m.ListSinceFunc(ctx, userID, since)
}
