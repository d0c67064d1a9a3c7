package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/config"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

var testNow = time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

type breakRepoMock struct {
	ListOrphanedBeforeFunc func(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error)
	CloseFunc              func(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error)
}

func (m *breakRepoMock) ListOrphanedBefore(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error) {
	if m.ListOrphanedBeforeFunc == nil {
		panic("breakRepoMock.ListOrphanedBeforeFunc: method is nil but breakRepo.ListOrphanedBefore was just called")
	}
	return m.ListOrphanedBeforeFunc(ctx, cutoff, limit)
}

func (m *breakRepoMock) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error) {
	if m.CloseFunc == nil {
		panic("breakRepoMock.CloseFunc: method is nil but breakRepo.Close was just called")
	}
	return m.CloseFunc(ctx, id, endedAt, durationSec, valid)
}

type sessionRepoMock struct {
	IncrementBreaksFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *sessionRepoMock) IncrementBreaks(ctx context.Context, id uuid.UUID) error {
	if m.IncrementBreaksFunc == nil {
		panic("sessionRepoMock.IncrementBreaksFunc: method is nil but sessionRepo.IncrementBreaks was just called")
	}
	return m.IncrementBreaksFunc(ctx, id)
}

type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(breaks *breakRepoMock, sessions *sessionRepoMock) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(log, breaks, sessions, &txManagerMock{}, config.BreaksConfig{
		MinValidDuration: 60 * time.Second,
		OrphanCutoff:     time.Hour,
	})
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestReconcileOrphanedBreaks_NothingToDo(t *testing.T) {
	t.Parallel()

	breaks := &breakRepoMock{
		ListOrphanedBeforeFunc: func(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error) {
			want := testNow.Add(-time.Hour)
			if !cutoff.Equal(want) {
				t.Errorf("cutoff = %v, want %v", cutoff, want)
			}
			return nil, nil
		},
	}

	closed, err := newTestService(breaks, &sessionRepoMock{}).ReconcileOrphanedBreaks(context.Background())
	if err != nil {
		t.Fatalf("ReconcileOrphanedBreaks: %v", err)
	}
	if closed != 0 {
		t.Errorf("closed = %d, want 0", closed)
	}
}

func TestReconcileOrphanedBreaks_ClosesAndCounts(t *testing.T) {
	t.Parallel()

	sessionID := uuid.New()
	orphanWithSession := domain.BreakRecord{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		SessionID: &sessionID,
		StartedAt: testNow.Add(-3 * time.Hour),
	}
	orphanDetached := domain.BreakRecord{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StartedAt: testNow.Add(-2 * time.Hour),
	}

	breaks := &breakRepoMock{
		ListOrphanedBeforeFunc: func(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error) {
			return []domain.BreakRecord{orphanWithSession, orphanDetached}, nil
		},
		CloseFunc: func(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error) {
			if !endedAt.Equal(testNow) {
				t.Errorf("endedAt = %v, want %v", endedAt, testNow)
			}
			if !valid {
				t.Error("breaks open for hours are always past the validity minimum")
			}
			closed := orphanDetached
			if id == orphanWithSession.ID {
				closed = orphanWithSession
				if durationSec != 3*3600 {
					t.Errorf("durationSec = %d, want %d", durationSec, 3*3600)
				}
			}
			closed.EndedAt = &endedAt
			closed.DurationSec = &durationSec
			closed.Valid = &valid
			return &closed, nil
		},
	}

	incremented := 0
	sessions := &sessionRepoMock{
		IncrementBreaksFunc: func(ctx context.Context, id uuid.UUID) error {
			if id != sessionID {
				t.Errorf("incrementing wrong session: %s", id)
			}
			incremented++
			return nil
		},
	}

	closed, err := newTestService(breaks, sessions).ReconcileOrphanedBreaks(context.Background())
	if err != nil {
		t.Fatalf("ReconcileOrphanedBreaks: %v", err)
	}
	if closed != 2 {
		t.Errorf("closed = %d, want 2", closed)
	}
	if incremented != 1 {
		t.Errorf("session increments = %d, want 1 (detached break has no session)", incremented)
	}
}

func TestReconcileOrphanedBreaks_OneFailureDoesNotStopThePass(t *testing.T) {
	t.Parallel()

	first := domain.BreakRecord{ID: uuid.New(), StartedAt: testNow.Add(-2 * time.Hour)}
	second := domain.BreakRecord{ID: uuid.New(), StartedAt: testNow.Add(-2 * time.Hour)}

	breaks := &breakRepoMock{
		ListOrphanedBeforeFunc: func(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error) {
			return []domain.BreakRecord{first, second}, nil
		},
		CloseFunc: func(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error) {
			if id == first.ID {
				// Owner closed it between the list and the update.
				return nil, errors.New("break: not found")
			}
			closed := second
			closed.EndedAt = &endedAt
			return &closed, nil
		},
	}

	closed, err := newTestService(breaks, &sessionRepoMock{}).ReconcileOrphanedBreaks(context.Background())
	if err != nil {
		t.Fatalf("ReconcileOrphanedBreaks: %v", err)
	}
	if closed != 1 {
		t.Errorf("closed = %d, want 1", closed)
	}
}
