package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/internal/service/tracker"
)

type trackerServiceMock struct {
	StartSessionFunc    func(ctx context.Context) (*domain.WorkSession, error)
	EndSessionFunc      func(ctx context.Context) (*domain.WorkSession, error)
	StartBreakFunc      func(ctx context.Context) (*domain.BreakRecord, error)
	EndBreakFunc        func(ctx context.Context) (*domain.BreakRecord, error)
	TodayBreakStatsFunc func(ctx context.Context) (domain.BreakStats, error)
	RecordMoodFunc      func(ctx context.Context, label string) (*domain.MoodEntry, error)
	RecordVelocityFunc  func(ctx context.Context, points int, completedAt time.Time) (*domain.VelocityEntry, error)
	SyncCommitsFunc     func(ctx context.Context, in tracker.SyncCommitsInput) (int, error)
	SyncCodingTimeFunc  func(ctx context.Context, in tracker.SyncCodingTimeInput) (int, error)
}

func (m *trackerServiceMock) StartSession(ctx context.Context) (*domain.WorkSession, error) {
	return m.StartSessionFunc(ctx)
}

func (m *trackerServiceMock) EndSession(ctx context.Context) (*domain.WorkSession, error) {
	return m.EndSessionFunc(ctx)
}

func (m *trackerServiceMock) StartBreak(ctx context.Context) (*domain.BreakRecord, error) {
	return m.StartBreakFunc(ctx)
}

func (m *trackerServiceMock) EndBreak(ctx context.Context) (*domain.BreakRecord, error) {
	return m.EndBreakFunc(ctx)
}

func (m *trackerServiceMock) TodayBreakStats(ctx context.Context) (domain.BreakStats, error) {
	return m.TodayBreakStatsFunc(ctx)
}

func (m *trackerServiceMock) RecordMood(ctx context.Context, label string) (*domain.MoodEntry, error) {
	return m.RecordMoodFunc(ctx, label)
}

func (m *trackerServiceMock) RecordVelocity(ctx context.Context, points int, completedAt time.Time) (*domain.VelocityEntry, error) {
	return m.RecordVelocityFunc(ctx, points, completedAt)
}

func (m *trackerServiceMock) SyncCommits(ctx context.Context, in tracker.SyncCommitsInput) (int, error) {
	return m.SyncCommitsFunc(ctx, in)
}

func (m *trackerServiceMock) SyncCodingTime(ctx context.Context, in tracker.SyncCodingTimeInput) (int, error) {
	return m.SyncCodingTimeFunc(ctx, in)
}

func TestStartSession_Created(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		StartSessionFunc: func(ctx context.Context) (*domain.WorkSession, error) {
			return &domain.WorkSession{ID: uuid.New(), StartedAt: time.Now()}, nil
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/start", nil)
	rec := httptest.NewRecorder()

	h.StartSession(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestStartBreak_SecondBreakConflicts(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		StartBreakFunc: func(ctx context.Context) (*domain.BreakRecord, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/breaks/start", nil)
	rec := httptest.NewRecorder()

	h.StartBreak(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestEndSession_NoOpenSession(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		EndSessionFunc: func(ctx context.Context) (*domain.WorkSession, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/end", nil)
	rec := httptest.NewRecorder()

	h.EndSession(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTodayBreaks_ReturnsStats(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		TodayBreakStatsFunc: func(ctx context.Context) (domain.BreakStats, error) {
			return domain.BreakStats{
				TotalBreaks:   3,
				ValidBreaks:   2,
				BreaksPerHour: 0.5,
				WorkMinutes:   240,
			}, nil
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/breaks/today", nil)
	rec := httptest.NewRecorder()

	h.TodayBreaks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp breakStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ValidBreaks != 2 || resp.WorkMinutes != 240 {
		t.Errorf("unexpected stats %+v", resp)
	}
}

func TestRecordMood_UnknownLabel(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		RecordMoodFunc: func(ctx context.Context, label string) (*domain.MoodEntry, error) {
			return nil, domain.NewValidationError("mood", "unknown mood label")
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mood", strings.NewReader(`{"mood":"hangry"}`))
	rec := httptest.NewRecorder()

	h.RecordMood(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecordVelocity_DefaultsCompletedAt(t *testing.T) {
	t.Parallel()

	var gotCompletedAt time.Time
	svc := &trackerServiceMock{
		RecordVelocityFunc: func(ctx context.Context, points int, completedAt time.Time) (*domain.VelocityEntry, error) {
			gotCompletedAt = completedAt
			return &domain.VelocityEntry{ID: uuid.New(), Points: points, CompletedAt: time.Now()}, nil
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/velocity", strings.NewReader(`{"points":5}`))
	rec := httptest.NewRecorder()

	h.RecordVelocity(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if !gotCompletedAt.IsZero() {
		t.Errorf("completedAt = %v, want zero so the service fills it in", gotCompletedAt)
	}
}

func TestSyncCommits_PassesCredentials(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		SyncCommitsFunc: func(ctx context.Context, in tracker.SyncCommitsInput) (int, error) {
			if in.Token != "gh-token" || in.Login != "marsha" {
				t.Errorf("input = %+v", in)
			}
			return 12, nil
		},
	}
	h := NewTrackerHandler(svc, testLogger())

	body := `{"token":"gh-token","login":"marsha"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/commits", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.SyncCommits(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp syncResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Synced != 12 {
		t.Errorf("synced = %d, want 12", resp.Synced)
	}
}
