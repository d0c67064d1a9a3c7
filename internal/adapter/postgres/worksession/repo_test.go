package worksession_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/worksession"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

func newRepo(t *testing.T) (*worksession.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return worksession.New(pool), pool
}

func TestRepo_Create_And_GetOpen(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	s := &domain.WorkSession{UserID: user.ID, StartedAt: time.Now().UTC().Truncate(time.Microsecond)}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetOpen(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOpen: %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("ID = %s, want %s", got.ID, s.ID)
	}
	if !got.IsOpen() {
		t.Error("session should be open")
	}
	if got.BreaksTaken != 0 {
		t.Errorf("BreaksTaken = %d, want 0", got.BreaksTaken)
	}
}

func TestRepo_Create_SecondOpenSessionRejected(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	if err := repo.Create(ctx, &domain.WorkSession{UserID: user.ID, StartedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, &domain.WorkSession{UserID: user.ID, StartedAt: time.Now().UTC()})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestRepo_Close(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	started := time.Now().UTC().Add(-90 * time.Minute)
	s := &domain.WorkSession{UserID: user.ID, StartedAt: started}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Close(ctx, s.ID, time.Now().UTC(), 90)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got.DurationMin == nil || *got.DurationMin != 90 {
		t.Errorf("DurationMin = %v, want 90", got.DurationMin)
	}

	if _, err := repo.Close(ctx, s.ID, time.Now().UTC(), 91); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second close = %v, want ErrNotFound", err)
	}
}

func TestRepo_IncrementBreaks(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	s := &domain.WorkSession{UserID: user.ID, StartedAt: time.Now().UTC()}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.IncrementBreaks(ctx, s.ID); err != nil {
		t.Fatalf("IncrementBreaks: %v", err)
	}
	if err := repo.IncrementBreaks(ctx, s.ID); err != nil {
		t.Fatalf("IncrementBreaks: %v", err)
	}

	got, err := repo.GetOpen(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOpen: %v", err)
	}
	if got.BreaksTaken != 2 {
		t.Errorf("BreaksTaken = %d, want 2", got.BreaksTaken)
	}
}

func TestRepo_CountLongWithoutBreaks(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC()

	endLong := now.Add(-1 * time.Hour)
	testhelper.SeedWorkSession(t, pool, user.ID, endLong.Add(-200*time.Minute), &endLong, 0)
	endWithBreaks := now.Add(-26 * time.Hour)
	testhelper.SeedWorkSession(t, pool, user.ID, endWithBreaks.Add(-200*time.Minute), &endWithBreaks, 2)
	endShort := now.Add(-50 * time.Hour)
	testhelper.SeedWorkSession(t, pool, user.ID, endShort.Add(-60*time.Minute), &endShort, 0)

	n, err := repo.CountLongWithoutBreaks(ctx, user.ID, now.AddDate(0, 0, -7), 180)
	if err != nil {
		t.Fatalf("CountLongWithoutBreaks: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
