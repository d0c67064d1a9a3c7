package commit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/commit"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

func TestRepo_BulkInsert_DeduplicatesBySHA(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := commit.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC()
	sha := uuid.New().String()

	batch := []domain.CommitRecord{
		{UserID: user.ID, SHA: sha, Repo: "acme/api", CommittedAt: now.Add(-time.Hour)},
		{UserID: user.ID, SHA: uuid.New().String(), Repo: "acme/api", CommittedAt: now.Add(-2 * time.Hour)},
	}

	inserted, err := repo.BulkInsert(ctx, batch)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	// Re-sync containing one known and one new sha.
	resync := []domain.CommitRecord{
		{UserID: user.ID, SHA: sha, Repo: "acme/api", CommittedAt: now.Add(-time.Hour)},
		{UserID: user.ID, SHA: uuid.New().String(), Repo: "acme/api", CommittedAt: now.Add(-30 * time.Minute)},
	}
	inserted, err = repo.BulkInsert(ctx, resync)
	if err != nil {
		t.Fatalf("BulkInsert (resync): %v", err)
	}
	if inserted != 1 {
		t.Errorf("inserted = %d, want 1", inserted)
	}

	commits, err := repo.ListSince(ctx, user.ID, now.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(commits) != 3 {
		t.Errorf("stored commits = %d, want 3", len(commits))
	}
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := commit.New(pool)

	inserted, err := repo.BulkInsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
}

func TestRepo_WindowCounts(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := commit.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	// A late-night weekday commit (23:00 UTC on a Wednesday) and a daytime
	// weekend commit (Saturday noon), both inside the 30-day window.
	wednesday := time.Date(2026, 8, 19, 23, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)
	testhelper.SeedCommit(t, pool, user.ID, wednesday)
	testhelper.SeedCommit(t, pool, user.ID, saturday)

	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	recentSince := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)

	counts, err := repo.WindowCounts(ctx, user.ID, since, recentSince)
	if err != nil {
		t.Fatalf("WindowCounts: %v", err)
	}
	if counts.Total != 2 {
		t.Errorf("Total = %d, want 2", counts.Total)
	}
	if counts.LateNight != 1 {
		t.Errorf("LateNight = %d, want 1", counts.LateNight)
	}
	if counts.Weekend != 1 {
		t.Errorf("Weekend = %d, want 1", counts.Weekend)
	}
	if counts.RecentTotal != 1 {
		t.Errorf("RecentTotal = %d, want 1", counts.RecentTotal)
	}
}
