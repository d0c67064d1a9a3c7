package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// SyncCommitsInput carries the user's GitHub credentials for one sync run.
// Token acquisition is the client's problem; the server never stores it.
type SyncCommitsInput struct {
	Token string
	Login string
}

func (in SyncCommitsInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Token) == "" {
		errs = append(errs, domain.FieldError{Field: "token", Message: "is required"})
	}
	if strings.TrimSpace(in.Login) == "" {
		errs = append(errs, domain.FieldError{Field: "login", Message: "is required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SyncCommits pulls the user's recent commits from GitHub into storage.
// Returns how many were new; reruns are cheap because commits dedup by sha.
func (s *Service) SyncCommits(ctx context.Context, in SyncCommitsInput) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}

	since := s.now().UTC().AddDate(0, 0, -s.commitDays)
	fetched, err := s.github.FetchCommits(ctx, in.Token, in.Login, since)
	if err != nil {
		return 0, fmt.Errorf("fetch commits: %w", err)
	}
	if len(fetched) == 0 {
		return 0, nil
	}

	records := make([]domain.CommitRecord, len(fetched))
	for i, c := range fetched {
		records[i] = domain.CommitRecord{
			UserID:      userID,
			SHA:         c.SHA,
			Repo:        c.Repo,
			CommittedAt: c.CommittedAt,
		}
	}

	inserted, err := s.commits.BulkInsert(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("store commits: %w", err)
	}

	s.log.InfoContext(ctx, "commits synced",
		"user_id", userID,
		"fetched", len(fetched),
		"inserted", inserted,
	)
	return inserted, nil
}

// SyncCodingTimeInput carries the user's WakaTime API key for one sync run.
type SyncCodingTimeInput struct {
	APIKey string
}

func (in SyncCodingTimeInput) Validate() error {
	if strings.TrimSpace(in.APIKey) == "" {
		return domain.NewValidationError("api_key", "is required")
	}
	return nil
}

// SyncCodingTime pulls per-day coding totals from WakaTime and upserts them
// by (user, day), so a resync refreshes totals in place.
func (s *Service) SyncCodingTime(ctx context.Context, in SyncCodingTimeInput) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -s.codingDays)

	fetched, err := s.wakatime.FetchSummaries(ctx, in.APIKey, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetch summaries: %w", err)
	}

	for _, d := range fetched {
		day := dayOf(d.Day)
		record := &domain.CodingDay{
			UserID:   userID,
			Day:      day,
			TotalSec: d.TotalSec,
			Weekend:  isWeekend(day),
		}
		if err := s.coding.Upsert(ctx, record); err != nil {
			return 0, fmt.Errorf("store coding day %s: %w", day.Format("2006-01-02"), err)
		}
	}

	s.log.InfoContext(ctx, "coding time synced", "user_id", userID, "days", len(fetched))
	return len(fetched), nil
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
