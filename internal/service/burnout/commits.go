package burnout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// commitsReading analyzes the stored commit window for unhealthy rhythm:
// late-night work, weekend work, and sudden bursts.
func (s *Service) commitsReading(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	since := now.AddDate(0, 0, -s.commitDays)
	recentSince := now.AddDate(0, 0, -3)

	counts, err := s.commits.WindowCounts(ctx, userID, since, recentSince)
	if err != nil {
		return 0, false, fmt.Errorf("commit window counts: %w", err)
	}

	analytics := analyzeCommits(counts, s.commitDays)
	score, available := calculateCommitsRisk(analytics)
	return score, available, nil
}

// analyzeCommits turns raw window counts into ratios and per-day averages.
func analyzeCommits(counts domain.CommitWindowCounts, windowDays int) domain.CommitAnalytics {
	a := domain.CommitAnalytics{TotalCommits: counts.Total}
	if counts.Total == 0 || windowDays <= 0 {
		return a
	}

	a.LateNightRatio = float64(counts.LateNight) / float64(counts.Total)
	a.WeekendRatio = float64(counts.Weekend) / float64(counts.Total)
	a.AvgPerDay = float64(counts.Total) / float64(windowDays)
	a.RecentAvgPerDay = float64(counts.RecentTotal) / 3
	return a
}

// calculateCommitsRisk scores commit rhythm. No commits in the window means
// the user likely does not have the integration set up, not that they are
// fine, so the source reports no data.
func calculateCommitsRisk(a domain.CommitAnalytics) (int, bool) {
	if a.TotalCommits == 0 {
		return 0, false
	}

	score := a.LateNightRatio*40 + a.WeekendRatio*30

	if a.AvgPerDay < 0.5 {
		score += 10
	} else if a.AvgPerDay > 10 {
		score += 20
	}

	if a.RecentAvgPerDay > 1.5*a.AvgPerDay {
		score += 15
	}

	return clampScore(int(math.Round(score))), true
}
