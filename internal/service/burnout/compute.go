package burnout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// sourceReading is one calculator's output before weighting.
type sourceReading struct {
	score     int
	available bool
}

// ComputeScore runs the full scoring pipeline for the authenticated user
// and stores the result for today. A data source that cannot produce a
// reading is marked unavailable and its weight is redistributed; only a
// missing identity or a storage failure aborts the run.
func (s *Service) ComputeScore(ctx context.Context) (ComputeResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ComputeResult{}, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	day := dayOf(now)

	settings, err := s.loadSettings(ctx, userID)
	if err != nil {
		return ComputeResult{}, err
	}

	readings := s.collectReadings(ctx, userID, now)

	weighted, factors := applyWeights(readings, s.cfg.Weights())

	// Trend looks at scores already stored, so it must run before the
	// upsert or today's row would feed back into itself.
	recent, err := s.scores.RecentScores(ctx, userID, s.cfg.TrendWindowDays)
	if err != nil {
		return ComputeResult{}, fmt.Errorf("load recent scores: %w", err)
	}
	trend := trendModifier(recent, s.cfg.TrendMinSamples)
	severity := severityModifier(readings)

	factors.TrendModifier = trend
	factors.SeverityModifier = severity

	final := clampScore(int(math.Round(weighted)) + trend + severity)

	score := &domain.BurnoutScore{
		UserID:    userID,
		Day:       day,
		RiskScore: final,
		Factors:   factors,
	}
	if err := s.scores.Upsert(ctx, score); err != nil {
		return ComputeResult{}, fmt.Errorf("store score: %w", err)
	}

	result := ComputeResult{Score: score}
	if settings.NotificationsEnabled && final >= settings.RiskThreshold && factors.AvailableSources > 0 {
		claimed, err := s.scores.ClaimNotification(ctx, userID, day)
		if err != nil {
			return ComputeResult{}, fmt.Errorf("claim notification: %w", err)
		}
		result.ShouldNotify = claimed
	}

	s.log.InfoContext(ctx, "score computed",
		"user_id", userID,
		"score", final,
		"band", score.Band().String(),
		"available_sources", factors.AvailableSources,
		"should_notify", result.ShouldNotify,
	)

	return result, nil
}

// loadSettings returns the user's stored settings, or the defaults when no
// row exists yet.
func (s *Service) loadSettings(ctx context.Context, userID uuid.UUID) (domain.UserSettings, error) {
	stored, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultUserSettings(userID), nil
		}
		return domain.UserSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return *stored, nil
}

// collectReadings fans the six calculators out concurrently. Calculators
// never fail the run; a fetch error degrades that source to unavailable.
func (s *Service) collectReadings(ctx context.Context, userID uuid.UUID, now time.Time) map[domain.DataSource]sourceReading {
	sources := domain.AllDataSources()
	fetchers := map[domain.DataSource]func(context.Context, uuid.UUID, time.Time) (int, bool, error){
		domain.DataSourceVelocity:   s.velocityReading,
		domain.DataSourceMood:       s.moodReading,
		domain.DataSourceWorkHours:  s.workHoursReading,
		domain.DataSourceBreaks:     s.breaksReading,
		domain.DataSourceCommits:    s.commitsReading,
		domain.DataSourceCodingTime: s.codingTimeReading,
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		readings = make(map[domain.DataSource]sourceReading, len(sources))
	)
	for _, src := range sources {
		wg.Add(1)
		go func(src domain.DataSource) {
			defer wg.Done()

			score, available, err := fetchers[src](ctx, userID, now)
			if err != nil {
				s.log.WarnContext(ctx, "data source degraded",
					"user_id", userID,
					"source", src.String(),
					"error", err.Error(),
				)
				score, available = 0, false
			}

			mu.Lock()
			readings[src] = sourceReading{score: score, available: available}
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	return readings
}

// applyWeights redistributes the weight of unavailable sources equally
// across the available ones and returns the weighted base score together
// with the stored factors breakdown.
func applyWeights(readings map[domain.DataSource]sourceReading, base [6]float64) (float64, domain.ScoreFactors) {
	sources := domain.AllDataSources()

	available := 0
	missingWeight := 0.0
	for i, src := range sources {
		if readings[src].available {
			available++
		} else {
			missingWeight += base[i]
		}
	}

	factors := domain.ScoreFactors{
		Version:          domain.FactorsVersion,
		Sources:          make(map[domain.DataSource]domain.SourceReading, len(sources)),
		AvailableSources: available,
	}

	var extra float64
	if available > 0 {
		extra = missingWeight / float64(available)
	}

	weighted := 0.0
	for i, src := range sources {
		r := readings[src]
		w := 0.0
		if r.available {
			w = base[i] + extra
			weighted += float64(r.score) * w
		}
		factors.Sources[src] = domain.SourceReading{
			Score:     r.score,
			Available: r.available,
			Weight:    w,
		}
	}

	return weighted, factors
}

// trendModifier derives a modifier from recently stored scores, most
// recent first. Fewer samples than the minimum means no signal.
func trendModifier(recent []int, minSamples int) int {
	if len(recent) < minSamples {
		return 0
	}

	avgChange := float64(recent[0]-recent[len(recent)-1]) / float64(len(recent))
	switch {
	case avgChange > 5:
		return 5
	case avgChange < -5:
		return -3
	default:
		return 0
	}
}

// severityModifier adds pressure when several sources are elevated at once.
func severityModifier(readings map[domain.DataSource]sourceReading) int {
	elevated := 0
	for _, r := range readings {
		if r.available && r.score >= 70 {
			elevated++
		}
	}

	switch {
	case elevated >= 3:
		return 10
	case elevated == 2:
		return 5
	default:
		return 0
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// dayOf truncates a moment to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
