package burnout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// moodReading averages the last 7 days of self-reported mood check-ins.
func (s *Service) moodReading(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	entries, err := s.moods.ListSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return 0, false, fmt.Errorf("list moods: %w", err)
	}

	score, available := calculateMoodRisk(entries)
	return score, available, nil
}

// calculateMoodRisk maps the average mood on the -3..3 scale onto risk:
// a neutral week sits at 50, a consistently sad or angry week near 100.
func calculateMoodRisk(entries []domain.MoodEntry) (int, bool) {
	if len(entries) == 0 {
		return 0, false
	}

	sum := 0
	for _, e := range entries {
		sum += domain.MoodValue(e.Label)
	}
	avg := float64(sum) / float64(len(entries))

	risk := int(math.Round(50 - avg*16.67))
	return clampScore(risk), true
}
