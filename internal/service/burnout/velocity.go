package burnout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// velocityReading compares story points completed over the last 7 days
// against the 7 days before that.
func (s *Service) velocityReading(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	mid := now.AddDate(0, 0, -7)
	from := now.AddDate(0, 0, -14)

	previous, err := s.velocity.SumBetween(ctx, userID, from, mid)
	if err != nil {
		return 0, false, fmt.Errorf("sum previous velocity: %w", err)
	}
	current, err := s.velocity.SumBetween(ctx, userID, mid, now)
	if err != nil {
		return 0, false, fmt.Errorf("sum current velocity: %w", err)
	}

	score, available := calculateVelocityRisk(current, previous)
	return score, available, nil
}

// calculateVelocityRisk scores the relative change between two week-long
// point sums. A sharp rise reads as overexertion, a sharp drop as
// disengagement; without a previous week there is no baseline.
func calculateVelocityRisk(current, previous int) (int, bool) {
	if previous == 0 {
		return 0, false
	}

	change := float64(current-previous) / float64(previous)
	switch {
	case change > 0.5:
		return 80, true
	case change > 0.3:
		return 60, true
	case change > 0.1:
		return 40, true
	case change < -0.3:
		return 70, true
	default:
		return 20, true
	}
}
