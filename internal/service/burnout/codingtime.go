package burnout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// codingTimeReading scores editor-time patterns from the synced coding days.
func (s *Service) codingTimeReading(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	days, err := s.coding.ListSince(ctx, userID, now.AddDate(0, 0, -s.codingDays))
	if err != nil {
		return 0, false, fmt.Errorf("list coding days: %w", err)
	}

	score, available := calculateCodingTimeRisk(days)
	return score, available, nil
}

// calculateCodingTimeRisk accumulates risk from average daily hours, an
// unusually flat-but-long routine, and weekend coding. Days the provider
// reported nothing for are simply absent from the input.
func calculateCodingTimeRisk(days []domain.CodingDay) (int, bool) {
	if len(days) == 0 {
		return 0, false
	}

	n := float64(len(days))
	total := 0.0
	weekendDays := 0
	for _, d := range days {
		total += d.Hours()
		if d.Weekend {
			weekendDays++
		}
	}
	avg := total / n

	score := 0
	switch {
	case avg > 10:
		score += 30
	case avg > 8:
		score += 20
	case avg > 6:
		score += 10
	}
	if avg < 1 {
		score += 10
	}

	// A long routine with almost no variance day to day reads as grind.
	if len(days) > 3 && avg > 6 {
		variance := 0.0
		for _, d := range days {
			diff := d.Hours() - avg
			variance += diff * diff
		}
		if math.Sqrt(variance/n) < 1 {
			score += 15
		}
	}

	if float64(weekendDays)/n > 0.3 {
		score += 15
	}

	return clampScore(score), true
}
