package burnout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// workHoursReading averages tracked session time over the last 7 days.
func (s *Service) workHoursReading(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	sessions, err := s.sessions.ListSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return 0, false, fmt.Errorf("list sessions: %w", err)
	}

	score, available := calculateWorkHoursRisk(sessions)
	return score, available, nil
}

// calculateWorkHoursRisk scores average hours per day over a 7-day window.
// Only closed sessions carry a duration; a window without any sessions has
// no signal. Very low averages also score slightly elevated since they can
// mean avoidance rather than rest.
func calculateWorkHoursRisk(sessions []domain.WorkSession) (int, bool) {
	if len(sessions) == 0 {
		return 0, false
	}

	totalMin := 0
	for _, sess := range sessions {
		if sess.DurationMin != nil {
			totalMin += *sess.DurationMin
		}
	}
	avgHours := float64(totalMin) / 60 / 7

	switch {
	case avgHours > 10:
		return 90, true
	case avgHours > 8:
		return 60, true
	case avgHours > 6:
		return 30, true
	case avgHours < 2:
		return 20, true
	default:
		return 10, true
	}
}
