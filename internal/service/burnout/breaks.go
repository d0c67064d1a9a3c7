package burnout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

// Sessions at or above this length with no breaks at all count as marathon
// sessions for the 7-day pattern rule.
const marathonSessionMin = 180

// breaksReading scores today's break behaviour, with a 7-day look-back for
// repeated marathon sessions.
func (s *Service) breaksReading(ctx context.Context, userID uuid.UUID, now time.Time) (int, bool, error) {
	dayStart := dayOf(now)

	sessions, err := s.sessions.ListSince(ctx, userID, dayStart)
	if err != nil {
		return 0, false, fmt.Errorf("list today's sessions: %w", err)
	}
	breaks, err := s.breaks.ListBetween(ctx, userID, dayStart, now)
	if err != nil {
		return 0, false, fmt.Errorf("list today's breaks: %w", err)
	}
	marathons, err := s.sessions.CountLongWithoutBreaks(ctx, userID, now.AddDate(0, 0, -7), marathonSessionMin)
	if err != nil {
		return 0, false, fmt.Errorf("count marathon sessions: %w", err)
	}

	score, available := calculateBreaksRisk(sessions, breaks, marathons, now, s.shortBreak)
	return score, available, nil
}

// calculateBreaksRisk scores break frequency against today's tracked work
// time. An open session counts up to now. Without any work minutes today
// there is nothing to judge breaks against.
func calculateBreaksRisk(
	sessions []domain.WorkSession,
	breaks []domain.BreakRecord,
	marathons int,
	now time.Time,
	shortBreak time.Duration,
) (int, bool) {
	workMin := 0
	for _, sess := range sessions {
		if sess.DurationMin != nil {
			workMin += *sess.DurationMin
		} else if sess.IsOpen() {
			workMin += int(now.Sub(sess.StartedAt).Minutes())
		}
	}
	if workMin <= 0 {
		return 0, false
	}

	validBreaks := 0
	validDurSec := 0
	for _, b := range breaks {
		if b.Valid != nil && *b.Valid && b.DurationSec != nil {
			validBreaks++
			validDurSec += *b.DurationSec
		}
	}

	perHour := float64(validBreaks) / (float64(workMin) / 60)

	var score int
	switch {
	case perHour < 0.3:
		score = 90
	case perHour < 0.5:
		score = 80
	case perHour < 1:
		score = 50
	default:
		score = 10
	}

	// Frequent but tiny breaks do not actually restore anything.
	if validBreaks > 0 {
		avgSec := float64(validDurSec) / float64(validBreaks)
		if avgSec < shortBreak.Seconds() {
			score += 20
		}
	}

	if validBreaks == 0 {
		if workMin > 120 {
			score = 95
		} else if workMin > 60 && score < 70 {
			score = 70
		}
	}

	if marathons > 2 && score < 85 {
		score = 85
	}

	return clampScore(score), true
}
