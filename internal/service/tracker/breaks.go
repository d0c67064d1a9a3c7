package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// StartBreak opens a break for the authenticated user, linked to the open
// work session when there is one. A second open break is rejected with
// domain.ErrAlreadyExists.
func (s *Service) StartBreak(ctx context.Context) (*domain.BreakRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	brk := &domain.BreakRecord{
		UserID:    userID,
		StartedAt: s.now().UTC(),
	}

	session, err := s.sessions.GetOpen(ctx, userID)
	if err == nil {
		brk.SessionID = &session.ID
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get open session: %w", err)
	}

	if err := s.breaks.Create(ctx, brk); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("break already in progress: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create break: %w", err)
	}

	s.log.InfoContext(ctx, "break started", "user_id", userID, "break_id", brk.ID)
	return brk, nil
}

// EndBreak closes the user's open break. A break shorter than the minimum
// valid duration still closes but does not count; a valid one increments
// its session's break counter in the same transaction.
func (s *Service) EndBreak(ctx context.Context) (*domain.BreakRecord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	open, err := s.breaks.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no open break: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get open break: %w", err)
	}

	now := s.now().UTC()
	durationSec := int(now.Sub(open.StartedAt).Seconds())
	valid := durationSec >= int(s.minValidBreak.Seconds())

	var closed *domain.BreakRecord
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		closed, err = s.breaks.Close(ctx, open.ID, now, durationSec, valid)
		if err != nil {
			return fmt.Errorf("close break: %w", err)
		}
		if valid && closed.SessionID != nil {
			if err := s.sessions.IncrementBreaks(ctx, *closed.SessionID); err != nil {
				return fmt.Errorf("increment session breaks: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "break ended",
		"user_id", userID,
		"break_id", closed.ID,
		"duration_sec", durationSec,
		"valid", valid,
	)
	return closed, nil
}

// TodayBreakStats summarizes the user's break behaviour for today.
func (s *Service) TodayBreakStats(ctx context.Context) (domain.BreakStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.BreakStats{}, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	dayStart := dayOf(now)

	breaks, err := s.breaks.ListBetween(ctx, userID, dayStart, now)
	if err != nil {
		return domain.BreakStats{}, fmt.Errorf("list today's breaks: %w", err)
	}
	sessions, err := s.sessions.ListSince(ctx, userID, dayStart)
	if err != nil {
		return domain.BreakStats{}, fmt.Errorf("list today's sessions: %w", err)
	}

	stats := domain.BreakStats{TotalBreaks: len(breaks)}

	validDurSec := 0
	for _, b := range breaks {
		if b.Valid != nil && *b.Valid && b.DurationSec != nil {
			stats.ValidBreaks++
			validDurSec += *b.DurationSec
		}
	}
	if stats.ValidBreaks > 0 {
		stats.AvgValidSeconds = float64(validDurSec) / float64(stats.ValidBreaks)
	}

	for _, sess := range sessions {
		if sess.DurationMin != nil {
			stats.WorkMinutes += *sess.DurationMin
		} else if sess.IsOpen() {
			stats.WorkMinutes += int(now.Sub(sess.StartedAt).Minutes())
		}
	}
	if stats.WorkMinutes > 0 {
		stats.BreaksPerHour = float64(stats.ValidBreaks) / (float64(stats.WorkMinutes) / 60)
	}

	return stats, nil
}
