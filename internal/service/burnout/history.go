package burnout

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// GetCurrentRisk returns today's stored score, falling back to the most
// recent one when today has not been computed yet.
func (s *Service) GetCurrentRisk(ctx context.Context) (*domain.BurnoutScore, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	today := dayOf(s.now().UTC())

	score, err := s.scores.GetByDay(ctx, userID, today)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get today's score: %w", err)
	}

	score, err = s.scores.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no score computed yet: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get latest score: %w", err)
	}
	return score, nil
}

// GetHistory returns stored scores for the last days, newest first.
// Zero or negative days selects the default window; oversized requests are
// capped at the configured maximum.
func (s *Service) GetHistory(ctx context.Context, days int) ([]*domain.BurnoutScore, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if days <= 0 {
		days = s.cfg.HistoryDefaultDays
	}
	if days > s.cfg.HistoryMaxDays {
		days = s.cfg.HistoryMaxDays
	}

	today := dayOf(s.now().UTC())
	from := today.AddDate(0, 0, -(days - 1))

	scores, err := s.scores.History(ctx, userID, from, today)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return scores, nil
}
