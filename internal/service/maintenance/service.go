// Package maintenance implements background housekeeping, currently the
// reconciliation of breaks whose owner never pressed stop.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/config"
	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

type breakRepo interface {
	ListOrphanedBefore(ctx context.Context, cutoff time.Time, limit int) ([]domain.BreakRecord, error)
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationSec int, valid bool) (*domain.BreakRecord, error)
}

type sessionRepo interface {
	IncrementBreaks(ctx context.Context, id uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// batchSize bounds one reconcile pass; leftovers wait for the next tick.
const batchSize = 500

// Service closes breaks that were left open past the cutoff.
type Service struct {
	breaks   breakRepo
	sessions sessionRepo
	tx       txManager
	log      *slog.Logger

	cutoff        time.Duration
	minValidBreak time.Duration

	now func() time.Time
}

// NewService creates a new maintenance service.
func NewService(log *slog.Logger, breaks breakRepo, sessions sessionRepo, tx txManager, cfg config.BreaksConfig) *Service {
	return &Service{
		breaks:        breaks,
		sessions:      sessions,
		tx:            tx,
		log:           log.With("service", "maintenance"),
		cutoff:        cfg.OrphanCutoff,
		minValidBreak: cfg.MinValidDuration,
		now:           time.Now,
	}
}

// ReconcileOrphanedBreaks closes every break that has been open longer than
// the cutoff, across all users. Each break closes in its own transaction so
// one bad row cannot wedge the whole pass; duration and validity follow the
// same rules as a user-initiated stop, and valid breaks still count toward
// their session. Returns how many breaks were closed.
func (s *Service) ReconcileOrphanedBreaks(ctx context.Context) (int, error) {
	now := s.now().UTC()

	orphans, err := s.breaks.ListOrphanedBefore(ctx, now.Add(-s.cutoff), batchSize)
	if err != nil {
		return 0, fmt.Errorf("list orphaned breaks: %w", err)
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	closed := 0
	for _, orphan := range orphans {
		if err := s.reconcile(ctx, orphan, now); err != nil {
			// A break closed concurrently by its owner comes back as
			// not found; anything else is worth a look.
			s.log.WarnContext(ctx, "reconcile break failed",
				"break_id", orphan.ID,
				"user_id", orphan.UserID,
				"error", err.Error(),
			)
			continue
		}
		closed++
	}

	s.log.InfoContext(ctx, "orphaned breaks reconciled",
		"found", len(orphans),
		"closed", closed,
	)
	return closed, nil
}

func (s *Service) reconcile(ctx context.Context, orphan domain.BreakRecord, now time.Time) error {
	durationSec := int(now.Sub(orphan.StartedAt).Seconds())
	valid := durationSec >= int(s.minValidBreak.Seconds())

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		closed, err := s.breaks.Close(ctx, orphan.ID, now, durationSec, valid)
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
}
