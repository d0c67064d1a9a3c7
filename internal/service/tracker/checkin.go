package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// RecordMood stores a mood check-in. Only lexicon labels are accepted so a
// typo cannot silently read as neutral forever.
func (s *Service) RecordMood(ctx context.Context, label string) (*domain.MoodEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if !domain.KnownMoodLabel(label) {
		return nil, domain.NewValidationError("mood", "unknown mood label")
	}

	entry := &domain.MoodEntry{
		UserID:     userID,
		Label:      label,
		RecordedAt: s.now().UTC(),
	}
	if err := s.moods.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert mood: %w", err)
	}

	return entry, nil
}

// RecordVelocity stores completed story points. A zero completedAt means
// right now.
func (s *Service) RecordVelocity(ctx context.Context, points int, completedAt time.Time) (*domain.VelocityEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if points < 0 {
		return nil, domain.NewValidationError("points", "must not be negative")
	}
	if completedAt.IsZero() {
		completedAt = s.now()
	}

	entry := &domain.VelocityEntry{
		UserID:      userID,
		Points:      points,
		CompletedAt: completedAt.UTC(),
	}
	if err := s.velocity.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert velocity: %w", err)
	}

	return entry, nil
}
