package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// StartSession opens a new work session for the authenticated user.
// Starting while one is already open simply returns the open session.
func (s *Service) StartSession(ctx context.Context) (*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	session := &domain.WorkSession{
		UserID:    userID,
		StartedAt: s.now().UTC(),
	}
	err := s.sessions.Create(ctx, session)
	if err == nil {
		s.log.InfoContext(ctx, "session started", "user_id", userID, "session_id", session.ID)
		return session, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("create session: %w", err)
	}

	open, err := s.sessions.GetOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return open, nil
}

// EndSession closes the user's open work session and fills in its duration.
func (s *Service) EndSession(ctx context.Context) (*domain.WorkSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	open, err := s.sessions.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no open session: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get open session: %w", err)
	}

	now := s.now().UTC()
	durationMin := int(now.Sub(open.StartedAt).Minutes())

	closed, err := s.sessions.Close(ctx, open.ID, now, durationMin)
	if err != nil {
		return nil, fmt.Errorf("close session: %w", err)
	}

	s.log.InfoContext(ctx, "session ended",
		"user_id", userID,
		"session_id", closed.ID,
		"duration_min", durationMin,
		"breaks_taken", closed.BreaksTaken,
	)
	return closed, nil
}
