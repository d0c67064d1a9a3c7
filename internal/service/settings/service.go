// Package settings implements the user preferences service.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

type settingsRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s *domain.UserSettings) error
}

// Service implements the settings business logic.
type Service struct {
	settings settingsRepo
	log      *slog.Logger
}

// NewService creates a new settings service.
func NewService(log *slog.Logger, settings settingsRepo) *Service {
	return &Service{
		settings: settings,
		log:      log.With("service", "settings"),
	}
}

// Get returns the authenticated user's settings, or the defaults if the
// user never saved any.
func (s *Service) Get(ctx context.Context) (*domain.UserSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	stored, err := s.settings.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			defaults := domain.DefaultUserSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return stored, nil
}

// Update applies a partial update on top of the user's current settings
// (stored or defaults) and persists the result.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.UserSettings, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated := input.applyTo(*current)
	if updated.WorkingHoursStart >= updated.WorkingHoursEnd {
		return nil, domain.NewValidationError("working_hours", "start must be before end")
	}

	if err := s.settings.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.log.InfoContext(ctx, "settings updated", "user_id", userID)
	return &updated, nil
}
