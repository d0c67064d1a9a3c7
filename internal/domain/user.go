package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID        uuid.UUID
	Email     string
	Username  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSettings holds per-user burnout alerting and schedule preferences.
type UserSettings struct {
	UserID               uuid.UUID
	RiskThreshold        int
	NotificationsEnabled bool
	WorkingHoursStart    int
	WorkingHoursEnd      int
	TargetBreakInterval  int // minutes between breaks the user aims for
	UpdatedAt            time.Time
}

// DefaultUserSettings returns UserSettings with sensible defaults.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:               userID,
		RiskThreshold:        75,
		NotificationsEnabled: true,
		WorkingHoursStart:    9,
		WorkingHoursEnd:      17,
		TargetBreakInterval:  120,
	}
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
