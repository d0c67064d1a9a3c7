package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/internal/service/settings"
)

// settingsService defines the minimal interface needed by SettingsHandler.
type settingsService interface {
	Get(ctx context.Context) (*domain.UserSettings, error)
	Update(ctx context.Context, input settings.UpdateInput) (*domain.UserSettings, error)
}

// SettingsHandler serves user settings REST endpoints.
type SettingsHandler struct {
	svc settingsService
	log *slog.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(svc settingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: logger.With("handler", "settings")}
}

type updateSettingsRequest struct {
	RiskThreshold        *int  `json:"riskThreshold,omitempty"`
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
	WorkingHoursStart    *int  `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd      *int  `json:"workingHoursEnd,omitempty"`
	TargetBreakInterval  *int  `json:"targetBreakInterval,omitempty"`
}

type settingsResponse struct {
	RiskThreshold        int       `json:"riskThreshold"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	WorkingHoursStart    int       `json:"workingHoursStart"`
	WorkingHoursEnd      int       `json:"workingHoursEnd"`
	TargetBreakInterval  int       `json:"targetBreakInterval"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

// Update handles PATCH /api/v1/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.Update(r.Context(), settings.UpdateInput{
		RiskThreshold:        req.RiskThreshold,
		NotificationsEnabled: req.NotificationsEnabled,
		WorkingHoursStart:    req.WorkingHoursStart,
		WorkingHoursEnd:      req.WorkingHoursEnd,
		TargetBreakInterval:  req.TargetBreakInterval,
	})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(s))
}

func toSettingsResponse(s *domain.UserSettings) settingsResponse {
	return settingsResponse{
		RiskThreshold:        s.RiskThreshold,
		NotificationsEnabled: s.NotificationsEnabled,
		WorkingHoursStart:    s.WorkingHoursStart,
		WorkingHoursEnd:      s.WorkingHoursEnd,
		TargetBreakInterval:  s.TargetBreakInterval,
		UpdatedAt:            s.UpdatedAt,
	}
}
