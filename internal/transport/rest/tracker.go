package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/internal/service/tracker"
)

// trackerService defines the minimal interface needed by TrackerHandler.
type trackerService interface {
	StartSession(ctx context.Context) (*domain.WorkSession, error)
	EndSession(ctx context.Context) (*domain.WorkSession, error)
	StartBreak(ctx context.Context) (*domain.BreakRecord, error)
	EndBreak(ctx context.Context) (*domain.BreakRecord, error)
	TodayBreakStats(ctx context.Context) (domain.BreakStats, error)
	RecordMood(ctx context.Context, label string) (*domain.MoodEntry, error)
	RecordVelocity(ctx context.Context, points int, completedAt time.Time) (*domain.VelocityEntry, error)
	SyncCommits(ctx context.Context, in tracker.SyncCommitsInput) (int, error)
	SyncCodingTime(ctx context.Context, in tracker.SyncCodingTimeInput) (int, error)
}

// TrackerHandler serves activity tracking REST endpoints.
type TrackerHandler struct {
	svc trackerService
	log *slog.Logger
}

// NewTrackerHandler creates a TrackerHandler.
func NewTrackerHandler(svc trackerService, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{svc: svc, log: logger.With("handler", "tracker")}
}

type sessionResponse struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	DurationMin *int       `json:"durationMin,omitempty"`
	BreaksTaken int        `json:"breaksTaken"`
}

type breakResponse struct {
	ID          string     `json:"id"`
	SessionID   *string    `json:"sessionId,omitempty"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	DurationSec *int       `json:"durationSec,omitempty"`
	Valid       *bool      `json:"valid,omitempty"`
}

type breakStatsResponse struct {
	TotalBreaks     int     `json:"totalBreaks"`
	ValidBreaks     int     `json:"validBreaks"`
	AvgValidSeconds float64 `json:"avgValidSeconds"`
	BreaksPerHour   float64 `json:"breaksPerHour"`
	WorkMinutes     int     `json:"workMinutes"`
}

type moodRequest struct {
	Mood string `json:"mood"`
}

type velocityRequest struct {
	Points      int        `json:"points"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type syncCommitsRequest struct {
	Token string `json:"token"`
	Login string `json:"login"`
}

type syncCodingTimeRequest struct {
	APIKey string `json:"apiKey"`
}

type syncResponse struct {
	Synced int `json:"synced"`
}

// StartSession handles POST /api/v1/sessions/start.
func (h *TrackerHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.StartSession(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

// EndSession handles POST /api/v1/sessions/end.
func (h *TrackerHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.EndSession(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// StartBreak handles POST /api/v1/breaks/start.
func (h *TrackerHandler) StartBreak(w http.ResponseWriter, r *http.Request) {
	br, err := h.svc.StartBreak(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBreakResponse(br))
}

// EndBreak handles POST /api/v1/breaks/end.
func (h *TrackerHandler) EndBreak(w http.ResponseWriter, r *http.Request) {
	br, err := h.svc.EndBreak(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBreakResponse(br))
}

// TodayBreaks handles GET /api/v1/breaks/today.
func (h *TrackerHandler) TodayBreaks(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.TodayBreakStats(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakStatsResponse{
		TotalBreaks:     stats.TotalBreaks,
		ValidBreaks:     stats.ValidBreaks,
		AvgValidSeconds: stats.AvgValidSeconds,
		BreaksPerHour:   stats.BreaksPerHour,
		WorkMinutes:     stats.WorkMinutes,
	})
}

// RecordMood handles POST /api/v1/mood.
func (h *TrackerHandler) RecordMood(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.RecordMood(r.Context(), req.Mood)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":         entry.ID.String(),
		"mood":       entry.Label,
		"recordedAt": entry.RecordedAt,
	})
}

// RecordVelocity handles POST /api/v1/velocity.
func (h *TrackerHandler) RecordVelocity(w http.ResponseWriter, r *http.Request) {
	var req velocityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	completedAt := time.Time{}
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	entry, err := h.svc.RecordVelocity(r.Context(), req.Points, completedAt)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          entry.ID.String(),
		"points":      entry.Points,
		"completedAt": entry.CompletedAt,
	})
}

// SyncCommits handles POST /api/v1/sync/commits.
func (h *TrackerHandler) SyncCommits(w http.ResponseWriter, r *http.Request) {
	var req syncCommitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.svc.SyncCommits(r.Context(), tracker.SyncCommitsInput{
		Token: req.Token,
		Login: req.Login,
	})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Synced: count})
}

// SyncCodingTime handles POST /api/v1/sync/codingtime.
func (h *TrackerHandler) SyncCodingTime(w http.ResponseWriter, r *http.Request) {
	var req syncCodingTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	count, err := h.svc.SyncCodingTime(r.Context(), tracker.SyncCodingTimeInput{
		APIKey: req.APIKey,
	})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Synced: count})
}

func toSessionResponse(s *domain.WorkSession) sessionResponse {
	return sessionResponse{
		ID:          s.ID.String(),
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		DurationMin: s.DurationMin,
		BreaksTaken: s.BreaksTaken,
	}
}

func toBreakResponse(b *domain.BreakRecord) breakResponse {
	var sessionID *string
	if b.SessionID != nil {
		id := b.SessionID.String()
		sessionID = &id
	}
	return breakResponse{
		ID:          b.ID.String(),
		SessionID:   sessionID,
		StartedAt:   b.StartedAt,
		EndedAt:     b.EndedAt,
		DurationSec: b.DurationSec,
		Valid:       b.Valid,
	}
}
