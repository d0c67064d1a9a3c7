package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
	"github.com/heartmarshall/touchgrass-backend/internal/service/burnout"
)

// burnoutService defines the minimal interface needed by BurnoutHandler.
type burnoutService interface {
	ComputeScore(ctx context.Context) (burnout.ComputeResult, error)
	GetCurrentRisk(ctx context.Context) (*domain.BurnoutScore, error)
	GetHistory(ctx context.Context, days int) ([]*domain.BurnoutScore, error)
}

// BurnoutHandler serves burnout risk REST endpoints.
type BurnoutHandler struct {
	svc burnoutService
	log *slog.Logger
}

// NewBurnoutHandler creates a BurnoutHandler.
func NewBurnoutHandler(svc burnoutService, logger *slog.Logger) *BurnoutHandler {
	return &BurnoutHandler{svc: svc, log: logger.With("handler", "burnout")}
}

type sourceReadingResponse struct {
	Score     int     `json:"score"`
	Available bool    `json:"available"`
	Weight    float64 `json:"weight"`
	Label     string  `json:"label"`
}

type factorsResponse struct {
	Sources          map[string]sourceReadingResponse `json:"sources"`
	TrendModifier    int                              `json:"trendModifier"`
	SeverityModifier int                              `json:"severityModifier"`
	AvailableSources int                              `json:"availableSources"`
}

type scoreResponse struct {
	Day       string          `json:"day"`
	RiskScore int             `json:"riskScore"`
	Band      string          `json:"band"`
	Factors   factorsResponse `json:"factors"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type computeResponse struct {
	scoreResponse
	NotificationTriggered bool `json:"notificationTriggered"`
}

// Compute handles POST /api/v1/burnout/compute.
func (h *BurnoutHandler) Compute(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ComputeScore(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, computeResponse{
		scoreResponse:         toScoreResponse(result.Score),
		NotificationTriggered: result.ShouldNotify,
	})
}

// Current handles GET /api/v1/burnout/current.
func (h *BurnoutHandler) Current(w http.ResponseWriter, r *http.Request) {
	score, err := h.svc.GetCurrentRisk(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toScoreResponse(score))
}

// History handles GET /api/v1/burnout/history?days=30.
func (h *BurnoutHandler) History(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = n
	}

	scores, err := h.svc.GetHistory(r.Context(), days)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	out := make([]scoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, toScoreResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func toScoreResponse(s *domain.BurnoutScore) scoreResponse {
	sources := make(map[string]sourceReadingResponse, len(s.Factors.Sources))
	for src, reading := range s.Factors.Sources {
		sources[string(src)] = sourceReadingResponse{
			Score:     reading.Score,
			Available: reading.Available,
			Weight:    reading.Weight,
			Label:     s.Factors.Describe(src),
		}
	}

	return scoreResponse{
		Day:       s.Day.Format("2006-01-02"),
		RiskScore: s.RiskScore,
		Band:      string(s.Band()),
		Factors: factorsResponse{
			Sources:          sources,
			TrendModifier:    s.Factors.TrendModifier,
			SeverityModifier: s.Factors.SeverityModifier,
			AvailableSources: s.Factors.AvailableSources,
		},
		UpdatedAt: s.UpdatedAt,
	}
}
