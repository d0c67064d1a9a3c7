package rest

import "net/http"

// Handlers bundles everything the router needs.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Burnout  *BurnoutHandler
	Tracker  *TrackerHandler
	Settings *SettingsHandler
}

// NewRouter registers all REST routes on a fresh mux. Authentication is
// enforced by middleware wrapped around the returned handler; routes under
// /api/v1 (except auth) expect a user ID in the request context.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)

	mux.HandleFunc("POST /api/v1/burnout/compute", h.Burnout.Compute)
	mux.HandleFunc("GET /api/v1/burnout/current", h.Burnout.Current)
	mux.HandleFunc("GET /api/v1/burnout/history", h.Burnout.History)

	mux.HandleFunc("POST /api/v1/sessions/start", h.Tracker.StartSession)
	mux.HandleFunc("POST /api/v1/sessions/end", h.Tracker.EndSession)
	mux.HandleFunc("POST /api/v1/breaks/start", h.Tracker.StartBreak)
	mux.HandleFunc("POST /api/v1/breaks/end", h.Tracker.EndBreak)
	mux.HandleFunc("GET /api/v1/breaks/today", h.Tracker.TodayBreaks)
	mux.HandleFunc("POST /api/v1/mood", h.Tracker.RecordMood)
	mux.HandleFunc("POST /api/v1/velocity", h.Tracker.RecordVelocity)
	mux.HandleFunc("POST /api/v1/sync/commits", h.Tracker.SyncCommits)
	mux.HandleFunc("POST /api/v1/sync/codingtime", h.Tracker.SyncCodingTime)

	mux.HandleFunc("GET /api/v1/settings", h.Settings.Get)
	mux.HandleFunc("PATCH /api/v1/settings", h.Settings.Update)

	return mux
}
