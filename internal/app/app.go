package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	jwtauth "github.com/heartmarshall/touchgrass-backend/internal/auth"
	"github.com/heartmarshall/touchgrass-backend/internal/config"

	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/breakrecord"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/codingday"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/commit"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/mood"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/score"
	settingsrepo "github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/velocity"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/worksession"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/provider/github"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/provider/wakatime"
	authsvc "github.com/heartmarshall/touchgrass-backend/internal/service/auth"
	"github.com/heartmarshall/touchgrass-backend/internal/service/burnout"
	"github.com/heartmarshall/touchgrass-backend/internal/service/maintenance"
	settingssvc "github.com/heartmarshall/touchgrass-backend/internal/service/settings"
	"github.com/heartmarshall/touchgrass-backend/internal/service/tracker"
	"github.com/heartmarshall/touchgrass-backend/internal/transport/middleware"
	"github.com/heartmarshall/touchgrass-backend/internal/transport/rest"
	"github.com/heartmarshall/touchgrass-backend/pkg/ctxutil"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to the database, wires repositories into services,
// and serves HTTP until the context is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	tx := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	settings := settingsrepo.New(pool)
	tokens := token.New(pool)
	scores := score.New(pool)
	velocities := velocity.New(pool)
	moods := mood.New(pool)
	sessions := worksession.New(pool)
	breaks := breakrecord.New(pool)
	commits := commit.New(pool)
	codingDays := codingday.New(pool)

	jwt := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	githubProvider := github.NewProviderWithURL(cfg.Integrations.GitHubBaseURL, cfg.Integrations.RequestTimeout, logger)
	wakatimeProvider := wakatime.NewProviderWithURL(cfg.Integrations.WakaTimeBaseURL, cfg.Integrations.RequestTimeout, logger)

	authService := authsvc.NewService(logger, users, settings, tokens, tx, jwt, cfg.Auth)
	burnoutService := burnout.NewService(logger, scores, settings, velocities, moods,
		sessions, breaks, commits, codingDays, cfg.Scoring, cfg.Breaks, cfg.Integrations)
	trackerService := tracker.NewService(logger, sessions, breaks, moods, velocities,
		commits, codingDays, githubProvider, wakatimeProvider, tx, cfg.Breaks, cfg.Integrations)
	settingsService := settingssvc.NewService(logger, settings)
	maintenanceService := maintenance.NewService(logger, breaks, sessions, tx, cfg.Breaks)

	mux := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
		Auth:     rest.NewAuthHandler(authService, logger),
		Burnout:  rest.NewBurnoutHandler(burnoutService, logger),
		Tracker:  rest.NewTrackerHandler(trackerService, logger),
		Settings: rest.NewSettingsHandler(settingsService, logger),
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(authService),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go runBreakReconciler(ctx, logger, maintenanceService, cfg.Breaks.ReconcileInterval)
	go runTokenCleanup(ctx, logger, authService)
	if cfg.Scoring.ComputeInterval > 0 {
		go runScoreRecompute(ctx, logger, users, burnoutService, cfg.Scoring.ComputeInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// runBreakReconciler periodically closes breaks whose owner never ended them.
func runBreakReconciler(ctx context.Context, logger *slog.Logger, svc *maintenance.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.ReconcileOrphanedBreaks(ctx); err != nil {
				logger.ErrorContext(ctx, "break reconciliation failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

// runScoreRecompute recomputes every user's score on a schedule so scores
// and notification claims do not depend on clients calling compute.
func runScoreRecompute(ctx context.Context, logger *slog.Logger, users *userrepo.Repo, svc *burnout.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids, err := users.ListIDs(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "list users for recompute",
					slog.String("error", err.Error()))
				continue
			}
			for _, id := range ids {
				userCtx := ctxutil.WithUserID(ctx, id)
				if _, err := svc.ComputeScore(userCtx); err != nil {
					logger.WarnContext(userCtx, "scheduled recompute failed",
						slog.String("user_id", id.String()),
						slog.String("error", err.Error()))
				}
			}
		}
	}
}

// runTokenCleanup deletes expired refresh tokens once a day.
func runTokenCleanup(ctx context.Context, logger *slog.Logger, svc *authsvc.Service) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.CleanupExpiredTokens(ctx); err != nil {
				logger.ErrorContext(ctx, "token cleanup failed",
					slog.String("error", err.Error()))
			}
		}
	}
}
