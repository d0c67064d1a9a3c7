// Command reconcile-breaks closes break records whose owner never ended
// them. It applies the same duration and validity rules as a normal break
// end, so sessions still get their break counters. Intended for an external
// cron job; the server also runs the same pass in-process.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/breakrecord"
	"github.com/heartmarshall/touchgrass-backend/internal/adapter/postgres/worksession"
	"github.com/heartmarshall/touchgrass-backend/internal/app"
	"github.com/heartmarshall/touchgrass-backend/internal/config"
	"github.com/heartmarshall/touchgrass-backend/internal/service/maintenance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := maintenance.NewService(
		logger,
		breakrecord.New(pool),
		worksession.New(pool),
		postgres.NewTxManager(pool),
		cfg.Breaks,
	)

	closed, err := svc.ReconcileOrphanedBreaks(ctx)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("reconcile completed", slog.Int("closed", closed))
}
