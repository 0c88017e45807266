package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"job-radar/internal/browser"
	"job-radar/internal/config"
	"job-radar/internal/database/migration"
	"job-radar/internal/database/postgres"
	"job-radar/internal/logging"
	"job-radar/internal/repository"
	"job-radar/internal/scraper"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	session, err := browser.Launch(ctx, log)
	if err != nil {
		log.Fatal("failed to launch browser", zap.Error(err))
	}
	defer session.Close()

	jobs := repository.NewScrapedJobRepository(db, log)
	runs := repository.NewScrapeRunRepository(db)

	engine := scraper.NewEngine(log, runs,
		scraper.NewPythonOrgStrategy(session, jobs, log),
		scraper.NewSimplifyStrategy(session, jobs, log),
	)

	// Per-source failures are report-only; they never change the exit status.
	summary := engine.Run(ctx)
	log.Info("scrape complete",
		zap.Int("inserted", summary.Inserted),
		zap.Any("per_source", summary.PerSource),
		zap.Strings("failed", summary.Failed),
	)
}
