package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"job-radar/internal/config"
	"job-radar/internal/database"
	"job-radar/internal/database/postgres"
	"job-radar/internal/delivery/http/handler"
	"job-radar/internal/delivery/http/middleware"
	"job-radar/internal/delivery/http/routes"
	"job-radar/internal/infrastructure/cache"
	"job-radar/internal/repository"
	"job-radar/internal/usecase"
)

type App struct {
	Fiber *fiber.App
	DB    database.DB
	Cache *cache.Redis
}

// Bootstrap wires the read API: Postgres, Redis, usecases, fiber routes.
// The returned cleanup closes every owned resource and is safe to call once.
func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, log)

	jobs := repository.NewScrapedJobRepository(db, log)
	jobList := usecase.NewJobListUsecase(jobs, redisCache, log)

	f := fiber.New(fiber.Config{})
	f.Use(middleware.NewErrorMiddleware(log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(log).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(db),
		handler.NewJobsHandler(jobList),
	)
	registry.Register(f)

	app := &App{Fiber: f, DB: db, Cache: redisCache}
	cleanup := func() error {
		var firstErr error
		if err := redisCache.Close(); err != nil {
			firstErr = err
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}
	return app, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
