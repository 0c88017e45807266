package routes

import (
	"github.com/gofiber/fiber/v3"

	"job-radar/internal/delivery/http/handler"
)

type Registry struct {
	health *handler.HealthHandler
	jobs   *handler.JobsHandler
}

func NewRegistry(health *handler.HealthHandler, jobs *handler.JobsHandler) *Registry {
	return &Registry{health: health, jobs: jobs}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", r.health.HandleHealth)

	v1 := app.Group("/api").Group("/v1")
	v1.Get("/jobs", r.jobs.HandleListJobs)
}
