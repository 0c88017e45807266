package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"job-radar/internal/database"
	"job-radar/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	status := map[string]string{"database": "ok"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status["database"] = "unreachable"
			return response.Error(c, fiber.StatusServiceUnavailable, "degraded", status)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
