package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"job-radar/internal/delivery/http/middleware"
	"job-radar/internal/pkg/response"
	"job-radar/internal/usecase"
)

type JobsHandler struct {
	uc usecase.JobListUsecase
}

func NewJobsHandler(uc usecase.JobListUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be an integer", nil, err)
	}
	offset, err := parseQueryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "offset must be an integer", nil, err)
	}

	jobs, err := h.uc.ListJobs(c.Context(), usecase.JobListParams{
		SourceSite: c.Query("source_site"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid pagination", nil, err)
		}
		return err
	}

	return response.Success(c, fiber.StatusOK, "success", jobs)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
