package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"job-radar/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

const jobListCacheTTL = 60 * time.Second

type JobListParams struct {
	SourceSite string
	Limit      int
	Offset     int
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]repository.ScrapedJob, error)
}

type jobLister interface {
	ListJobs(ctx context.Context, filter repository.JobListFilter) ([]repository.ScrapedJob, error)
}

type listCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type JobList struct {
	jobs  jobLister
	cache listCache
	log   *zap.Logger
}

func NewJobListUsecase(jobs jobLister, cache listCache, log *zap.Logger) *JobList {
	if log == nil {
		log = zap.NewNop()
	}
	return &JobList{jobs: jobs, cache: cache, log: log}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) ([]repository.ScrapedJob, error) {
	if params.Limit < 0 || params.Limit > 50 {
		return nil, ErrInvalidInput
	}
	if params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	key := cacheKey(params)
	if u.cache != nil {
		var cached []repository.ScrapedJob
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.log.Debug("job list cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	jobs, err := u.jobs.ListJobs(ctx, repository.JobListFilter{
		SourceSite: params.SourceSite,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, jobs, jobListCacheTTL); err != nil {
			u.log.Debug("job list cache write failed", zap.Error(err))
		}
	}
	return jobs, nil
}

func cacheKey(params JobListParams) string {
	return fmt.Sprintf("jobs:list:site=%s:limit=%d:offset=%d", params.SourceSite, params.Limit, params.Offset)
}
