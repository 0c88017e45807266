package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"job-radar/internal/database"
)

// ScrapeRunRepository records run/log rows for observability. Callers treat
// every method as best-effort; a tracking failure never stops a scrape.
type ScrapeRunRepository struct {
	db database.DB
}

func NewScrapeRunRepository(db database.DB) *ScrapeRunRepository {
	return &ScrapeRunRepository{db: db}
}

func (r *ScrapeRunRepository) StartRun(ctx context.Context, sourceSite string) (uuid.UUID, error) {
	if r == nil || r.db == nil {
		return uuid.Nil, fmt.Errorf("nil repository/db")
	}
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO scrape_runs (id, source_site, status) VALUES ($1, $2, 'running')`,
		id, sourceSite,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *ScrapeRunRepository) LogRun(ctx context.Context, runID uuid.UUID, level, message string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil repository/db")
	}
	if runID == uuid.Nil {
		return nil
	}
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO scrape_logs (id, scrape_run_id, level, message) VALUES ($1, $2, $3, $4)`,
		uuid.New(), runID, level, message,
	)
	return err
}

func (r *ScrapeRunRepository) FinishRun(ctx context.Context, runID uuid.UUID, status string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("nil repository/db")
	}
	if runID == uuid.Nil {
		return nil
	}
	_, err := r.db.Exec(ctx,
		`UPDATE scrape_runs SET finished_at = now(), status = $2 WHERE id = $1`,
		runID, strings.TrimSpace(status),
	)
	return err
}
