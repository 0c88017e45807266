package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-radar/internal/database"
	"job-radar/internal/domain/job"
)

const insertJobSQL = `
INSERT INTO scraped_jobs (
	title, "companyName", description, wage,
	"locationRequirement", "experienceLevel", location,
	"sourceUrl", "sourceSite", "postedAt"
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT ("sourceUrl") DO NOTHING`

// ScrapedJobRepository persists canonical job records. The unique constraint
// on "sourceUrl" makes repeated runs harmless: conflicting rows are skipped,
// never updated.
type ScrapedJobRepository struct {
	db  database.DB
	log *zap.Logger
}

func NewScrapedJobRepository(db database.DB, log *zap.Logger) *ScrapedJobRepository {
	return &ScrapedJobRepository{db: db, log: log}
}

// InsertJob writes one record, reporting true iff a new row was inserted.
// A duplicate "sourceUrl" returns (false, nil).
func (r *ScrapedJobRepository) InsertJob(ctx context.Context, rec job.Record) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("nil repository/db")
	}

	affected, err := r.db.Exec(ctx, insertJobSQL,
		rec.Title,
		rec.CompanyName,
		rec.Description,
		rec.Wage,
		rec.LocationRequirement,
		rec.ExperienceLevel,
		rec.Location,
		rec.SourceURL,
		rec.SourceSite,
		rec.PostedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert job %q: %w", rec.SourceURL, err)
	}

	if affected > 0 {
		r.log.Info("inserted job", zap.String("title", rec.Title), zap.String("site", rec.SourceSite))
		return true, nil
	}
	r.log.Debug("skipped duplicate job", zap.String("title", rec.Title), zap.String("url", rec.SourceURL))
	return false, nil
}

// ScrapedJob is the read-side row shape served by the HTTP API.
type ScrapedJob struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	CompanyName         string    `json:"companyName"`
	Description         string    `json:"description"`
	Wage                *string   `json:"wage,omitempty"`
	LocationRequirement string    `json:"locationRequirement"`
	ExperienceLevel     *string   `json:"experienceLevel,omitempty"`
	Location            string    `json:"location"`
	SourceURL           string    `json:"sourceUrl"`
	SourceSite          string    `json:"sourceSite"`
	ScrapedAt           time.Time `json:"scrapedAt"`
	PostedAt            *string   `json:"postedAt,omitempty"`
}

type JobListFilter struct {
	SourceSite string
	Limit      int
	Offset     int
}

// ListJobs returns the most recently scraped jobs, optionally filtered by
// source site.
func (r *ScrapedJobRepository) ListJobs(ctx context.Context, filter JobListFilter) ([]ScrapedJob, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("nil repository/db")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
SELECT id, title, "companyName", description, wage,
	"locationRequirement", "experienceLevel", location,
	"sourceUrl", "sourceSite", "scrapedAt", "postedAt"
FROM scraped_jobs`
	args := []any{}
	if site := strings.TrimSpace(filter.SourceSite); site != "" {
		query += ` WHERE "sourceSite" = $1`
		args = append(args, site)
	}
	query += fmt.Sprintf(` ORDER BY "scrapedAt" DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ScrapedJob, 0)
	for rows.Next() {
		var j ScrapedJob
		if err := rows.Scan(
			&j.ID, &j.Title, &j.CompanyName, &j.Description, &j.Wage,
			&j.LocationRequirement, &j.ExperienceLevel, &j.Location,
			&j.SourceURL, &j.SourceSite, &j.ScrapedAt, &j.PostedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
