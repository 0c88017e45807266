package job

import (
	"time"

	"github.com/google/uuid"
)

// Location requirement values. InferLocationRequirement always yields one of
// the first three; NotSpecified only appears when a source supplies it.
const (
	Remote       = "Remote"
	Hybrid       = "Hybrid"
	OnSite       = "On-site"
	NotSpecified = "Not specified"
)

// Defaults applied when a source yields nothing for a required column.
const (
	DefaultTitle       = "Untitled"
	DefaultCompany     = "Unknown"
	DefaultDescription = "No description available."
	DefaultLocation    = "Not specified"
)

// Record is the canonical job posting shape persisted into scraped_jobs.
// SourceURL is the dedup key: the unique constraint on "sourceUrl" guarantees
// one row per posting across any number of runs.
type Record struct {
	Title               string
	CompanyName         string
	Description         string
	Wage                *string
	LocationRequirement string
	ExperienceLevel     *string
	Location            string
	SourceURL           string
	SourceSite          string
	PostedAt            *string
}

// ListingCard holds the minimal metadata scraped from one listing-page entry.
// It exists only between the listing parse and the detail-page enrichment that
// turns it into a Record.
type ListingCard struct {
	Title     string
	Company   string
	Location  string
	SourceURL string
	PostedAt  string
}

type ScrapeRun struct {
	ID         uuid.UUID
	SourceSite string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
}

type ScrapeLog struct {
	ID          uuid.UUID
	ScrapeRunID uuid.UUID
	Level       string
	Message     string
	CreatedAt   time.Time
}
