package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"job-radar/internal/domain/job"
)

const (
	pythonOrgSite    = "Python.org"
	pythonOrgBaseURL = "https://www.python.org"
)

// PythonOrgStrategy scrapes the server-rendered python.org job board: parse
// the listing page into cards, then visit each card's detail page for the
// description. No interception is needed; the markup carries everything.
type PythonOrgStrategy struct {
	page  Page
	store JobStore
	log   *zap.Logger

	baseURL    string
	navTimeout time.Duration
	pace       func()
}

func NewPythonOrgStrategy(page Page, store JobStore, log *zap.Logger) *PythonOrgStrategy {
	return NewPythonOrgStrategyWithBaseURL(page, store, log, pythonOrgBaseURL)
}

func NewPythonOrgStrategyWithBaseURL(page Page, store JobStore, log *zap.Logger, baseURL string) *PythonOrgStrategy {
	return &PythonOrgStrategy{
		page:       page,
		store:      store,
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		navTimeout: 30 * time.Second,
		pace:       humanPace(time.Second, 4*time.Second),
	}
}

func (s *PythonOrgStrategy) Name() string { return pythonOrgSite }

// Scrape returns the count of newly persisted records. Navigation and
// per-card failures are local: they log, skip, and never surface to the
// coordinator.
func (s *PythonOrgStrategy) Scrape(ctx context.Context) (int, error) {
	listingURL := s.baseURL + "/jobs/"
	if err := s.page.Navigate(ctx, listingURL, s.navTimeout); err != nil {
		s.log.Error("listing page load failed", zap.String("url", listingURL), zap.Error(err))
		return 0, nil
	}
	s.pace()

	html, err := s.page.HTML(ctx)
	if err != nil {
		s.log.Error("listing page content unavailable", zap.Error(err))
		return 0, nil
	}

	cards := parseListingPage(html, s.baseURL, s.log)
	s.log.Info("listing cards found", zap.Int("count", len(cards)))

	inserted := 0
	for idx, card := range cards {
		if idx >= maxJobsPerSource {
			break
		}
		s.log.Info("processing card",
			zap.Int("index", idx+1),
			zap.String("title", card.Title),
		)
		rec := s.enrichFromDetail(ctx, card)
		ok, err := s.store.InsertJob(ctx, rec)
		if err != nil {
			s.log.Warn("insert failed", zap.String("title", card.Title), zap.Error(err))
		} else if ok {
			inserted++
		}
		s.pace()
	}

	return inserted, nil
}

// enrichFromDetail navigates to the card's detail page and fills in the
// description-derived fields. A failed detail fetch degrades to an empty
// description rather than dropping the card.
func (s *PythonOrgStrategy) enrichFromDetail(ctx context.Context, card job.ListingCard) job.Record {
	description := ""
	if err := s.page.Navigate(ctx, card.SourceURL, s.navTimeout); err != nil {
		s.log.Warn("detail page load failed", zap.String("url", card.SourceURL), zap.Error(err))
	} else {
		s.pace()
		if html, err := s.page.HTML(ctx); err == nil {
			description = extractJobDescription(html)
		} else {
			s.log.Warn("detail page content unavailable", zap.String("url", card.SourceURL), zap.Error(err))
		}
	}
	return buildFromCard(card, description, pythonOrgSite)
}

func extractJobDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("div.job-description").First().Text())
}

// buildFromCard merges listing-card metadata with the detail description and
// runs field inference over the combined text.
func buildFromCard(card job.ListingCard, description, site string) job.Record {
	rec := job.Record{
		Title:       card.Title,
		CompanyName: fallback(card.Company, job.DefaultCompany),
		Description: fallback(description, job.DefaultDescription),
		Location:    fallback(card.Location, job.DefaultLocation),
		SourceURL:   card.SourceURL,
		SourceSite:  site,
	}
	if description != "" {
		if wage, ok := ExtractSalary(description); ok {
			rec.Wage = &wage
		}
	}
	if exp, ok := InferExperienceLevel(card.Title, description); ok {
		rec.ExperienceLevel = &exp
	}
	rec.LocationRequirement = InferLocationRequirement(card.Title, rec.Location, description)
	if card.PostedAt != "" {
		posted := card.PostedAt
		rec.PostedAt = &posted
	}
	return rec
}
