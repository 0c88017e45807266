package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"job-radar/internal/domain/job"
)

const (
	simplifySite            = "SimplifyJobs"
	simplifySearchURL       = "https://simplify.jobs/jobs?query=software+engineer"
	simplifyDetailURLFormat = "https://simplify.jobs/p/%s/%s"
	simplifySearchURLFormat = "https://simplify.jobs/jobs?query=%s"

	// lazy-load scroll steps after the initial navigation
	simplifyScrollSteps = 3
)

// SimplifyStrategy scrapes the client-rendered simplify.jobs search page.
// Primary path: intercept the SPA's own API responses and normalize the
// structured records. Fallback: parse the rendered card grid. The two paths
// are mutually exclusive per run; any interception success preempts the DOM.
type SimplifyStrategy struct {
	page  Page
	store JobStore
	log   *zap.Logger

	searchURL   string
	navTimeout  time.Duration
	waitTimeout time.Duration
	pace        func()
	mapper      apiJobMapper
}

func NewSimplifyStrategy(page Page, store JobStore, log *zap.Logger) *SimplifyStrategy {
	return NewSimplifyStrategyWithSearchURL(page, store, log, simplifySearchURL)
}

func NewSimplifyStrategyWithSearchURL(page Page, store JobStore, log *zap.Logger, searchURL string) *SimplifyStrategy {
	return &SimplifyStrategy{
		page:        page,
		store:       store,
		log:         log,
		searchURL:   searchURL,
		navTimeout:  60 * time.Second,
		waitTimeout: 15 * time.Second,
		pace:        humanPace(time.Second, 3*time.Second),
		mapper: apiJobMapper{
			sourceSite:      simplifySite,
			detailURLFormat: simplifyDetailURLFormat,
			searchURLFormat: simplifySearchURLFormat,
		},
	}
}

func (s *SimplifyStrategy) Name() string { return simplifySite }

func (s *SimplifyStrategy) Scrape(ctx context.Context) (int, error) {
	interceptor := NewInterceptor(s.log)
	// Subscribe before navigating so the initial page load is observed.
	s.page.OnResponse(interceptor.Handle)

	if err := s.page.Navigate(ctx, s.searchURL, s.navTimeout); err != nil {
		// Non-fatal: redirects and partial loads may already have produced
		// interceptable traffic.
		s.log.Warn("search page load issue", zap.String("url", s.searchURL), zap.Error(err))
	}
	s.pace()

	for i := 0; i < simplifyScrollSteps; i++ {
		if err := s.page.ScrollByViewport(ctx); err != nil {
			s.log.Debug("scroll step failed", zap.Int("step", i+1), zap.Error(err))
			break
		}
		s.pace()
	}

	raws := interceptor.Jobs()
	if len(raws) == 0 {
		s.log.Info("no API data intercepted, falling back to DOM parsing")
		return s.scrapeFromDOM(ctx), nil
	}

	s.log.Info("using intercepted API data", zap.Int("count", len(raws)))
	if len(raws) > maxJobsPerSource {
		raws = raws[:maxJobsPerSource]
	}

	inserted := 0
	for idx, raw := range raws {
		rec := s.mapper.Map(raw)
		s.log.Info("processing API job",
			zap.Int("index", idx+1),
			zap.String("title", rec.Title),
		)
		ok, err := s.store.InsertJob(ctx, rec)
		if err != nil {
			s.log.Warn("insert failed", zap.String("title", rec.Title), zap.Error(err))
			continue
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// scrapeFromDOM parses the rendered card grid when interception yielded
// nothing. A wait timeout means zero cards, not an error.
func (s *SimplifyStrategy) scrapeFromDOM(ctx context.Context) int {
	if err := s.page.WaitVisible(ctx, "h3", s.waitTimeout); err != nil {
		s.log.Warn("timed out waiting for job card headings", zap.Error(err))
		return 0
	}
	html, err := s.page.HTML(ctx)
	if err != nil {
		s.log.Warn("rendered page content unavailable", zap.Error(err))
		return 0
	}

	cards := parseCardGrid(html)
	s.log.Info("dom fallback cards found", zap.Int("count", len(cards)))

	inserted := 0
	for idx, card := range cards {
		if idx >= maxJobsPerSource {
			break
		}
		ok, err := s.store.InsertJob(ctx, s.recordFromCard(card, idx))
		if err != nil {
			s.log.Warn("insert failed", zap.String("title", card.Title), zap.Error(err))
			continue
		}
		if ok {
			inserted++
		}
	}
	return inserted
}

// recordFromCard builds a Record from card-grid fields. No detail page
// exists on this path, so the synthetic fragment URL stands in as identity.
func (s *SimplifyStrategy) recordFromCard(card domCard, idx int) job.Record {
	rec := job.Record{
		Title:               card.Title,
		CompanyName:         card.Company,
		Description:         fmt.Sprintf("Job listing for %s at %s.", card.Title, card.Company),
		LocationRequirement: card.LocationRequirement,
		Location:            card.Location,
		SourceURL:           fmt.Sprintf("%s#card-%d", s.searchURL, idx),
		SourceSite:          simplifySite,
	}
	if card.Wage != "" {
		wage := card.Wage
		rec.Wage = &wage
	}
	if card.ExperienceLevel != "" {
		exp := card.ExperienceLevel
		rec.ExperienceLevel = &exp
	}
	return rec
}
