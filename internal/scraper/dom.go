package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"job-radar/internal/domain/job"
)

// parseListingPage extracts listing cards from a server-rendered jobs index:
// an ordered list where each item carries a heading link, a labeled company
// span, a location link, and a posted-date time element. The heading link is
// the only hard requirement; items missing anything else degrade to defaults,
// items missing the link are skipped.
func parseListingPage(html, baseURL string, log *zap.Logger) []job.ListingCard {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Warn("listing page unparseable", zap.Error(err))
		return nil
	}

	list := doc.Find("ol.list-recent-jobs").First()
	if list.Length() == 0 {
		log.Warn("listing container ol.list-recent-jobs not found")
		return nil
	}

	var cards []job.ListingCard
	list.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		titleLink := li.Find("h2.listing-company a").First()
		if titleLink.Length() == 0 {
			log.Debug("skipping listing item without title link", zap.Int("index", i))
			return
		}
		title := strings.TrimSpace(titleLink.Text())
		href := strings.TrimSpace(titleLink.AttrOr("href", ""))
		sourceURL := href
		if !strings.HasPrefix(href, "http") {
			sourceURL = baseURL + href
		}

		cards = append(cards, job.ListingCard{
			Title:     title,
			Company:   fallback(companyFromSpan(li.Find("span.listing-company-name").First()), job.DefaultCompany),
			Location:  fallback(strings.TrimSpace(li.Find("span.listing-location a").First().Text()), job.DefaultLocation),
			SourceURL: sourceURL,
			PostedAt:  postedFromTime(li.Find("span.listing-posted time").First()),
		})
	})

	return cards
}

// companyFromSpan recovers the bare company name from a span that may nest
// other elements (logo alt text, separators): subtract each child element's
// text from the span's full text, then strip dash separators.
func companyFromSpan(span *goquery.Selection) string {
	if span.Length() == 0 {
		return ""
	}
	company := span.Text()
	span.Children().Each(func(_ int, child *goquery.Selection) {
		childText := strings.TrimSpace(child.Text())
		if childText != "" {
			company = strings.Replace(company, childText, "", 1)
		}
	})
	company = strings.TrimSpace(company)
	company = strings.Trim(company, "—–-")
	return strings.TrimSpace(company)
}

// postedFromTime prefers the machine-readable datetime attribute over the
// display text.
func postedFromTime(t *goquery.Selection) string {
	if t.Length() == 0 {
		return ""
	}
	if dt := strings.TrimSpace(t.AttrOr("datetime", "")); dt != "" {
		return dt
	}
	return strings.TrimSpace(t.Text())
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// domCard holds the fields recoverable from one card in a client-rendered
// grid. Any field except Title may be empty.
type domCard struct {
	Title               string
	Company             string
	Wage                string
	LocationRequirement string
	Location            string
	ExperienceLevel     string
}

var experienceTokens = map[string]struct{}{
	"intern": {}, "junior": {}, "mid": {}, "senior": {},
	"lead": {}, "entry": {}, "expert": {}, "staff": {},
}

// parseCardGrid extracts cards from a rendered SPA result grid: every
// clickable container with a heading is a candidate. Cards without a heading
// text are dropped; everything else is heuristic.
func parseCardGrid(html string) []domCard {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var cards []domCard
	doc.Find("button").Each(func(_ int, card *goquery.Selection) {
		if card.Find("h3").Length() == 0 {
			return
		}
		if c, ok := parseDOMCard(card); ok {
			cards = append(cards, c)
		}
	})
	return cards
}

func parseDOMCard(card *goquery.Selection) (domCard, bool) {
	title := strings.TrimSpace(card.Find("h3").First().Text())
	if title == "" {
		return domCard{}, false
	}

	out := domCard{
		Title:               title,
		Company:             job.DefaultCompany,
		LocationRequirement: job.NotSpecified,
		Location:            job.DefaultLocation,
	}

	// Company is usually the span following the logo: first non-empty span
	// that is not the title and not a salary string.
	card.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := strings.TrimSpace(span.Text())
		if text != "" && text != title && len(text) > 1 && !strings.HasPrefix(text, "$") {
			out.Company = text
			return false
		}
		return true
	})

	card.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if strings.Contains(text, "/yr") || strings.Contains(text, "/hr") || strings.Contains(text, "$") {
			out.Wage = text
			return false
		}
		return true
	})

	card.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "remote"), strings.Contains(lower, "in person"),
			strings.Contains(lower, "hybrid"), strings.Contains(lower, "on-site"):
			out.LocationRequirement = text
		case strings.Contains(text, ",") && len(text) < 80 && !strings.Contains(text, "$"):
			out.Location = text
		}
	})

	card.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if _, ok := experienceTokens[strings.ToLower(text)]; ok {
			out.ExperienceLevel = capitalize(text)
			return false
		}
		return true
	})

	return out, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
