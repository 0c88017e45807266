package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"job-radar/internal/domain/job"
)

// RawJob is one job object as emitted by a source's internal API. The shape
// is versionless and unpredictable, so it stays a string-keyed map with
// ordered-fallback accessors instead of a fixed schema.
type RawJob map[string]any

// lookup returns the first non-nil value among keys.
func (r RawJob) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// text returns the first key whose value coerces to a non-empty string.
func (r RawJob) text(keys ...string) (string, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s := coerceString(v); s != "" {
			return s, true
		}
	}
	return "", false
}

// coerceString renders a scalar JSON value as a string. Maps, slices, and
// anything else unrenderable come back empty rather than as Go syntax.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// formatThousands renders a numeric wage as a dollar amount with thousands
// separators and no decimals.
func formatThousands(f float64) string {
	n := int64(f)
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// apiJobMapper folds an intercepted RawJob into the canonical Record. Every
// field degrades to its default on malformed input; mapping never fails.
type apiJobMapper struct {
	sourceSite      string
	detailURLFormat string // fmt verbs: id, slug
	searchURLFormat string // fmt verb: query
}

func (m apiJobMapper) Map(raw RawJob) job.Record {
	title, _ := raw.text("title", "name")
	if title == "" {
		title = job.DefaultTitle
	}

	company, ok := raw.text("company_name", "companyName")
	if !ok {
		if nested, isMap := raw["company"].(map[string]any); isMap {
			company, _ = RawJob(nested).text("name")
		}
	}
	if company == "" {
		company = job.DefaultCompany
	}

	description, _ := raw.text("description", "body", "details")
	if description == "" {
		description = job.DefaultDescription
	}

	rec := job.Record{
		Title:       title,
		CompanyName: company,
		Description: description,
		SourceSite:  m.sourceSite,
	}

	if wage, ok := m.mapWage(raw, description); ok {
		rec.Wage = &wage
	}

	rec.Location = m.mapLocation(raw)

	if req, ok := raw.text("locationRequirement", "work_type"); ok {
		rec.LocationRequirement = req
	} else {
		rec.LocationRequirement = InferLocationRequirement(title, rec.Location, description)
	}

	if exp, ok := raw.text("experienceLevel", "experience_level", "seniority"); ok {
		rec.ExperienceLevel = &exp
	} else if exp, ok := InferExperienceLevel(title, description); ok {
		rec.ExperienceLevel = &exp
	}

	rec.SourceURL = m.mapSourceURL(raw, title)

	if posted, ok := raw.text("postedAt", "posted_at", "created_at"); ok {
		rec.PostedAt = &posted
	}

	return rec
}

func (m apiJobMapper) mapWage(raw RawJob, description string) (string, bool) {
	v, ok := raw.lookup("salary", "wage", "compensation")
	if !ok {
		return ExtractSalary(description)
	}
	switch t := v.(type) {
	case map[string]any:
		rng := RawJob(t)
		lo, _ := rng.text("min", "low")
		hi, _ := rng.text("max", "high")
		if lo == "" && hi == "" {
			return "", false
		}
		currency, ok := rng.text("currency")
		if !ok {
			currency = "USD"
		}
		return fmt.Sprintf("%s %s–%s", currency, lo, hi), true
	case float64:
		return "$" + formatThousands(t), true
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s, true
		}
		return ExtractSalary(description)
	default:
		return ExtractSalary(description)
	}
}

func (m apiJobMapper) mapLocation(raw RawJob) string {
	v, ok := raw.lookup("location", "city")
	if !ok {
		if list, isList := raw["locations"].([]any); isList && len(list) > 0 {
			v = list[0]
			ok = true
		}
	}
	if !ok {
		return job.DefaultLocation
	}
	switch t := v.(type) {
	case map[string]any:
		if s, ok := RawJob(t).text("name", "city"); ok {
			return s
		}
		return job.DefaultLocation
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if s := coerceString(el); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return job.DefaultLocation
		}
		return strings.Join(parts, ", ")
	default:
		if s := coerceString(t); s != "" {
			return s
		}
		return job.DefaultLocation
	}
}

// mapSourceURL prefers a source-supplied URL, then the detail-page template
// when an id is available. The last-resort search URL embeds the title, so
// distinct postings with identical titles collapse into one row; accepted
// dedup loss for payloads that carry neither URL nor id.
func (m apiJobMapper) mapSourceURL(raw RawJob, title string) string {
	if u, ok := raw.text("url", "apply_url", "sourceUrl"); ok {
		return u
	}
	id, hasID := raw.text("id", "_id", "slug")
	slug, ok := raw.text("slug")
	if !ok {
		slug = slugify(title)
	}
	if hasID {
		return fmt.Sprintf(m.detailURLFormat, id, slug)
	}
	return fmt.Sprintf(m.searchURLFormat, strings.ReplaceAll(title, " ", "+"))
}
