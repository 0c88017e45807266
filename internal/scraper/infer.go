package scraper

import (
	"regexp"
	"strings"

	"job-radar/internal/domain/job"
)

// Ordered salary patterns: symbol-prefixed ranges with an optional period
// unit, ISO-code-prefixed amounts, then amount-then-code. First match wins
// and the matched substring is returned verbatim.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,]+(?:\s*[-–—to]+\s*\$?[\d,]+)?(?:\s*(?:per\s+)?(?:year|yr|annum|annually|hour|hr|month|mo))?`),
	regexp.MustCompile(`(?i)(?:USD|EUR|GBP)\s*[\d,]+(?:\s*[-–—to]+\s*[\d,]+)?`),
	regexp.MustCompile(`(?i)[\d,]+\s*(?:USD|EUR|GBP)`),
}

// ExtractSalary pulls a wage string out of free text. The boolean is false
// when no pattern matches.
func ExtractSalary(text string) (string, bool) {
	for _, pat := range salaryPatterns {
		if m := pat.FindString(text); m != "" {
			return strings.TrimSpace(m), true
		}
	}
	return "", false
}

// experienceRules is ordered: keywords co-occur ("senior staff engineer") and
// the earliest rule decides.
var experienceRules = []struct {
	re    *regexp.Regexp
	level string
}{
	{regexp.MustCompile(`\b(?:intern|internship)\b`), "Intern"},
	{regexp.MustCompile(`\bjunior\b|entry[\s-]?level`), "Junior"},
	{regexp.MustCompile(`\bmid[\s-]?level\b|\bintermediate\b`), "Mid"},
	{regexp.MustCompile(`\bsenior\b|\bsr\.?\b`), "Senior"},
	{regexp.MustCompile(`\b(?:lead|principal|staff)\b`), "Lead"},
	{regexp.MustCompile(`\b(?:director|head of|vp|vice president)\b`), "Director"},
}

// InferExperienceLevel keyword-matches a seniority level from title and
// description. The boolean is false when no rule matches.
func InferExperienceLevel(title, description string) (string, bool) {
	combined := strings.ToLower(title + " " + description)
	for _, rule := range experienceRules {
		if rule.re.MatchString(combined) {
			return rule.level, true
		}
	}
	return "", false
}

// InferLocationRequirement decides Remote / Hybrid / On-site from whatever
// text is available. It is total: absent any signal the answer is On-site.
func InferLocationRequirement(title, location, description string) string {
	combined := strings.ToLower(title + " " + location + " " + description)
	if strings.Contains(combined, "remote") || strings.Contains(combined, "telecommut") {
		return job.Remote
	}
	if strings.Contains(combined, "hybrid") {
		return job.Hybrid
	}
	return job.OnSite
}
