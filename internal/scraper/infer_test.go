package scraper

import (
	"testing"

	"job-radar/internal/domain/job"
)

func TestExtractSalary(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "dollar range with period",
			text: "Compensation: $120,000 - $150,000 per year plus equity",
			want: "$120,000 - $150,000 per year",
			ok:   true,
		},
		{
			name: "single dollar amount",
			text: "We pay $95,000 annually",
			want: "$95,000 annually",
			ok:   true,
		},
		{
			name: "iso code prefix",
			text: "Salary: EUR 60,000 - 80,000 depending on experience",
			want: "EUR 60,000 - 80,000",
			ok:   true,
		},
		{
			name: "amount then code",
			text: "up to 70,000 GBP",
			want: "70,000 GBP",
			ok:   true,
		},
		{
			name: "no salary",
			text: "Competitive compensation and great benefits",
			want: "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractSalary(tc.text)
			if ok != tc.ok {
				t.Fatalf("ExtractSalary(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("ExtractSalary(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestInferExperienceLevel(t *testing.T) {
	cases := []struct {
		title       string
		description string
		want        string
		ok          bool
	}{
		{"Software Engineering Intern", "", "Intern", true},
		{"Backend Developer", "This is an entry-level position", "Junior", true},
		{"Mid-level Go Developer", "", "Mid", true},
		{"Senior Staff Engineer", "", "Senior", true}, // earliest rule wins on co-occurrence
		{"Sr. Platform Engineer", "", "Senior", true},
		{"Staff Engineer", "", "Lead", true},
		{"Head of Engineering", "", "Director", true},
		{"Software Engineer", "Build distributed systems", "", false},
	}

	valid := map[string]bool{"Intern": true, "Junior": true, "Mid": true, "Senior": true, "Lead": true, "Director": true}

	for _, tc := range cases {
		got, ok := InferExperienceLevel(tc.title, tc.description)
		if ok != tc.ok || got != tc.want {
			t.Errorf("InferExperienceLevel(%q, %q) = (%q, %v), want (%q, %v)",
				tc.title, tc.description, got, ok, tc.want, tc.ok)
		}
		if ok && !valid[got] {
			t.Errorf("InferExperienceLevel yielded level %q outside the known set", got)
		}
	}
}

func TestInferLocationRequirementIsTotal(t *testing.T) {
	cases := []struct {
		title, location, description string
		want                         string
	}{
		{"Remote Software Engineer", "", "", job.Remote},
		{"Engineer", "Anywhere", "telecommuting welcome", job.Remote},
		{"Engineer", "Berlin (hybrid)", "", job.Hybrid},
		{"Engineer", "Amsterdam, NL", "On site five days a week", job.OnSite},
		{"", "", "", job.OnSite},
		{"xjqz", "!!!", "\x00\x01", job.OnSite},
	}

	for _, tc := range cases {
		got := InferLocationRequirement(tc.title, tc.location, tc.description)
		if got != tc.want {
			t.Errorf("InferLocationRequirement(%q, %q, %q) = %q, want %q",
				tc.title, tc.location, tc.description, got, tc.want)
		}
		if got != job.Remote && got != job.Hybrid && got != job.OnSite {
			t.Errorf("InferLocationRequirement returned %q, outside {Remote, Hybrid, On-site}", got)
		}
	}
}
