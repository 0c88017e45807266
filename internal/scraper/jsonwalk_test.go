package scraper

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestFindJobObjectsNested(t *testing.T) {
	root := decode(t, `{"data":{"jobs":[{"title":"A","companyName":"X"},{"name":"B","company_name":"Y"}]}}`)

	got := findJobObjects(root)
	if len(got) != 2 {
		t.Fatalf("found %d job objects, want 2", len(got))
	}

	titles := map[string]bool{}
	for _, raw := range got {
		title, _ := raw.text("title", "name")
		titles[title] = true
	}
	if !titles["A"] || !titles["B"] {
		t.Fatalf("collected titles = %v, want A and B", titles)
	}
}

func TestFindJobObjectsJobLikeNotDescended(t *testing.T) {
	// The nested job inside a job-like object must not be collected twice.
	root := decode(t, `{"jobs":[{"title":"Outer","companyName":"X","related":{"jobs":[{"title":"Inner","companyName":"Y"}]}}]}`)

	got := findJobObjects(root)
	if len(got) != 1 {
		t.Fatalf("found %d job objects, want 1", len(got))
	}
	if title, _ := got[0].text("title"); title != "Outer" {
		t.Fatalf("collected %q, want Outer", title)
	}
}

func TestFindJobObjectsFirstListKeyOnly(t *testing.T) {
	// When a known list key is present, sibling branches are not explored.
	root := decode(t, `{"jobs":[{"title":"A","companyName":"X"}],"extra":{"results":[{"title":"B","companyName":"Y"}]}}`)

	got := findJobObjects(root)
	if len(got) != 1 {
		t.Fatalf("found %d job objects, want 1 (only the jobs branch)", len(got))
	}
}

func TestFindJobObjectsDepthCap(t *testing.T) {
	leaf := map[string]any{"title": "Deep", "companyName": "X"}
	var root any = leaf
	for i := 0; i < maxWalkDepth+5; i++ {
		root = map[string]any{"wrap": root}
	}

	if got := findJobObjects(root); len(got) != 0 {
		t.Fatalf("found %d job objects beyond the depth cap, want 0", len(got))
	}
}

func TestFindJobObjectsTopLevelArray(t *testing.T) {
	root := decode(t, `[{"title":"A","company_name":"X"},{"irrelevant":true}]`)

	got := findJobObjects(root)
	if len(got) != 1 {
		t.Fatalf("found %d job objects, want 1", len(got))
	}
}

func TestIsJobLike(t *testing.T) {
	cases := []struct {
		m    map[string]any
		want bool
	}{
		{map[string]any{"title": "a", "companyName": "x"}, true},
		{map[string]any{"name": "a", "company_name": "x"}, true},
		{map[string]any{"title": "a"}, false},
		{map[string]any{"companyName": "x"}, false},
		{map[string]any{}, false},
	}
	for _, tc := range cases {
		if got := isJobLike(tc.m); got != tc.want {
			t.Errorf("isJobLike(%v) = %v, want %v", tc.m, got, tc.want)
		}
	}
}
