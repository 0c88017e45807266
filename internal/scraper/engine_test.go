package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubStrategy struct {
	name  string
	count int
	err   error
	runs  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Scrape(ctx context.Context) (int, error) {
	s.runs++
	return s.count, s.err
}

type trackedRun struct {
	source string
	status string
	logs   []string
}

type fakeTracker struct {
	startErr error
	runs     map[uuid.UUID]*trackedRun
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{runs: map[uuid.UUID]*trackedRun{}}
}

func (t *fakeTracker) StartRun(ctx context.Context, sourceSite string) (uuid.UUID, error) {
	if t.startErr != nil {
		return uuid.Nil, t.startErr
	}
	id := uuid.New()
	t.runs[id] = &trackedRun{source: sourceSite}
	return id, nil
}

func (t *fakeTracker) LogRun(ctx context.Context, runID uuid.UUID, level, message string) error {
	if run, ok := t.runs[runID]; ok {
		run.logs = append(run.logs, level+": "+message)
	}
	return nil
}

func (t *fakeTracker) FinishRun(ctx context.Context, runID uuid.UUID, status string) error {
	if run, ok := t.runs[runID]; ok {
		run.status = status
	}
	return nil
}

func (t *fakeTracker) bySource(source string) *trackedRun {
	for _, run := range t.runs {
		if run.source == source {
			return run
		}
	}
	return nil
}

func newTestEngine(tracker RunTracker, strategies ...Strategy) *Engine {
	e := NewEngine(zap.NewNop(), tracker, strategies...)
	e.pace = func() {}
	return e
}

func TestEngineIsolatesFailingSource(t *testing.T) {
	failing := &stubStrategy{name: "Broken", err: errors.New("browser crashed")}
	healthy := &stubStrategy{name: "Healthy", count: 3}
	tracker := newFakeTracker()

	summary := newTestEngine(tracker, failing, healthy).Run(context.Background())

	if healthy.runs != 1 {
		t.Fatalf("healthy source ran %d times, want 1 despite earlier failure", healthy.runs)
	}
	if len(summary.Failed) != 1 || summary.Failed[0] != "Broken" {
		t.Fatalf("Failed = %v, want [Broken]", summary.Failed)
	}
	if summary.Inserted != 3 {
		t.Fatalf("Inserted = %d, want 3", summary.Inserted)
	}
	if summary.PerSource["Healthy"] != 3 {
		t.Fatalf("PerSource = %v", summary.PerSource)
	}
	if _, ok := summary.PerSource["Broken"]; ok {
		t.Fatal("failed source must not report a per-source count")
	}

	if run := tracker.bySource("Broken"); run == nil || run.status != "failed" {
		t.Fatalf("Broken run tracking = %+v, want status failed", run)
	}
	if run := tracker.bySource("Healthy"); run == nil || run.status != "finished" {
		t.Fatalf("Healthy run tracking = %+v, want status finished", run)
	}
}

func TestEngineNavigationTimeoutDoesNotStarveOtherSources(t *testing.T) {
	page := newFakePage()
	page.navErr["https://www.python.org/jobs/"] = errors.New("net::ERR_TIMED_OUT")
	store := newFakeStore()

	other := &stubStrategy{name: "Other", count: 5}
	summary := newTestEngine(nil, newPythonOrgTestStrategy(page, store), other).Run(context.Background())

	if other.runs != 1 {
		t.Fatal("second source did not execute after the first timed out")
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("Failed = %v, want none (a timeout is a zero-result run, not a failure)", summary.Failed)
	}
	if summary.PerSource["Python.org"] != 0 {
		t.Fatalf("PerSource[Python.org] = %d, want 0", summary.PerSource["Python.org"])
	}
	if summary.Inserted != 5 {
		t.Fatalf("Inserted = %d, want 5", summary.Inserted)
	}
}

func TestEngineReportsFailuresWithoutEscalating(t *testing.T) {
	// Source failures surface only inside the summary; Run always completes
	// and callers have nothing to branch on besides the report.
	summary := newTestEngine(nil,
		&stubStrategy{name: "A", err: errors.New("browser crashed")},
		&stubStrategy{name: "B", err: errors.New("browser crashed again")},
	).Run(context.Background())

	if len(summary.Failed) != 2 {
		t.Fatalf("Failed = %v, want both sources", summary.Failed)
	}
	if summary.Inserted != 0 {
		t.Fatalf("Inserted = %d, want 0", summary.Inserted)
	}
}

func TestEngineWithoutTracker(t *testing.T) {
	summary := newTestEngine(nil, &stubStrategy{name: "Solo", count: 1}).Run(context.Background())
	if summary.Inserted != 1 {
		t.Fatalf("Inserted = %d, want 1", summary.Inserted)
	}
}

func TestEngineTrackerFailureIsNonFatal(t *testing.T) {
	tracker := newFakeTracker()
	tracker.startErr = errors.New("db down")

	summary := newTestEngine(tracker, &stubStrategy{name: "Solo", count: 2}).Run(context.Background())
	if summary.Inserted != 2 {
		t.Fatalf("Inserted = %d, want 2 when tracking is unavailable", summary.Inserted)
	}
}
