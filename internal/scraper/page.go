package scraper

import (
	"context"
	"math/rand"
	"time"

	"job-radar/internal/domain/job"
)

// maxJobsPerSource caps how many candidate records one source may process in
// a single run.
const maxJobsPerSource = 15

// Page is the minimal browser surface a strategy drives. The concrete
// implementation lives in internal/browser; anti-detection setup is its
// concern and invisible here.
type Page interface {
	// Navigate loads a URL and waits for the document, bounded by timeout.
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	// HTML returns the full rendered markup of the current document.
	HTML(ctx context.Context) (string, error)
	// WaitVisible blocks until the selector matches a visible element or the
	// timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	// ScrollByViewport scrolls down one viewport height to trigger lazy loads.
	ScrollByViewport(ctx context.Context) error
	// OnResponse subscribes fn to every network response of the page's
	// session. Must be called before the navigation whose traffic matters.
	OnResponse(fn func(url string, status int, contentType string, body []byte))
}

// JobStore is the persistence boundary. InsertJob reports true iff a new row
// was written; duplicates come back false without error.
type JobStore interface {
	InsertJob(ctx context.Context, rec job.Record) (bool, error)
}

// humanPace returns a pacing function sleeping a random interval in [lo, hi]
// between navigations, mimicking human browsing rhythm.
func humanPace(lo, hi time.Duration) func() {
	return func() {
		time.Sleep(lo + time.Duration(rand.Int63n(int64(hi-lo)+1)))
	}
}
