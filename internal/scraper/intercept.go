package scraper

import (
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Interceptor classifies in-flight network responses during a browsing
// session and buffers any job-like objects found in JSON payloads. Register
// its Handle before navigating so the page load itself is observed.
//
// A single response failing to parse is never an error: the interceptor is a
// best-effort recovery path and silently ignores anything it cannot read.
type Interceptor struct {
	log *zap.Logger

	mu   sync.Mutex
	jobs []RawJob
}

func NewInterceptor(log *zap.Logger) *Interceptor {
	return &Interceptor{log: log}
}

// Handle observes one network response. Body fetches arrive on chromedp event
// goroutines, hence the mutex around the buffer.
func (i *Interceptor) Handle(url string, status int, contentType string, body []byte) {
	if status != 200 {
		return
	}
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return
	}

	found := findJobObjects(payload)
	if len(found) == 0 {
		return
	}

	i.mu.Lock()
	i.jobs = append(i.jobs, found...)
	total := len(i.jobs)
	i.mu.Unlock()

	i.log.Debug("intercepted job objects",
		zap.String("url", url),
		zap.Int("count", len(found)),
		zap.Int("total", total),
	)
}

// Jobs returns a snapshot of everything captured so far.
func (i *Interceptor) Jobs() []RawJob {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]RawJob, len(i.jobs))
	copy(out, i.jobs)
	return out
}
