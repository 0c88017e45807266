package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Strategy is the per-source pipeline contract: a full scrape of one source,
// returning how many records were newly persisted. Strategies recover their
// own transport and parse failures; a returned error means the source as a
// whole could not run.
type Strategy interface {
	Name() string
	Scrape(ctx context.Context) (int, error)
}

// RunTracker records scrape runs for observability. Tracking failures never
// influence the run itself.
type RunTracker interface {
	StartRun(ctx context.Context, sourceSite string) (uuid.UUID, error)
	LogRun(ctx context.Context, runID uuid.UUID, level, message string) error
	FinishRun(ctx context.Context, runID uuid.UUID, status string) error
}

// Summary aggregates one engine run.
type Summary struct {
	Inserted  int
	PerSource map[string]int
	Failed    []string
}

// Engine sequences the source strategies strictly one after another over the
// shared browser session and isolates per-source failures.
type Engine struct {
	strategies []Strategy
	tracker    RunTracker
	log        *zap.Logger
	pace       func()
}

// NewEngine builds a coordinator; tracker may be nil.
func NewEngine(log *zap.Logger, tracker RunTracker, strategies ...Strategy) *Engine {
	return &Engine{
		strategies: strategies,
		tracker:    tracker,
		log:        log,
		pace:       humanPace(2*time.Second, 4*time.Second),
	}
}

func (e *Engine) Run(ctx context.Context) Summary {
	summary := Summary{PerSource: make(map[string]int)}

	for i, st := range e.strategies {
		if i > 0 {
			e.pace()
		}
		log := e.log.With(zap.String("source", st.Name()))
		log.Info("source starting")

		var runID uuid.UUID
		if e.tracker != nil {
			id, err := e.tracker.StartRun(ctx, st.Name())
			if err != nil {
				log.Warn("run tracking unavailable", zap.Error(err))
			} else {
				runID = id
			}
		}

		count, err := st.Scrape(ctx)
		status := "finished"
		if err != nil {
			log.Error("source failed", zap.Error(err))
			status = "failed"
			summary.Failed = append(summary.Failed, st.Name())
		} else {
			summary.Inserted += count
			summary.PerSource[st.Name()] = count
			log.Info("source done", zap.Int("inserted", count))
		}

		if e.tracker != nil && runID != uuid.Nil {
			if err != nil {
				_ = e.tracker.LogRun(ctx, runID, "error", err.Error())
			} else {
				_ = e.tracker.LogRun(ctx, runID, "info", fmt.Sprintf("inserted %d new jobs", count))
			}
			if err := e.tracker.FinishRun(ctx, runID, status); err != nil {
				log.Warn("run tracking finish failed", zap.Error(err))
			}
		}
	}

	return summary
}
