// Package jobs runs background maintenance for the aiproxy service.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"hackhub/internal/store"
)

// Purger permanently removes records that stayed soft-deleted longer than
// the retention period.
type Purger struct {
	cron       *cron.Cron
	spec       string
	retention  time.Duration
	results    store.JobSearchResults
	detections store.LanguageDetections
	now        func() time.Time
}

// NewPurger creates a purger that runs on the cron spec, e.g. "@daily".
func NewPurger(results store.JobSearchResults, detections store.LanguageDetections, spec string, retention time.Duration) *Purger {
	return &Purger{
		cron:       cron.New(),
		spec:       spec,
		retention:  retention,
		results:    results,
		detections: detections,
		now:        time.Now,
	}
}

// Start registers the purge job and starts the scheduler.
func (p *Purger) Start(ctx context.Context) error {
	if p.retention <= 0 {
		return errors.New("purge retention must be positive")
	}

	_, err := p.cron.AddFunc(p.spec, func() {
		if _, _, err := p.PurgeOnce(ctx); err != nil {
			slog.Error("purge failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", p.spec, err)
	}

	p.cron.Start()
	slog.Info("purger started", "schedule", p.spec, "retention", p.retention)
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish.
func (p *Purger) Stop() {
	<-p.cron.Stop().Done()
	slog.Info("purger stopped")
}

// PurgeOnce removes records soft-deleted before now minus the retention.
func (p *Purger) PurgeOnce(ctx context.Context) (results, detections int64, err error) {
	cutoff := p.now().Add(-p.retention)

	results, err = p.results.PurgeDeletedJobSearchResults(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to purge job search results: %w", err)
	}
	detections, err = p.detections.PurgeDeletedLanguageDetections(ctx, cutoff)
	if err != nil {
		return results, 0, fmt.Errorf("failed to purge language detections: %w", err)
	}

	if results > 0 || detections > 0 {
		slog.Info("purged soft-deleted records", "job_search_results", results, "language_detections", detections, "cutoff", cutoff)
	}
	return results, detections, nil
}
