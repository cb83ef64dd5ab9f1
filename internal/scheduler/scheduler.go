// Package scheduler wires up the cron job that sweeps expired postings
// out of the active listing set.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"jobsync/internal/repository"
)

type cacheInvalidator interface {
	InvalidateJobCaches(ctx context.Context) error
}

// Scheduler wraps robfig/cron and manages the expiry sweep loop.
type Scheduler struct {
	cron   *cron.Cron
	jobs   repository.JobRepository
	cache  cacheInvalidator
	spec   string
	logger *log.Logger
}

func New(jobs repository.JobRepository, cache cacheInvalidator, spec string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		jobs:   jobs,
		cache:  cache,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the sweep and starts the scheduler. Also runs one sweep
// immediately so stale postings don't linger until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Printf("[scheduler] Cron started | spec=%s", s.spec)

	go s.runSweep(ctx)

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runSweep(ctx context.Context) {
	n, err := s.jobs.DeactivateExpired(ctx, time.Now())
	if err != nil {
		s.logger.Printf("[scheduler] Expiry sweep error: %v", err)
		return
	}
	if n == 0 {
		return
	}

	s.logger.Printf("[scheduler] Expiry sweep deactivated %d posting(s)", n)

	if s.cache != nil {
		if err := s.cache.InvalidateJobCaches(ctx); err != nil {
			s.logger.Printf("[scheduler] Cache invalidation error: %v", err)
		}
	}
}
