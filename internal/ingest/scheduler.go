package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers ingestion cycles on a fixed cadence. The cron chain
// skips a tick while the previous cycle is still running, and the service
// holds its own in-flight guard as well, so cycles never overlap even if
// one is started by hand.
type Scheduler struct {
	cron   *cron.Cron
	svc    *Service
	spec   string
	logger *log.Logger
}

func NewScheduler(svc *Service, spec string, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.PrintfLogger(logger)),
			cron.SkipIfStillRunning(cron.PrintfLogger(logger)),
		)),
		svc:    svc,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the cron entry and runs one immediate cycle so the store
// is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%q): %w", s.spec, err)
	}

	s.cron.Start()
	s.logger.Printf("[scheduler] started, spec=%s providers=%d", s.spec, len(s.svc.sources))

	go s.runOnce(ctx)
	return nil
}

// Stop halts the cadence; a running cycle finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Printf("[scheduler] stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.svc.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, ErrCycleInFlight) {
			s.logger.Printf("[scheduler] previous cycle still running, skipping")
			return
		}
		s.logger.Printf("[scheduler] cycle error: %v", err)
		return
	}

	s.logger.Printf(
		"[scheduler] cycle done: providers=%d fetched=%d parsed=%d inserted=%d skipped=%d fetch_errs=%d parse_errs=%d write_errs=%d",
		report.Providers, report.Fetched, report.Parsed, report.Inserted,
		report.Skipped, report.FetchErrs, report.ParseErrs, report.WriteErrs,
	)
}
