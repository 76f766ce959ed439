// Package ingest owns the fetch → normalize → write cycle. Every failure
// inside a cycle is recovered where it happens: a dead provider, a bad
// payload, or a failed insert costs only its own records, never the cycle
// and never the process.
package ingest

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/MiMmohammdi/job-offers-api/internal/domain/offer"
	"github.com/MiMmohammdi/job-offers-api/internal/normalize"
	"github.com/MiMmohammdi/job-offers-api/internal/provider"
	"github.com/MiMmohammdi/job-offers-api/internal/repository"
)

// ErrCycleInFlight is returned when a cycle is requested while the previous
// one is still running. Cycles never overlap; the dedup write path relies
// on that.
var ErrCycleInFlight = errors.New("ingestion cycle already in flight")

// Fetcher retrieves the raw payload for one source.
type Fetcher interface {
	Fetch(ctx context.Context, src provider.Source) ([]byte, error)
}

// Report summarizes one cycle so the scheduler can log success, partial
// results, or a dry run instead of relying on scattered log lines.
type Report struct {
	Providers int
	Fetched   int
	Parsed    int
	Inserted  int
	Skipped   int
	FetchErrs int
	ParseErrs int
	WriteErrs int
}

type Service struct {
	sources []provider.Source
	fetcher Fetcher
	repo    repository.JobOfferRepository
	logger  *log.Logger

	mu sync.Mutex
}

func NewService(sources []provider.Source, fetcher Fetcher, repo repository.JobOfferRepository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		sources: sources,
		fetcher: fetcher,
		repo:    repo,
		logger:  logger,
	}
}

// RunCycle executes one full ingestion pass across all sources. The
// normalized batch lives only inside this call; nothing is shared across
// cycles.
func (s *Service) RunCycle(ctx context.Context) (Report, error) {
	if !s.mu.TryLock() {
		return Report{}, ErrCycleInFlight
	}
	defer s.mu.Unlock()

	report := Report{Providers: len(s.sources)}

	batch := s.fetchAndParse(ctx, &report)
	s.store(ctx, batch, &report)

	return report, nil
}

// fetchAndParse fetches every source concurrently and normalizes each
// successful payload. One failing source never blocks the others.
func (s *Service) fetchAndParse(ctx context.Context, report *Report) []offer.JobOffer {
	var mu sync.Mutex
	var batch []offer.JobOffer

	pool := newWorkerPool(len(s.sources), len(s.sources))
	results := pool.Run(ctx)

	for _, src := range s.sources {
		src := src
		pool.Submit(func(ctx context.Context) error {
			payload, err := s.fetcher.Fetch(ctx, src)
			if err != nil {
				s.logger.Printf("[ingest] fetch failed for %s: %v", src.Name, err)
				mu.Lock()
				report.FetchErrs++
				mu.Unlock()
				return err
			}

			records, perr := normalize.Parse(payload)

			mu.Lock()
			report.Fetched++
			if perr != nil {
				// Partial yield: keep whatever was extracted before the
				// malformed entry.
				s.logger.Printf("[ingest] parse failed for %s: %v", src.Name, perr)
				report.ParseErrs++
			}
			report.Parsed += len(records)
			batch = append(batch, records...)
			mu.Unlock()
			return nil
		})
	}
	pool.Close()

	for range results {
	}

	return batch
}

// store runs the check-then-insert pass. Re-ingesting an already-present
// (jobId, title) pair is a silent no-op, never an update; a persistence
// error costs one record.
func (s *Service) store(ctx context.Context, batch []offer.JobOffer, report *Report) {
	for _, rec := range batch {
		exists, err := s.repo.ExistsByJobIDAndTitle(ctx, rec.JobID, rec.Title)
		if err != nil {
			s.logger.Printf("[ingest] dedup lookup failed for %s / %s: %v", rec.JobID, rec.Title, err)
			report.WriteErrs++
			continue
		}
		if exists {
			report.Skipped++
			continue
		}
		if _, err := s.repo.Insert(ctx, rec); err != nil {
			s.logger.Printf("[ingest] insert failed for %s / %s: %v", rec.JobID, rec.Title, err)
			report.WriteErrs++
			continue
		}
		report.Inserted++
	}
}
