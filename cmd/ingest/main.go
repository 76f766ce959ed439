// Command ingest runs a single ingestion cycle and exits. Useful for
// backfills and for checking provider connectivity without starting the
// HTTP server.
package main

import (
	"context"
	"log"
	"time"

	"github.com/MiMmohammdi/job-offers-api/internal/app"
	"github.com/MiMmohammdi/job-offers-api/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := c.Ingest.RunCycle(ctx)
	if err != nil {
		log.Fatalf("cycle failed: %v", err)
	}

	log.Printf(
		"cycle done: providers=%d fetched=%d parsed=%d inserted=%d skipped=%d fetch_errs=%d parse_errs=%d write_errs=%d",
		report.Providers, report.Fetched, report.Parsed, report.Inserted,
		report.Skipped, report.FetchErrs, report.ParseErrs, report.WriteErrs,
	)
}
