package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/MiMmohammdi/job-offers-api/internal/config"
	"github.com/MiMmohammdi/job-offers-api/internal/database"
	dbpostgres "github.com/MiMmohammdi/job-offers-api/internal/database/postgres"
	"github.com/MiMmohammdi/job-offers-api/internal/infrastructure/cache"
	"github.com/MiMmohammdi/job-offers-api/internal/ingest"
	"github.com/MiMmohammdi/job-offers-api/internal/provider"
	"github.com/MiMmohammdi/job-offers-api/internal/repository"
	"github.com/MiMmohammdi/job-offers-api/internal/usecase"
)

// Container owns every long-lived dependency: the connection pool, the
// cache client, the repository and usecase graph, and the ingestion
// service. Both binaries build one and pick what they need from it.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Logger *log.Logger

	Offers    repository.JobOfferRepository
	OfferList usecase.OfferListUsecase
	Ingest    *ingest.Service
	Scheduler *ingest.Scheduler
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	offers := repository.NewPostgresJobOfferRepository(db)
	offerList := usecase.NewOfferListUsecase(offers, redisCache, cfg.Query.PageSizeMax, logger)

	sources := make([]provider.Source, 0, len(cfg.Ingest.Providers))
	for _, p := range cfg.Ingest.Providers {
		sources = append(sources, provider.Source{Name: p.Name, URL: p.URL})
	}
	fetcher := provider.NewClient(cfg.Ingest.FetchTimeout)
	ingestSvc := ingest.NewService(sources, fetcher, offers, logger)
	scheduler := ingest.NewScheduler(ingestSvc, cfg.Ingest.CronSpec, logger)

	return &Container{
		Config:    cfg,
		DB:        db,
		Cache:     redisCache,
		Logger:    logger,
		Offers:    offers,
		OfferList: offerList,
		Ingest:    ingestSvc,
		Scheduler: scheduler,
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
