package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ingest    IngestConfig
	Query     QueryConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

// ProviderConfig names one external job-offer source. Providers expose
// incompatible JSON shapes; the normalizer sorts that out, so config only
// carries the endpoint.
type ProviderConfig struct {
	Name string
	URL  string
}

type IngestConfig struct {
	Providers    []ProviderConfig
	CronSpec     string
	FetchTimeout time.Duration
}

type QueryConfig struct {
	PageSizeMax int
}

type RateLimitConfig struct {
	TTL        time.Duration
	MaxRequest int
}

const (
	defaultProvider1URL = "https://assignment.devotel.io/api/provider1/jobs"
	defaultProvider2URL = "https://assignment.devotel.io/api/provider2/jobs"
)

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:      optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:        int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime: optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime: optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
	}

	ingest, err := loadIngest(opt)
	if err != nil {
		return Config{}, err
	}
	cfg.Ingest = ingest

	cfg.Query = QueryConfig{
		PageSizeMax: optInt("PAGE_SIZE_MAX", 100),
	}

	cfg.RateLimit = RateLimitConfig{
		TTL:        time.Duration(optInt("RATE_LIMIT_TTL", 60)) * time.Second,
		MaxRequest: optInt("RATE_LIMIT_MAX_REQUEST", 120),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if cfg.Query.PageSizeMax < 1 {
		return Config{}, fmt.Errorf("PAGE_SIZE_MAX must be positive, got %d", cfg.Query.PageSizeMax)
	}
	if cfg.RateLimit.MaxRequest < 1 {
		return Config{}, fmt.Errorf("RATE_LIMIT_MAX_REQUEST must be positive, got %d", cfg.RateLimit.MaxRequest)
	}

	return cfg, nil
}

func loadIngest(opt func(string) string) (IngestConfig, error) {
	providers := []ProviderConfig{
		{Name: "provider1", URL: firstNonEmpty(opt("PROVIDER1_URL"), defaultProvider1URL)},
		{Name: "provider2", URL: firstNonEmpty(opt("PROVIDER2_URL"), defaultProvider2URL)},
	}

	// Extra sources can be appended without a code change:
	// PROVIDER_EXTRA="name1=url1,name2=url2"
	if extra := opt("PROVIDER_EXTRA"); extra != "" {
		for _, pair := range strings.Split(extra, ",") {
			name, url, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(url) == "" {
				return IngestConfig{}, fmt.Errorf("invalid PROVIDER_EXTRA entry %q, want name=url", pair)
			}
			providers = append(providers, ProviderConfig{
				Name: strings.TrimSpace(name),
				URL:  strings.TrimSpace(url),
			})
		}
	}

	spec := opt("INGEST_CRON")
	if spec == "" {
		spec = "@every 1m"
	}

	return IngestConfig{
		Providers:    providers,
		CronSpec:     spec,
		FetchTimeout: optDuration("INGEST_FETCH_TIMEOUT", 15*time.Second),
	}, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func optDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
