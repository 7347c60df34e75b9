package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cvera/cv-import/internal/config"
	"github.com/cvera/cv-import/internal/db"
	"github.com/cvera/cv-import/internal/importer"
	"github.com/cvera/cv-import/internal/parsing"
	"github.com/cvera/cv-import/internal/quota"
	"github.com/cvera/cv-import/internal/scraper"
)

// loadConfig builds the effective configuration from the environment plus an
// optional JSON file and flag overrides.
func loadConfig(configFile, dbURLFlag string) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	if dbURLFlag != "" {
		cfg.DatabaseURL = dbURLFlag
	}
	return cfg, nil
}

func connectDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

// buildImporter assembles the full pipeline from configuration. The skills
// client is optional and only wired when credentials are configured.
func buildImporter(cfg *config.Config, database *db.DB, log zerolog.Logger) (*importer.Importer, error) {
	if cfg.ScraperBaseURL == "" || cfg.ScraperAPIKey == "" {
		return nil, fmt.Errorf("scraper credentials are required (set SCRAPER_BASE_URL and SCRAPER_API_KEY)")
	}

	opts := scraper.DefaultOptions()
	opts.BaseURL = cfg.ScraperBaseURL
	opts.APIKey = cfg.ScraperAPIKey
	opts.Timeout = cfg.FetchTimeout
	opts.MaxAttempts = cfg.MaxAttempts
	fetcher := scraper.NewClient(opts, log)

	var skillsFetcher importer.SkillsFetcher
	if cfg.SkillsBaseURL != "" && cfg.SkillsAPIKey != "" {
		skillsFetcher = scraper.NewSkillsClient(scraper.SkillsOptions{
			BaseURL:     cfg.SkillsBaseURL,
			APIKey:      cfg.SkillsAPIKey,
			APIHost:     cfg.SkillsAPIHost,
			Timeout:     cfg.FetchTimeout,
			MaxAttempts: cfg.MaxAttempts,
		}, log)
	}

	return importer.New(importer.Deps{
		Fetcher:    fetcher,
		Skills:     skillsFetcher,
		Normalizer: parsing.NewNormalizer(nil, cfg.MaxSkills),
		Quota:      quota.NewGate(database, database, nil),
		Documents:  database,
		Attempts:   database,
		Log:        log,
	}), nil
}
