// Package config provides configuration loading and validation for the
// import pipeline. Values come from the environment (optionally seeded from a
// .env file) with an optional JSON file overlay for CLI use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the import pipeline needs to run.
type Config struct {
	// App
	AppEnv string `json:"app_env,omitempty" validate:"omitempty,oneof=development production test"`

	// Profile provider
	ScraperBaseURL string        `json:"scraper_base_url,omitempty" validate:"omitempty,url"`
	ScraperAPIKey  string        `json:"scraper_api_key,omitempty"`
	FetchTimeout   time.Duration `json:"-"`
	MaxAttempts    int           `json:"max_attempts,omitempty" validate:"omitempty,min=1,max=10"`

	// Supplementary skills provider (optional; empty key disables it)
	SkillsBaseURL string `json:"skills_base_url,omitempty" validate:"omitempty,url"`
	SkillsAPIKey  string `json:"skills_api_key,omitempty"`
	SkillsAPIHost string `json:"skills_api_host,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"`

	// Batch behavior
	BatchDelay time.Duration `json:"-"`

	// Normalization
	MaxSkills int `json:"max_skills,omitempty" validate:"omitempty,min=1,max=200"`
}

// Load builds the configuration from the process environment. A .env file in
// the working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	// Ignore a missing .env; it is a local-development convenience.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         envOr("APP_ENV", "production"),
		ScraperBaseURL: os.Getenv("SCRAPER_BASE_URL"),
		ScraperAPIKey:  os.Getenv("SCRAPER_API_KEY"),
		SkillsBaseURL:  os.Getenv("SKILLS_BASE_URL"),
		SkillsAPIKey:   os.Getenv("SKILLS_API_KEY"),
		SkillsAPIHost:  os.Getenv("SKILLS_API_HOST"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	var err error
	if cfg.FetchTimeout, err = envDuration("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.BatchDelay, err = envDuration("BATCH_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.MaxAttempts, err = envInt("MAX_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if cfg.MaxSkills, err = envInt("MAX_SKILLS", 30); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a JSON config file and overlays its non-empty values on top
// of cfg. CLI users point at a file instead of exporting a dozen variables.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overlay Config
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}
	c.merge(overlay)
	return c.Validate()
}

// Validate checks value ranges and formats. Required-field checks happen at
// the call sites that actually need each value, so a quota-only command does
// not demand scraper credentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) merge(overlay Config) {
	if overlay.AppEnv != "" {
		c.AppEnv = overlay.AppEnv
	}
	if overlay.ScraperBaseURL != "" {
		c.ScraperBaseURL = overlay.ScraperBaseURL
	}
	if overlay.ScraperAPIKey != "" {
		c.ScraperAPIKey = overlay.ScraperAPIKey
	}
	if overlay.SkillsBaseURL != "" {
		c.SkillsBaseURL = overlay.SkillsBaseURL
	}
	if overlay.SkillsAPIKey != "" {
		c.SkillsAPIKey = overlay.SkillsAPIKey
	}
	if overlay.SkillsAPIHost != "" {
		c.SkillsAPIHost = overlay.SkillsAPIHost
	}
	if overlay.DatabaseURL != "" {
		c.DatabaseURL = overlay.DatabaseURL
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.MaxSkills != 0 {
		c.MaxSkills = overlay.MaxSkills
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
