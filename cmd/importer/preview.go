package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvera/cv-import/internal/config"
	"github.com/cvera/cv-import/internal/observability"
	"github.com/cvera/cv-import/internal/parsing"
	"github.com/cvera/cv-import/internal/scraper"
)

var previewCmd = &cobra.Command{
	Use:   "preview <profile-url-or-id>",
	Short: "Fetch and normalize a profile without persisting it",
	Long:  "Preview runs the fetch and normalization stages and prints the resulting document. Nothing is stored and no quota is consumed, so it is safe for inspecting provider output.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var (
	previewConfigFile string
	previewOutputFile string
)

func init() {
	previewCmd.Flags().StringVarP(&previewConfigFile, "config", "c", "", "Path to JSON config file (overlays environment)")
	previewCmd.Flags().StringVarP(&previewOutputFile, "out", "o", "", "Write the normalized document JSON to this path")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(previewConfigFile, "")
	if err != nil {
		return err
	}
	if cfg.ScraperBaseURL == "" || cfg.ScraperAPIKey == "" {
		return fmt.Errorf("scraper credentials are required (set SCRAPER_BASE_URL and SCRAPER_API_KEY)")
	}
	log := config.NewLogger(cfg.AppEnv)

	identifier, err := scraper.ExtractIdentifier(args[0])
	if err != nil {
		return err
	}

	opts := scraper.DefaultOptions()
	opts.BaseURL = cfg.ScraperBaseURL
	opts.APIKey = cfg.ScraperAPIKey
	opts.Timeout = cfg.FetchTimeout
	opts.MaxAttempts = cfg.MaxAttempts
	client := scraper.NewClient(opts, log)

	ctx := context.Background()
	raw, err := client.FetchProfile(ctx, identifier)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	profile, err := parsing.NewNormalizer(nil, cfg.MaxSkills).Normalize(raw, nil)
	if err != nil {
		return fmt.Errorf("failed to normalize profile: %w", err)
	}

	if previewOutputFile != "" {
		jsonBytes, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(previewOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	observability.NewPrinter(os.Stdout).PrintProfileSummary(profile)
	return nil
}
