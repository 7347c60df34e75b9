package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvera/cv-import/internal/observability"
	"github.com/cvera/cv-import/internal/quota"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show a user's remaining daily import quota",
	RunE:  runQuota,
}

var (
	quotaUserID      string
	quotaConfigFile  string
	quotaDatabaseURL string
)

func init() {
	quotaCmd.Flags().StringVarP(&quotaUserID, "user-id", "u", "", "User UUID (required)")
	quotaCmd.Flags().StringVarP(&quotaConfigFile, "config", "c", "", "Path to JSON config file (overlays environment)")
	quotaCmd.Flags().StringVar(&quotaDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	_ = quotaCmd.MarkFlagRequired("user-id")

	rootCmd.AddCommand(quotaCmd)
}

func runQuota(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(quotaConfigFile, quotaDatabaseURL)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	gate := quota.NewGate(database, database, nil)
	status, err := gate.Check(ctx, quotaUserID)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintQuotaStatus(status.Tier, status.Used, status.Remaining)
	return nil
}
