package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cvera/cv-import/internal/config"
	"github.com/cvera/cv-import/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <profile-url-or-id>",
	Short: "Import a single LinkedIn profile into a CV document",
	Long:  "Import fetches the given public profile, normalizes it into the canonical CV document shape, persists it, and reports the remaining daily quota.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	importUserID      string
	importConfigFile  string
	importDatabaseURL string
	importJSON        bool
)

func init() {
	importCmd.Flags().StringVarP(&importUserID, "user-id", "u", "", "Owning user UUID (required)")
	importCmd.Flags().StringVarP(&importConfigFile, "config", "c", "", "Path to JSON config file (overlays environment)")
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "Emit the result as JSON instead of human-readable text")
	_ = importCmd.MarkFlagRequired("user-id")

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(importConfigFile, importDatabaseURL)
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	imp, err := buildImporter(cfg, database, log)
	if err != nil {
		return err
	}

	result := imp.Import(ctx, importUserID, args[0])
	if importJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	printResult(result)
	if !result.Success {
		return fmt.Errorf("import failed: %s", result.ErrorKind)
	}
	return nil
}

func printResult(res importer.Result) {
	if res.Success {
		fmt.Printf("Imported document %s\n", res.DocumentID)
	} else {
		fmt.Printf("Import failed: %s\n", res.ErrorKind)
	}
	if res.RemainingImports == -1 {
		fmt.Println("Remaining imports today: unlimited")
	} else {
		fmt.Printf("Remaining imports today: %d\n", res.RemainingImports)
	}
}
