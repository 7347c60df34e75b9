package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cvera/cv-import/internal/config"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Import multiple profiles from a file of URLs",
	Long:  "Batch reads profile URLs or identifiers from a file (one per line, '#' comments allowed) and imports them sequentially with a fixed delay between provider calls.",
	RunE:  runBatch,
}

var (
	batchUserID      string
	batchInputFile   string
	batchConfigFile  string
	batchDatabaseURL string
	batchJSON        bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchUserID, "user-id", "u", "", "Owning user UUID (required)")
	batchCmd.Flags().StringVarP(&batchInputFile, "in", "i", "", "Path to file with one profile URL or identifier per line (required)")
	batchCmd.Flags().StringVarP(&batchConfigFile, "config", "c", "", "Path to JSON config file (overlays environment)")
	batchCmd.Flags().StringVar(&batchDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Emit results as JSON instead of human-readable text")
	_ = batchCmd.MarkFlagRequired("user-id")
	_ = batchCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	inputs, err := readInputLines(batchInputFile)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no profile inputs found in %s", batchInputFile)
	}

	cfg, err := loadConfig(batchConfigFile, batchDatabaseURL)
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

	results := imp.ImportBatch(ctx, batchUserID, inputs, cfg.BatchDelay)
	if batchJSON {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	succeeded := 0
	for idx, res := range results {
		fmt.Printf("[%d/%d] %s: ", idx+1, len(inputs), inputs[idx])
		if res.Success {
			succeeded++
			fmt.Printf("ok (document %s)\n", res.DocumentID)
		} else {
			fmt.Printf("failed (%s)\n", res.ErrorKind)
		}
	}
	fmt.Printf("Imported %d of %d profiles\n", succeeded, len(inputs))
	return nil
}

func readInputLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return lines, nil
}
