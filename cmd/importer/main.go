// Package main provides the entry point for the profile import CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "LinkedIn profile import pipeline",
	Long:  "Importer fetches public LinkedIn profiles through a scraping provider, normalizes them into canonical CV documents, and persists them under per-user daily quotas.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
