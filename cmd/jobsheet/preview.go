package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anishpatel/jobsheet/internal/model"
	"github.com/anishpatel/jobsheet/internal/normalize"
	"github.com/anishpatel/jobsheet/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the search results in an interactive table",
	Long:  "Fetches and normalizes the search results, then shows them in a scrollable table. Press o or enter to open a listing, q to quit. Nothing is written.",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(debug)
	fetcher, err := createFetcher(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up fetcher: %v\n", err)
		os.Exit(1)
	}

	table, err := preview.RunLoader(cfg.Adzuna.What, cfg.Adzuna.Timeout, func(ctx context.Context) (model.Table, error) {
		raws, err := fetcher.FetchJobs(ctx)
		if err != nil {
			return nil, err
		}
		listings, err := normalize.Listings(raws)
		if err != nil {
			return nil, err
		}
		return model.NewTable(listings), nil
	})
	if errors.Is(err, preview.ErrCancelled) {
		return nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "preview failed: %v\n", err)
		os.Exit(1)
	}

	title := fmt.Sprintf("%s · %s", cfg.Adzuna.What, cfg.Adzuna.Country)
	if err := preview.RunTable(title, table); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
	return nil
}
