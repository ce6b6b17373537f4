package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch jobs once, save the CSV and publish the sheet",
	Long:  "One full run: query Adzuna, normalize the results, overwrite the CSV file and replace the Google Sheet contents.",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"what", cfg.Adzuna.What,
		"country", cfg.Adzuna.Country,
		"results_per_page", cfg.Adzuna.ResultsPerPage,
		"csv", cfg.Output.CSVPath,
		"sheet", cfg.Sheets.Name,
	)

	p, closeStore, err := buildPipeline(cfg, logger)
	if err != nil {
		logger.Error("failed to set up run", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := p.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		closeStore()
		os.Exit(1)
	}
	return nil
}
