package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anishpatel/jobsheet/internal/pipeline"
	"github.com/anishpatel/jobsheet/internal/sink"
	"github.com/anishpatel/jobsheet/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch once, print listings, exit",
	Long:  "One-shot dry run: fetches and normalizes the search results and logs each listing. Does not write the CSV, the sheet or the run history.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: nothing will be written")

	fetcher, err := createFetcher(cfg, logger)
	if err != nil {
		logger.Error("failed to set up fetcher", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(fetcher, sink.NewLogSink(logger), store.NewNopStore(), logger)
	if _, err := p.Run(ctx); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	logger.Info("check complete")
	return nil
}
