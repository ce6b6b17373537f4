package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anishpatel/jobsheet/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run now and then on an interval",
	Long:  "Runs the full pipeline immediately and then every watch.interval; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"what", cfg.Adzuna.What,
		"country", cfg.Adzuna.Country,
		"interval", cfg.Watch.Interval.String(),
	)

	p, closeStore, err := buildPipeline(cfg, logger)
	if err != nil {
		logger.Error("failed to set up run", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(p, cfg.Watch.Interval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		closeStore()
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
