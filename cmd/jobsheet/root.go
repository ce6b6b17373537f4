package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/anishpatel/jobsheet/internal/adapter"
	"github.com/anishpatel/jobsheet/internal/config"
	"github.com/anishpatel/jobsheet/internal/model"
	"github.com/anishpatel/jobsheet/internal/pipeline"
	"github.com/anishpatel/jobsheet/internal/publisher"
	"github.com/anishpatel/jobsheet/internal/secrets"
	"github.com/anishpatel/jobsheet/internal/sink"
	"github.com/anishpatel/jobsheet/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsheet",
	Short: "Adzuna job search to CSV and Google Sheets",
	Long:  "jobsheet runs an Adzuna job search, saves the results to a CSV file and publishes them to a formatted Google Sheet.",
	// `jobsheet` with no args performs a single run, so cron entries can invoke the binary directly.
	RunE: runRun,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSHEET_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSHEET_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSHEET_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// createFetcher resolves the app key and builds the Adzuna adapter.
func createFetcher(cfg *config.Config, logger *slog.Logger) (*adapter.AdzunaAdapter, error) {
	appKey, err := secrets.ResolveAppKey(cfg.Adzuna)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Adzuna.Timeout}
	a := adapter.NewAdzunaAdapter(cfg.Adzuna.BaseURL, adapter.AdzunaQuery{
		AppID:          cfg.Adzuna.AppID,
		AppKey:         appKey,
		Country:        cfg.Adzuna.Country,
		What:           cfg.Adzuna.What,
		Where:          cfg.Adzuna.Where,
		ResultsPerPage: cfg.Adzuna.ResultsPerPage,
	}, httpClient)
	logger.Debug("adzuna request", "url", a.RedactedURL())
	return a, nil
}

// setupStore opens the run-history store, or a NopStore when history is disabled.
// The returned close func is always safe to call.
func setupStore(cfg *config.Config, logger *slog.Logger) (model.RunStore, func(), error) {
	if !cfg.History.Enabled {
		return store.NewNopStore(), func() {}, nil
	}
	sqlStore, err := store.NewSQLiteStore(cfg.History.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open run history: %w", err)
	}
	logger.Debug("run history enabled", "db", cfg.History.DBPath)
	return sqlStore, func() { sqlStore.Close() }, nil
}

func setupPublisher(cfg *config.Config, logger *slog.Logger) *publisher.Publisher {
	if !cfg.Sheets.Enabled {
		logger.Info("google sheets export disabled")
		return nil
	}
	return publisher.NewPublisher(
		publisher.ServiceAccountDialer(cfg.Sheets.CredentialsFile),
		cfg.Sheets.Name,
		cfg.Sheets.ColumnWidth,
		logger,
	)
}

// buildPipeline wires the full run: Adzuna → CSV → Google Sheet, with history and lock.
func buildPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	fetcher, err := createFetcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	runStore, closeStore, err := setupStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []pipeline.Option{pipeline.WithLockFile(cfg.Output.CSVPath + ".lock")}
	if pub := setupPublisher(cfg, logger); pub != nil {
		opts = append(opts, pipeline.WithPublisher(pub))
	}

	p := pipeline.New(fetcher, sink.NewCSVSink(cfg.Output.CSVPath, logger), runStore, logger, opts...)
	return p, closeStore, nil
}
