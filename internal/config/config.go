package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for jobsheet.
type Config struct {
	Adzuna  AdzunaConfig
	Output  OutputConfig
	Sheets  SheetsConfig
	History HistoryConfig
	Watch   WatchConfig
}

// AdzunaConfig describes the job-search query and API credentials.
type AdzunaConfig struct {
	AppID          string
	AppKey         string // empty means "look it up in the OS keychain"
	Country        string // two-letter country code, e.g. "us"
	What           string // free-text search term
	Where          string // optional location filter
	ResultsPerPage int
	BaseURL        string
	Timeout        time.Duration
}

// OutputConfig controls the local CSV sink.
type OutputConfig struct {
	CSVPath string `yaml:"csv_path"`
}

// SheetsConfig controls the Google Sheets publisher.
type SheetsConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Name            string `yaml:"name"`             // spreadsheet title, shared with the service account
	CredentialsFile string `yaml:"credentials_file"` // service-account JSON key
	ColumnWidth     int    `yaml:"column_width"`     // pixels
}

// HistoryConfig controls the SQLite run log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// WatchConfig controls the interval for `jobsheet watch`.
type WatchConfig struct {
	Interval time.Duration
}

const (
	DefaultBaseURL        = "https://api.adzuna.com/v1/api/jobs"
	DefaultCSVPath        = "adzuna_jobs.csv"
	DefaultResultsPerPage = 50
	DefaultColumnWidth    = 200
	DefaultDBPath         = "jobsheet.db"

	maxResultsPerPage = 1000
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Adzuna  rawAdzunaConfig `yaml:"adzuna"`
	Output  OutputConfig    `yaml:"output"`
	Sheets  rawSheetsConfig `yaml:"sheets"`
	History rawHistory      `yaml:"history"`
	Watch   rawWatchConfig  `yaml:"watch"`
}

type rawAdzunaConfig struct {
	AppID          string `yaml:"app_id"`
	AppKey         string `yaml:"app_key"`
	Country        string `yaml:"country"`
	What           string `yaml:"what"`
	Where          string `yaml:"where"`
	ResultsPerPage *int   `yaml:"results_per_page"`
	BaseURL        string `yaml:"base_url"`
	Timeout        string `yaml:"timeout"`
}

// Pointer bools distinguish "omitted" (default on) from an explicit false.
type rawSheetsConfig struct {
	Enabled         *bool  `yaml:"enabled"`
	Name            string `yaml:"name"`
	CredentialsFile string `yaml:"credentials_file"`
	ColumnWidth     int    `yaml:"column_width"`
}

type rawHistory struct {
	Enabled *bool  `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

type rawWatchConfig struct {
	Interval string `yaml:"interval"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references in data, decodes it and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var err error

	timeout := 30 * time.Second // default
	if raw.Adzuna.Timeout != "" {
		timeout, err = time.ParseDuration(raw.Adzuna.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse adzuna.timeout %q: %w", raw.Adzuna.Timeout, err)
		}
	}

	interval := 6 * time.Hour // default
	if raw.Watch.Interval != "" {
		interval, err = time.ParseDuration(raw.Watch.Interval)
		if err != nil {
			return nil, fmt.Errorf("parse watch.interval %q: %w", raw.Watch.Interval, err)
		}
	}

	resultsPerPage := DefaultResultsPerPage
	if raw.Adzuna.ResultsPerPage != nil {
		resultsPerPage = *raw.Adzuna.ResultsPerPage
	}

	cfg := &Config{
		Adzuna: AdzunaConfig{
			AppID:          strings.TrimSpace(raw.Adzuna.AppID),
			AppKey:         strings.TrimSpace(raw.Adzuna.AppKey),
			Country:        strings.ToLower(strings.TrimSpace(raw.Adzuna.Country)),
			What:           strings.TrimSpace(raw.Adzuna.What),
			Where:          strings.TrimSpace(raw.Adzuna.Where),
			ResultsPerPage: resultsPerPage,
			BaseURL:        orDefault(strings.TrimRight(raw.Adzuna.BaseURL, "/"), DefaultBaseURL),
			Timeout:        timeout,
		},
		Output: OutputConfig{
			CSVPath: orDefault(raw.Output.CSVPath, DefaultCSVPath),
		},
		Sheets: SheetsConfig{
			Enabled:         boolOr(raw.Sheets.Enabled, true),
			Name:            raw.Sheets.Name,
			CredentialsFile: raw.Sheets.CredentialsFile,
			ColumnWidth:     raw.Sheets.ColumnWidth,
		},
		History: HistoryConfig{
			Enabled: boolOr(raw.History.Enabled, true),
			DBPath:  orDefault(raw.History.DBPath, DefaultDBPath),
		},
		Watch: WatchConfig{Interval: interval},
	}
	if cfg.Sheets.ColumnWidth == 0 {
		cfg.Sheets.ColumnWidth = DefaultColumnWidth
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Adzuna.AppID == "" {
		return fmt.Errorf("adzuna.app_id is required")
	}
	if cfg.Adzuna.Country == "" {
		return fmt.Errorf("adzuna.country is required")
	}
	if cfg.Adzuna.What == "" {
		return fmt.Errorf("adzuna.what is required")
	}
	if cfg.Adzuna.ResultsPerPage <= 0 || cfg.Adzuna.ResultsPerPage > maxResultsPerPage {
		return fmt.Errorf("adzuna.results_per_page must be between 1 and %d, got %d", maxResultsPerPage, cfg.Adzuna.ResultsPerPage)
	}
	if cfg.Adzuna.Timeout <= 0 {
		return fmt.Errorf("adzuna.timeout must be positive, got %v", cfg.Adzuna.Timeout)
	}
	if !strings.HasPrefix(cfg.Adzuna.BaseURL, "http://") && !strings.HasPrefix(cfg.Adzuna.BaseURL, "https://") {
		return fmt.Errorf("adzuna.base_url must be an http(s) URL, got %q", cfg.Adzuna.BaseURL)
	}

	if cfg.Sheets.Enabled {
		if cfg.Sheets.Name == "" {
			return fmt.Errorf("sheets.name is required when sheets.enabled is true")
		}
		if cfg.Sheets.CredentialsFile == "" {
			return fmt.Errorf("sheets.credentials_file is required when sheets.enabled is true")
		}
		if cfg.Sheets.ColumnWidth < 0 {
			return fmt.Errorf("sheets.column_width must be positive, got %d", cfg.Sheets.ColumnWidth)
		}
	}

	if cfg.Watch.Interval < time.Minute {
		return fmt.Errorf("watch.interval must be at least 1m, got %v", cfg.Watch.Interval)
	}

	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
