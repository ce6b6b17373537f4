package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anishpatel/jobsheet/internal/model"
)

// Ensure SQLiteStore implements model.RunStore.
var _ model.RunStore = (*SQLiteStore)(nil)

// SQLiteStore keeps a log of pipeline runs in a SQLite database.
// It never stores listings; each run still replaces the previous output.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// runs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at  DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		fetched     INTEGER NOT NULL DEFAULT 0,
		written     INTEGER NOT NULL DEFAULT 0,
		severity    TEXT NOT NULL,
		warnings    INTEGER NOT NULL DEFAULT 0,
		error       TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// RecordRun appends a run to the log.
func (s *SQLiteStore) RecordRun(run model.Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (started_at, finished_at, fetched, written, severity, warnings, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Fetched, run.Written,
		run.Severity.String(), run.Warnings, run.Error,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]model.Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, fetched, written, severity, warnings, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var (
			r        model.Run
			severity string
			started  time.Time
			finished time.Time
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.Fetched, &r.Written, &severity, &r.Warnings, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = started
		r.FinishedAt = finished
		r.Severity, err = model.ParseSeverity(severity)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
