package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/anishpatel/jobsheet/internal/model"
)

// Ensure CSVSink implements model.TableWriter.
var _ model.TableWriter = (*CSVSink)(nil)

// CSVSink writes the table to a comma-delimited file, replacing it on every run.
type CSVSink struct {
	path   string
	logger *slog.Logger
}

// NewCSVSink returns a sink that writes to path.
func NewCSVSink(path string, logger *slog.Logger) *CSVSink {
	return &CSVSink{path: path, logger: logger}
}

// Path returns the destination file.
func (s *CSVSink) Path() string { return s.path }

// Write serializes table to a temp file next to the destination and renames it
// into place, so the destination is either the previous file or the full new one.
func (s *CSVSink) Write(ctx context.Context, table model.Table) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(table); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	s.logger.Info("saved jobs to csv", "path", s.path, "rows", table.DataRows())
	return nil
}
