package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anishpatel/jobsheet/internal/model"
)

// Ensure LogSink implements model.TableWriter.
var _ model.TableWriter = (*LogSink)(nil)

// LogSink writes each listing to the given logger as a structured message.
// Used by `jobsheet check`, which must not touch the CSV or the sheet.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink that logs each row via slog.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Write logs every data row keyed by its column header. Returns nil (stdout logging does not fail).
func (s *LogSink) Write(_ context.Context, table model.Table) error {
	if len(table) == 0 {
		return nil
	}
	header := table[0]
	for _, row := range table[1:] {
		args := make([]any, 0, 2*len(row))
		for i, v := range row {
			key := fmt.Sprintf("col%d", i)
			if i < len(header) {
				key = header[i]
			}
			args = append(args, key, v)
		}
		s.logger.Info("job", args...)
	}
	s.logger.Info("listed jobs", "count", table.DataRows())
	return nil
}
