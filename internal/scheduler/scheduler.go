package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/anishpatel/jobsheet/internal/pipeline"
)

// Runner performs one full pipeline cycle.
type Runner interface {
	Run(ctx context.Context) (pipeline.Result, error)
}

var _ Runner = (*pipeline.Pipeline)(nil)

// Scheduler owns the watch loop: it runs the pipeline on an interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that runs runner every interval.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the loop. It runs one immediate cycle, then ticks on the
// configured interval. A failed cycle is logged and the next one still runs.
// It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler", "interval", s.interval.String())

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.runner.Run(ctx); err != nil {
		s.logger.Error("run failed", "error", err, "next_run", time.Now().Add(s.interval).Format(time.RFC3339))
	}
}
