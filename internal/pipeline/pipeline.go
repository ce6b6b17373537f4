// Package pipeline runs one fetch → normalize → write → publish cycle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"

	"github.com/anishpatel/jobsheet/internal/model"
	"github.com/anishpatel/jobsheet/internal/normalize"
)

// ErrLocked is returned when another process is in the middle of a run.
var ErrLocked = errors.New("another run is in progress")

// Step names used in the run report.
const (
	StepLock      = "lock"
	StepFetch     = "fetch"
	StepNormalize = "normalize"
	StepWrite     = "write csv"
)

// Result summarizes one run.
type Result struct {
	Fetched int
	Written int
	Report  model.Report
}

// Pipeline owns the full run: fetch → normalize → write local table → publish.
type Pipeline struct {
	fetcher   model.JobFetcher
	writer    model.TableWriter
	publisher model.TablePublisher // nil disables the remote publish
	store     model.RunStore
	lockPath  string // empty disables locking
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithPublisher adds a remote publish step after the local write.
func WithPublisher(p model.TablePublisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

// WithLockFile holds an exclusive file lock at path for the duration of a run.
func WithLockFile(path string) Option {
	return func(pl *Pipeline) { pl.lockPath = path }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(pl *Pipeline) { pl.now = now }
}

// New creates a pipeline wired with all its dependencies.
func New(fetcher model.JobFetcher, writer model.TableWriter, store model.RunStore, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: fetcher,
		writer:  writer,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one cycle. It returns a non-nil error exactly when the report
// contains a fatal step; warnings are only reported.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	started := p.now()
	res := p.run(ctx)

	run := model.Run{
		StartedAt:  started,
		FinishedAt: p.now(),
		Fetched:    res.Fetched,
		Written:    res.Written,
		Severity:   res.Report.Severity(),
		Warnings:   len(res.Report.Warnings()),
	}
	var err error
	if step, ok := res.Report.Fatal(); ok {
		err = fmt.Errorf("%s: %w", step.Step, step.Err)
		run.Error = err.Error()
	}
	if recErr := p.store.RecordRun(run); recErr != nil {
		p.logger.Warn("failed to record run history", "error", recErr)
	}

	p.logger.Info("run finished",
		"fetched", res.Fetched,
		"written", res.Written,
		"severity", run.Severity.String(),
		"warnings", run.Warnings,
		"duration", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
	)
	return res, err
}

func (p *Pipeline) run(ctx context.Context) Result {
	var res Result

	if p.lockPath != "" {
		fl := flock.New(p.lockPath)
		locked, err := fl.TryLock()
		if err != nil {
			res.Report = append(res.Report, model.Fatal(StepLock, fmt.Errorf("acquiring %s: %w", p.lockPath, err)))
			return res
		}
		if !locked {
			res.Report = append(res.Report, model.Fatal(StepLock, fmt.Errorf("%s: %w", p.lockPath, ErrLocked)))
			return res
		}
		defer fl.Unlock()
		res.Report = append(res.Report, model.OK(StepLock))
	}

	raws, err := p.fetcher.FetchJobs(ctx)
	if err != nil {
		res.Report = append(res.Report, model.Fatal(StepFetch, err))
		return res
	}
	res.Fetched = len(raws)
	res.Report = append(res.Report, model.OK(StepFetch))
	p.logger.Info("fetched jobs", "count", res.Fetched)

	listings, err := normalize.Listings(raws)
	if err != nil {
		res.Report = append(res.Report, model.Fatal(StepNormalize, err))
		return res
	}
	res.Report = append(res.Report, model.OK(StepNormalize))

	table := model.NewTable(listings)

	if err := p.writer.Write(ctx, table); err != nil {
		res.Report = append(res.Report, model.Fatal(StepWrite, err))
		return res
	}
	res.Written = table.DataRows()
	res.Report = append(res.Report, model.OK(StepWrite))

	if p.publisher != nil {
		res.Report = append(res.Report, p.publisher.Publish(ctx, table)...)
	}

	return res
}
