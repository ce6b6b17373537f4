// Package publisher replaces the contents of a Google spreadsheet with the job
// table and applies the static header and row formatting.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/api/sheets/v4"

	"github.com/anishpatel/jobsheet/internal/model"
)

// ErrSpreadsheetNotFound is returned when no spreadsheet with the configured
// name is visible to the service account.
var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

// Step names used in the publish report.
const (
	StepAuthenticate = "authenticate"
	StepOpen         = "open sheet"
	StepClear        = "clear sheet"
	StepWrite        = "write rows"
)

// Worksheet identifies the sheet being written.
type Worksheet struct {
	SpreadsheetID string
	SheetID       int64
	Title         string
}

// Backend is the subset of the spreadsheet service the publisher needs.
type Backend interface {
	OpenFirstSheet(ctx context.Context, name string) (Worksheet, error)
	Clear(ctx context.Context, ws Worksheet) error
	Update(ctx context.Context, ws Worksheet, table model.Table) error
	BatchUpdate(ctx context.Context, ws Worksheet, requests ...*sheets.Request) error
}

// Dialer authenticates and returns a ready Backend. It is called once per Publish.
type Dialer func(ctx context.Context) (Backend, error)

// Ensure Publisher implements model.TablePublisher.
var _ model.TablePublisher = (*Publisher)(nil)

// Publisher writes a model.Table to the first sheet of a named spreadsheet.
type Publisher struct {
	dial        Dialer
	name        string
	columnWidth int64
	logger      *slog.Logger
}

// NewPublisher creates a publisher for the spreadsheet titled name.
func NewPublisher(dial Dialer, name string, columnWidth int, logger *slog.Logger) *Publisher {
	return &Publisher{
		dial:        dial,
		name:        name,
		columnWidth: int64(columnWidth),
		logger:      logger,
	}
}

// Name returns the target spreadsheet title.
func (p *Publisher) Name() string { return p.name }

// Publish authenticates, opens the sheet, replaces its contents with table and
// applies formatting. Failures up to and including the write are fatal and stop
// the publish; formatting failures are warnings and every format step is tried.
func (p *Publisher) Publish(ctx context.Context, table model.Table) model.Report {
	var report model.Report

	backend, err := p.dial(ctx)
	if err != nil {
		return append(report, model.Fatal(StepAuthenticate, err))
	}
	report = append(report, model.OK(StepAuthenticate))

	ws, err := backend.OpenFirstSheet(ctx, p.name)
	if err != nil {
		if errors.Is(err, ErrSpreadsheetNotFound) {
			err = fmt.Errorf("google sheet %q not found, make sure it exists and is shared with the service account: %w", p.name, err)
		}
		return append(report, model.Fatal(StepOpen, err))
	}
	report = append(report, model.OK(StepOpen))

	if err := backend.Clear(ctx, ws); err != nil {
		return append(report, model.Fatal(StepClear, err))
	}
	report = append(report, model.OK(StepClear))

	if err := backend.Update(ctx, ws, table); err != nil {
		return append(report, model.Fatal(StepWrite, err))
	}
	report = append(report, model.OK(StepWrite))
	p.logger.Info("exported to google sheet", "sheet", p.name, "worksheet", ws.Title, "rows", table.DataRows())

	for _, step := range formatPlan(ws.SheetID, p.columnWidth) {
		if err := backend.BatchUpdate(ctx, ws, step.requests...); err != nil {
			if step.column != "" {
				p.logger.Warn("could not set column width", "column", step.column, "error", err)
			} else {
				p.logger.Warn("formatting step failed", "step", step.name, "error", err)
			}
			report = append(report, model.Warning(step.name, err))
			continue
		}
		report = append(report, model.OK(step.name))
	}
	p.logger.Debug("formatting applied", "sheet", p.name, "warnings", len(report.Warnings()))

	return report
}
