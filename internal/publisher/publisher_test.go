package publisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"google.golang.org/api/sheets/v4"

	"github.com/anishpatel/jobsheet/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend records calls and fails the ones named in failOn.
type fakeBackend struct {
	ws       Worksheet
	openErr  error
	failOn   map[string]error // keyed by call name, or by "width" for column widths
	calls    []string
	written  model.Table
	requests []*sheets.Request
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		ws:     Worksheet{SpreadsheetID: "ss-1", SheetID: 42, Title: "Sheet1"},
		failOn: map[string]error{},
	}
}

func (f *fakeBackend) OpenFirstSheet(_ context.Context, name string) (Worksheet, error) {
	f.calls = append(f.calls, "open:"+name)
	if f.openErr != nil {
		return Worksheet{}, f.openErr
	}
	return f.ws, nil
}

func (f *fakeBackend) Clear(_ context.Context, _ Worksheet) error {
	f.calls = append(f.calls, "clear")
	return f.failOn["clear"]
}

func (f *fakeBackend) Update(_ context.Context, _ Worksheet, table model.Table) error {
	f.calls = append(f.calls, "update")
	if err := f.failOn["update"]; err != nil {
		return err
	}
	f.written = table
	return nil
}

func (f *fakeBackend) BatchUpdate(_ context.Context, _ Worksheet, requests ...*sheets.Request) error {
	f.calls = append(f.calls, "batch")
	f.requests = append(f.requests, requests...)
	for _, r := range requests {
		switch {
		case r.UpdateDimensionProperties != nil:
			if err := f.failOn["width"]; err != nil {
				return err
			}
		case r.UpdateSheetProperties != nil:
			if err := f.failOn["freeze"]; err != nil {
				return err
			}
		}
	}
	return nil
}

func dialerFor(b Backend) Dialer {
	return func(context.Context) (Backend, error) { return b, nil }
}

func sampleTable() model.Table {
	return model.NewTable([]model.JobListing{
		{Title: "Intern", Company: "Acme", Location: "NYC", ContractType: "permanent", Category: "IT Jobs", Posted: "Jan 05, 2024", Link: "https://a"},
	})
}

func TestPublish_Success(t *testing.T) {
	b := newFakeBackend()
	p := NewPublisher(dialerFor(b), "Adzuna Jobs", 200, discardLogger())

	table := sampleTable()
	report := p.Publish(context.Background(), table)

	if report.Severity() != model.SeverityOK {
		t.Fatalf("severity = %v, report = %+v", report.Severity(), report)
	}
	wantCalls := []string{"open:Adzuna Jobs", "clear", "update"}
	for i, want := range wantCalls {
		if b.calls[i] != want {
			t.Errorf("call[%d] = %q, want %q", i, b.calls[i], want)
		}
	}
	// 1 freeze + 1 header style + 7 widths + 1 shading
	if got := len(b.calls) - len(wantCalls); got != 10 {
		t.Errorf("batch calls = %d, want 10", got)
	}
	if len(b.written) != len(table) || b.written[1][0] != "Intern" {
		t.Errorf("written = %v", b.written)
	}
}

func TestPublish_ZeroRowsWritesHeaderOnly(t *testing.T) {
	b := newFakeBackend()
	p := NewPublisher(dialerFor(b), "Adzuna Jobs", 200, discardLogger())

	report := p.Publish(context.Background(), model.NewTable(nil))
	if report.Severity() != model.SeverityOK {
		t.Fatalf("severity = %v", report.Severity())
	}
	if len(b.written) != 1 || b.written[0][0] != "Job Title" {
		t.Errorf("written = %v, want header only", b.written)
	}
}

func TestPublish_SpreadsheetNotFoundIsFatal(t *testing.T) {
	b := newFakeBackend()
	b.openErr = ErrSpreadsheetNotFound
	p := NewPublisher(dialerFor(b), "Missing Sheet", 200, discardLogger())

	report := p.Publish(context.Background(), sampleTable())

	step, ok := report.Fatal()
	if !ok {
		t.Fatalf("expected fatal, report = %+v", report)
	}
	if step.Step != StepOpen {
		t.Errorf("fatal step = %q, want %q", step.Step, StepOpen)
	}
	if !errors.Is(step.Err, ErrSpreadsheetNotFound) {
		t.Errorf("err = %v, want ErrSpreadsheetNotFound", step.Err)
	}
	if !strings.Contains(step.Err.Error(), "Missing Sheet") {
		t.Errorf("error should name the sheet: %v", step.Err)
	}
	if len(b.calls) != 1 {
		t.Errorf("calls after missing sheet = %v, want only open", b.calls)
	}
}

func TestPublish_AuthFailureIsFatal(t *testing.T) {
	p := NewPublisher(func(context.Context) (Backend, error) {
		return nil, errors.New("bad key")
	}, "Adzuna Jobs", 200, discardLogger())

	report := p.Publish(context.Background(), sampleTable())
	step, ok := report.Fatal()
	if !ok || step.Step != StepAuthenticate {
		t.Fatalf("report = %+v, want fatal authenticate", report)
	}
}

func TestPublish_WriteFailureStopsBeforeFormatting(t *testing.T) {
	b := newFakeBackend()
	b.failOn["update"] = errors.New("quota exceeded")
	p := NewPublisher(dialerFor(b), "Adzuna Jobs", 200, discardLogger())

	report := p.Publish(context.Background(), sampleTable())
	step, ok := report.Fatal()
	if !ok || step.Step != StepWrite {
		t.Fatalf("report = %+v, want fatal write", report)
	}
	for _, c := range b.calls {
		if c == "batch" {
			t.Fatal("formatting should not run after a failed write")
		}
	}
}

func TestPublish_ColumnWidthFailuresAreWarnings(t *testing.T) {
	b := newFakeBackend()
	b.failOn["width"] = errors.New("nope")
	p := NewPublisher(dialerFor(b), "Adzuna Jobs", 200, discardLogger())

	report := p.Publish(context.Background(), sampleTable())

	if report.Severity() != model.SeverityWarning {
		t.Fatalf("severity = %v, want warning", report.Severity())
	}
	warnings := report.Warnings()
	if len(warnings) != 7 {
		t.Fatalf("warnings = %d, want 7 (one per column)", len(warnings))
	}
	if warnings[0].Step != "width column A" || warnings[6].Step != "width column G" {
		t.Errorf("warning steps = %q .. %q", warnings[0].Step, warnings[6].Step)
	}
	// The shading step after the widths must still run.
	last := report[len(report)-1]
	if last.Step != "shade rows A2:G100" || last.Severity != model.SeverityOK {
		t.Errorf("last step = %+v, want shading ok", last)
	}
}

func TestPublish_FormattingStepsAreIndependent(t *testing.T) {
	b := newFakeBackend()
	b.failOn["freeze"] = errors.New("protected")
	p := NewPublisher(dialerFor(b), "Adzuna Jobs", 200, discardLogger())

	report := p.Publish(context.Background(), sampleTable())
	if _, ok := report.Fatal(); ok {
		t.Fatal("formatting failure must not be fatal")
	}
	if len(report.Warnings()) != 1 {
		t.Errorf("warnings = %+v, want only the freeze step", report.Warnings())
	}
	if got := len(b.requests); got != 10 {
		t.Errorf("requests sent = %d, want 10", got)
	}
}
