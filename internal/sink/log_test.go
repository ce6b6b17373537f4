package sink

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/anishpatel/jobsheet/internal/model"
)

func TestLogSink_LogsEachRow(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := s.Write(context.Background(), model.NewTable(sampleListings())); err != nil {
		t.Fatalf("Write = %v, want nil", err)
	}

	out := buf.String()
	if got := strings.Count(out, "msg=job "); got != 2 {
		t.Errorf("logged %d job lines, want 2:\n%s", got, out)
	}
	if !strings.Contains(out, `"Job Title"="Intern, Backend"`) {
		t.Errorf("missing title attribute:\n%s", out)
	}
	if !strings.Contains(out, "count=2") {
		t.Errorf("missing summary line:\n%s", out)
	}
}

func TestLogSink_EmptyTable(t *testing.T) {
	s := NewLogSink(discardLogger())
	if err := s.Write(context.Background(), nil); err != nil {
		t.Errorf("Write(nil) = %v, want nil", err)
	}
	if err := s.Write(context.Background(), model.NewTable(nil)); err != nil {
		t.Errorf("Write(header only) = %v, want nil", err)
	}
}
