package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anishpatel/jobsheet/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleListings() []model.JobListing {
	return []model.JobListing{
		{Title: "Intern, Backend", Company: "Acme", Location: "New York, NY", ContractType: "permanent", Category: "IT Jobs", Posted: "Jan 05, 2024", Link: "https://a.example/1"},
		{Title: `Intern "Platform"`, Company: "N/A", Location: "N/A", ContractType: "Unknown", Category: "N/A", Posted: "N/A", Link: "N/A"},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestCSVSink_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adzuna_jobs.csv")
	s := NewCSVSink(path, discardLogger())

	table := model.NewTable(sampleListings())
	if err := s.Write(context.Background(), table); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if strings.Join(rows[0], ",") != "Job Title,Company,Location,Type,Category,Posted,Link" {
		t.Errorf("header = %v", rows[0])
	}
	for i := range table {
		for j := range table[i] {
			if rows[i][j] != table[i][j] {
				t.Errorf("cell[%d][%d] = %q, want %q", i, j, rows[i][j], table[i][j])
			}
		}
	}
}

func TestCSVSink_ZeroResultsWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := NewCSVSink(path, discardLogger())

	if err := s.Write(context.Background(), model.NewTable(nil)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Job Title,Company,Location,Type,Category,Posted,Link\n" {
		t.Errorf("file = %q, want header only", data)
	}
}

func TestCSVSink_OverwritesAndIsByteIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale,content\nfrom,before\nand,more\nrows,here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewCSVSink(path, discardLogger())
	table := model.NewTable(sampleListings())

	if err := s.Write(context.Background(), table); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	first, _ := os.ReadFile(path)
	if bytes.Contains(first, []byte("stale")) {
		t.Fatal("previous content was not replaced")
	}

	if err := s.Write(context.Background(), table); err != nil {
		t.Fatalf("second Write: %v", err)
	}
	second, _ := os.ReadFile(path)
	if !bytes.Equal(first, second) {
		t.Errorf("second run differs:\n%s\n---\n%s", first, second)
	}
}

func TestCSVSink_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVSink(filepath.Join(dir, "out.csv"), discardLogger())
	if err := s.Write(context.Background(), model.NewTable(sampleListings())); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.csv" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir entries = %v, want only out.csv", names)
	}
}

func TestCSVSink_MissingDirectory(t *testing.T) {
	s := NewCSVSink(filepath.Join(t.TempDir(), "nope", "out.csv"), discardLogger())
	if err := s.Write(context.Background(), model.NewTable(nil)); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCSVSink_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := NewCSVSink(path, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Write(ctx, model.NewTable(nil)); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not exist, stat err = %v", err)
	}
}
