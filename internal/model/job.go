package model

import (
	"context"
	"time"
)

// Placeholders written when the source record does not carry a value.
const (
	NotAvailable        = "N/A"
	UnknownContractType = "Unknown"
)

// Header names the seven output columns in their fixed order.
var Header = []string{"Job Title", "Company", "Location", "Type", "Category", "Posted", "Link"}

// RawJob is one decoded object from the Adzuna "results" array.
// It is kept generic so absent, null and empty values stay distinguishable.
type RawJob map[string]any

// JobListing is a normalized job record with every field populated,
// either with a real value or with a placeholder.
type JobListing struct {
	Title        string
	Company      string
	Location     string
	ContractType string
	Category     string
	Posted       string // "Jan 02, 2006" or N/A
	Link         string
}

// Row returns the listing's fields in Header order.
func (j JobListing) Row() []string {
	return []string{j.Title, j.Company, j.Location, j.ContractType, j.Category, j.Posted, j.Link}
}

// Table is the header row followed by one row per listing.
// Every sink writes the same Table so their outputs match row for row.
type Table [][]string

// NewTable builds a Table from listings, preserving their order.
func NewTable(listings []JobListing) Table {
	t := make(Table, 0, len(listings)+1)
	t = append(t, append([]string(nil), Header...))
	for _, l := range listings {
		t = append(t, l.Row())
	}
	return t
}

// DataRows returns the number of rows below the header.
func (t Table) DataRows() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// JobFetcher retrieves raw job records from a source (e.g. Adzuna).
type JobFetcher interface {
	FetchJobs(ctx context.Context) ([]RawJob, error)
}

// TableWriter persists a full Table, replacing any previous output.
type TableWriter interface {
	Write(ctx context.Context, table Table) error
}

// TablePublisher pushes a Table to a remote destination and reports each step.
type TablePublisher interface {
	Publish(ctx context.Context, table Table) Report
}

// Run is one pipeline execution as recorded in the history store.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Fetched    int
	Written    int
	Severity   Severity
	Warnings   int
	Error      string
}

// RunStore records pipeline runs.
type RunStore interface {
	RecordRun(run Run) error
	RecentRuns(limit int) ([]Run, error)
}
