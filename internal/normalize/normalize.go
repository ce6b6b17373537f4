// Package normalize maps raw Adzuna records onto the fixed seven-column schema.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/anishpatel/jobsheet/internal/model"
)

// ErrMalformedTimestamp is returned when "created" is present but not in
// YYYY-MM-DDTHH:MM:SSZ form. The run treats it as fatal.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

const (
	createdLayout = "2006-01-02T15:04:05Z"
	postedLayout  = "Jan 02, 2006"
)

// field declares where a column's value lives in the raw record and what to
// write when it is missing.
type field struct {
	path     []string
	fallback string
	// emptyIsMissing also applies the fallback to an empty string value.
	emptyIsMissing bool
}

// value returns the field's text, or the fallback when any level of the path
// is absent or null.
func (f field) value(raw model.RawJob) string {
	v, ok := lookup(raw, f.path...)
	if !ok {
		return f.fallback
	}
	s := text(v)
	if s == "" && f.emptyIsMissing {
		return f.fallback
	}
	return s
}

var fields = struct {
	title, company, location, contractType, category, created, link field
}{
	title:        field{path: []string{"title"}, fallback: model.NotAvailable},
	company:      field{path: []string{"company", "display_name"}, fallback: model.NotAvailable},
	location:     field{path: []string{"location", "display_name"}, fallback: model.NotAvailable},
	contractType: field{path: []string{"contract_type"}, fallback: model.UnknownContractType, emptyIsMissing: true},
	category:     field{path: []string{"category", "label"}, fallback: model.NotAvailable},
	created:      field{path: []string{"created"}, fallback: "", emptyIsMissing: true},
	link:         field{path: []string{"redirect_url"}, fallback: model.NotAvailable},
}

// Listing converts one raw record into a JobListing.
func Listing(raw model.RawJob) (model.JobListing, error) {
	posted, err := formatPosted(fields.created.value(raw))
	if err != nil {
		return model.JobListing{}, err
	}

	return model.JobListing{
		Title:        fields.title.value(raw),
		Company:      fields.company.value(raw),
		Location:     fields.location.value(raw),
		ContractType: fields.contractType.value(raw),
		Category:     fields.category.value(raw),
		Posted:       posted,
		Link:         fields.link.value(raw),
	}, nil
}

// Listings converts records in order. The first malformed record aborts the
// conversion and the error names its index.
func Listings(raws []model.RawJob) ([]model.JobListing, error) {
	out := make([]model.JobListing, 0, len(raws))
	for i, raw := range raws {
		l, err := Listing(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// formatPosted renders an Adzuna "created" timestamp as "Jan 02, 2006".
func formatPosted(created string) (string, error) {
	if created == "" {
		return model.NotAvailable, nil
	}
	t, err := time.Parse(createdLayout, created)
	if err != nil {
		return "", fmt.Errorf("%w: created %q: %v", ErrMalformedTimestamp, created, err)
	}
	return t.Format(postedLayout), nil
}

// lookup walks nested objects along path. It reports false when a level is
// missing, null, or not an object.
func lookup(raw map[string]any, path ...string) (any, bool) {
	var cur any = raw
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[key]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
