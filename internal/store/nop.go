package store

import "github.com/anishpatel/jobsheet/internal/model"

// NopStore discards run records. Used when history is disabled and by the
// read-only commands.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) RecordRun(model.Run) error                 { return nil }
func (s *NopStore) RecentRuns(limit int) ([]model.Run, error) { return nil, nil }
