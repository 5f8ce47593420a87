package persistence

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps reports for the lifetime of the process
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]Report)}
}

func (s *MemoryStore) Init(context.Context) error {
	return nil
}

func (s *MemoryStore) SaveReport(_ context.Context, report Report) error {
	if report.RunID == "" {
		return ErrRunIDRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	report.History = slices.Clone(report.History)
	s.reports[report.RunID] = report
	return nil
}

func (s *MemoryStore) GetReport(_ context.Context, runID string) (Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[runID]
	return report, ok, nil
}

func (s *MemoryStore) ListReports(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.reports))
	for id := range s.reports {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
