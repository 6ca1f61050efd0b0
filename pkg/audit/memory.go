package audit

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// This implementation is intended for testing only and should not be used
// in production.
type MemoryStorage struct {
	records map[string]*RunRecord
	failure error
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory audit backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*RunRecord),
	}
}

// FailRecording makes subsequent Record calls return the given error
// (for testing).
func (s *MemoryStorage) FailRecording(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// Record persists a run record to memory.
func (s *MemoryStorage) Record(ctx context.Context, record *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failure != nil {
		return NewStorageError("memory", "record", s.failure)
	}

	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Query retrieves run records matching the query filters, newest run first.
func (s *MemoryStorage) Query(ctx context.Context, query *Query) ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*RunRecord{}
	for _, record := range s.records {
		if s.matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	start := query.Offset
	if start > len(results) {
		return []*RunRecord{}, nil
	}

	end := len(results)
	if query.Limit > 0 && start+query.Limit < end {
		end = start + query.Limit
	}

	return results[start:end], nil
}

// Count returns the number of run records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if s.matchesQuery(record, query) {
			count++
		}
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*RunRecord)
	return nil
}

// matchesQuery checks if a record matches the query filters.
func (s *MemoryStorage) matchesQuery(record *RunRecord, query *Query) bool {
	if query.Environment != "" && record.Environment != query.Environment {
		return false
	}
	if query.Status != "" && record.Status != query.Status {
		return false
	}
	if query.Since != nil && record.StartedAt.Before(*query.Since) {
		return false
	}

	return true
}

// GetByID retrieves a single run record by ID (for testing).
func (s *MemoryStorage) GetByID(id string) *RunRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil
	}

	recordCopy := *record
	return &recordCopy
}

// Size returns the number of records in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
