package archive

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage is an in-memory Storage backend for tests and replay runs
// that do not need persistence.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]*Record)}
}

// Store persists one record.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records[record.ID] = &cp
	return nil
}

// Query returns matching records, newest first. A nil query matches
// everything.
func (s *MemoryStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	if query == nil {
		query = &Query{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Record
	for _, record := range s.records {
		if matchesQuery(record, query) {
			cp := *record
			results = append(results, &cp)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].RecordedAt.After(results[j].RecordedAt)
	})

	start := query.Offset
	if start > len(results) {
		return []*Record{}, nil
	}
	results = results[start:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of matching records.
func (s *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes matching records.
func (s *MemoryStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if matchesQuery(record, query) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}

func matchesQuery(record *Record, query *Query) bool {
	if query == nil {
		return true
	}
	if len(query.IDs) > 0 {
		found := false
		for _, id := range query.IDs {
			if record.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if query.SessionID != "" && record.SessionID != query.SessionID {
		return false
	}
	if query.IncidentType != "" && record.IncidentType != query.IncidentType {
		return false
	}
	if query.Severity != "" && record.Severity != query.Severity {
		return false
	}
	if query.StartTime != nil && record.RecordedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && record.RecordedAt.After(*query.EndTime) {
		return false
	}
	return true
}
