package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/tavolahq/tavola/internal/domain"
)

// MemoryCallStore is an in-memory CallStore. It backs the "memory"
// history backend and the tests; nothing survives a restart.
type MemoryCallStore struct {
	mu    sync.RWMutex
	calls map[string]domain.CallRecord
}

// NewMemoryCallStore creates an empty in-memory call store.
func NewMemoryCallStore() *MemoryCallStore {
	return &MemoryCallStore{calls: make(map[string]domain.CallRecord)}
}

// Save stores the record, replacing any previous one with the same ID.
func (s *MemoryCallStore) Save(rec domain.CallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[rec.ID] = rec
	return nil
}

// Get returns a stored call or ErrNotFound.
func (s *MemoryCallStore) Get(id string) (*domain.CallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.calls[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// List returns the most recent calls, newest first, without turns.
func (s *MemoryCallStore) List(limit int) ([]domain.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CallRecord, 0, len(s.calls))
	for _, rec := range s.calls {
		rec.Turns = nil
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Search does a case-insensitive substring match over turn text.
func (s *MemoryCallStore) Search(query string, limit int) ([]TurnMatch, error) {
	if limit <= 0 {
		limit = 20
	}
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []TurnMatch
	for _, rec := range s.calls {
		for _, turn := range rec.Turns {
			if !strings.Contains(strings.ToLower(turn.Text), needle) {
				continue
			}
			out = append(out, TurnMatch{
				CallID: rec.ID,
				Role:   string(turn.Role),
				Text:   turn.Text,
				At:     turn.At,
			})
			if len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryCallStore) Close() error { return nil }
