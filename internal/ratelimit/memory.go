package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store. Keys whose hits have all expired are deleted.
type MemoryStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hits: make(map[string][]time.Time)}
}

// prune must be called with mu held.
func (s *MemoryStore) prune(key string, at time.Time, window time.Duration) []time.Time {
	cutoff := at.Add(-window)
	hits := s.hits[key]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	hits = hits[i:]
	if len(hits) == 0 {
		delete(s.hits, key)
		return nil
	}
	s.hits[key] = hits
	return hits
}

func (s *MemoryStore) Add(_ context.Context, key string, at time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hits := append(s.prune(key, at, window), at)
	s.hits[key] = hits
	return len(hits), nil
}

func (s *MemoryStore) Count(_ context.Context, key string, at time.Time, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prune(key, at, window)), nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hits, key)
	return nil
}

// Sweep drops every expired hit. Run it periodically on long-lived processes
// so keys that are never touched again do not accumulate.
func (s *MemoryStore) Sweep(at time.Time, window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.hits {
		s.prune(key, at, window)
	}
}

// Len is the number of keys currently tracked
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}
