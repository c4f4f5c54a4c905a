package audit

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryStore keeps audit entries in memory for tests/dev.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	seq     int
}

// NewInMemoryStore constructs an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e.ID = fmt.Sprintf("AL-%03d", s.seq)
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// SeedEntry inserts one pre-built entry, keeping the sequence ahead of it.
// Only the seed loader calls this.
func (s *InMemoryStore) SeedEntry(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	s.seq++
}
