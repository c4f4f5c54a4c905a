package rfq

import (
	"context"
	"fmt"
	"sync"

	dErrors "tailspend/pkg/domain-errors"
)

// Store persists RFQs. Create assigns the ID.
type Store interface {
	Create(ctx context.Context, r RFQ) (RFQ, error)
	Get(ctx context.Context, id string) (RFQ, error)
	Update(ctx context.Context, r RFQ) error
	List(ctx context.Context) ([]RFQ, error)
}

// InMemoryStore keeps RFQs in memory for tests/dev. Reads return copies so
// callers cannot mutate stored state behind the lock.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]RFQ
	order []string
	seq   int
}

// NewInMemoryStore constructs an empty in-memory RFQ store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]RFQ)}
}

func (s *InMemoryStore) Create(_ context.Context, r RFQ) (RFQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	r.ID = fmt.Sprintf("RFQ-%03d", s.seq)
	s.items[r.ID] = r.clone()
	s.order = append(s.order, r.ID)
	return r, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (RFQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[id]
	if !ok {
		return RFQ{}, dErrors.Newf(dErrors.CodeNotFound, "rfq %s not found", id)
	}
	return r.clone(), nil
}

func (s *InMemoryStore) Update(_ context.Context, r RFQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[r.ID]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "rfq %s not found", r.ID)
	}
	s.items[r.ID] = r.clone()
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]RFQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RFQ, 0, len(s.order))
	for _, id := range s.order {
		r := s.items[id]
		out = append(out, r.clone())
	}
	return out, nil
}

// SeedRFQ inserts one pre-built RFQ, keeping the sequence ahead of it. Only
// the seed loader calls this.
func (s *InMemoryStore) SeedRFQ(r RFQ) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.ID] = r.clone()
	s.order = append(s.order, r.ID)
	s.seq++
}
