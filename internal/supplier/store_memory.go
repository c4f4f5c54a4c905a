package supplier

import (
	"context"
	"fmt"
	"sync"

	dErrors "tailspend/pkg/domain-errors"
)

// Store persists supplier records. Create assigns the ID.
type Store interface {
	Create(ctx context.Context, s Supplier) (Supplier, error)
	Get(ctx context.Context, id string) (Supplier, error)
	Update(ctx context.Context, s Supplier) error
	List(ctx context.Context) ([]Supplier, error)
}

// InMemoryStore keeps supplier records in memory for tests/dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]Supplier
	order []string
	seq   int
}

// NewInMemoryStore constructs an empty in-memory supplier store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]Supplier)}
}

func (s *InMemoryStore) Create(_ context.Context, sup Supplier) (Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	sup.ID = fmt.Sprintf("s%d", s.seq)
	s.items[sup.ID] = sup
	s.order = append(s.order, sup.ID)
	return sup, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sup, ok := s.items[id]
	if !ok {
		return Supplier{}, dErrors.Newf(dErrors.CodeNotFound, "supplier %s not found", id)
	}
	return sup, nil
}

func (s *InMemoryStore) Update(_ context.Context, sup Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[sup.ID]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "supplier %s not found", sup.ID)
	}
	s.items[sup.ID] = sup
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Supplier, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

// SeedSupplier inserts one pre-built record, keeping the sequence ahead of
// it. Only the seed loader calls this.
func (s *InMemoryStore) SeedSupplier(sup Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sup.ID] = sup
	s.order = append(s.order, sup.ID)
	s.seq++
}
