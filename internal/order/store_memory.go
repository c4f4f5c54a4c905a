package order

import (
	"context"
	"fmt"
	"sync"
	"time"

	dErrors "tailspend/pkg/domain-errors"
)

// Store persists orders. Create assigns the ID; NextPONumber issues the next
// PO number for the given year.
type Store interface {
	Create(ctx context.Context, o Order) (Order, error)
	Get(ctx context.Context, id string) (Order, error)
	Update(ctx context.Context, o Order) error
	List(ctx context.Context) ([]Order, error)
	NextPONumber(ctx context.Context, at time.Time) (string, error)
}

// InMemoryStore keeps orders in memory for tests/dev. Reads return copies.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]Order
	order []string
	seq   int
	poSeq int
}

// NewInMemoryStore constructs an empty in-memory order store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]Order)}
}

func (s *InMemoryStore) Create(_ context.Context, o Order) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	o.ID = fmt.Sprintf("ORD-%03d", s.seq)
	s.items[o.ID] = o.clone()
	s.order = append(s.order, o.ID)
	return o, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.items[id]
	if !ok {
		return Order{}, dErrors.Newf(dErrors.CodeNotFound, "order %s not found", id)
	}
	return o.clone(), nil
}

func (s *InMemoryStore) Update(_ context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[o.ID]; !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "order %s not found", o.ID)
	}
	s.items[o.ID] = o.clone()
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.order))
	for _, id := range s.order {
		o := s.items[id]
		out = append(out, o.clone())
	}
	return out, nil
}

func (s *InMemoryStore) NextPONumber(_ context.Context, at time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poSeq++
	return fmt.Sprintf("PO-%d-%03d", at.Year(), s.poSeq), nil
}

// SeedOrder inserts one pre-built order, keeping the sequences ahead of it.
// Only the seed loader calls this.
func (s *InMemoryStore) SeedOrder(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[o.ID] = o.clone()
	s.order = append(s.order, o.ID)
	s.seq++
	if o.PONumber != "" {
		s.poSeq++
	}
}
