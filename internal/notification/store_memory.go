package notification

import (
	"context"
	"fmt"
	"sync"

	dErrors "tailspend/pkg/domain-errors"
)

// Store persists notifications. Append assigns the notification ID.
type Store interface {
	Append(ctx context.Context, n Notification) (Notification, error)
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

// InMemoryStore keeps notifications in memory for tests/dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	items []Notification
	seq   int
}

// NewInMemoryStore constructs an empty in-memory notification store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, n Notification) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	n.ID = fmt.Sprintf("N-%03d", s.seq)
	s.items = append(s.items, n)
	return n, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Notification
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkRead(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].UserID == userID {
			s.items[i].Read = true
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeNotFound, "notification %s not found", id)
}

func (s *InMemoryStore) MarkAllRead(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.items {
		if s.items[i].UserID == userID && !s.items[i].Read {
			s.items[i].Read = true
			count++
		}
	}
	return count, nil
}

// SeedNotification inserts one pre-built notification, keeping the sequence
// ahead of it. Only the seed loader calls this.
func (s *InMemoryStore) SeedNotification(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	s.seq++
}
