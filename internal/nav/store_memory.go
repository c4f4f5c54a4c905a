package nav

import (
	"context"
	"sync"
)

// Store persists per-session navigation state.
type Store interface {
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, sessionID string, st State) error
}

// InMemoryStore keeps navigation stacks in memory for tests/dev.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewInMemoryStore constructs an empty in-memory navigation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{states: make(map[string]State)}
}

func (s *InMemoryStore) Load(_ context.Context, sessionID string) (State, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[sessionID]
	if !ok {
		return State{}, false, nil
	}
	st.Stack = append([]Screen(nil), st.Stack...)
	return st, true, nil
}

func (s *InMemoryStore) Save(_ context.Context, sessionID string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.Stack = append([]Screen(nil), st.Stack...)
	s.states[sessionID] = st
	return nil
}
