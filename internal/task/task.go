// Package task serves the per-user work queue. Tasks arrive via seeding or
// external assignment; the service only lists and completes them.
package task

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/requestcontext"
)

// Task statuses.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

// Task is one assigned work item pointing at an entity.
type Task struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	AssignedTo string    `json:"assignedTo"`
	DueDate    time.Time `json:"dueDate"`
	Status     string    `json:"status"`
	EntityID   string    `json:"entityId"`
	EntityType string    `json:"entityType"`
}

// Store keeps tasks in memory.
type Store struct {
	mu    sync.RWMutex
	items map[string]Task
	order []string
	seq   int
}

func NewStore() *Store {
	return &Store{items: make(map[string]Task)}
}

// Add inserts a task and assigns its ID.
func (s *Store) Add(t Task) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t.ID = fmt.Sprintf("T-%03d", s.seq)
	s.items[t.ID] = t
	s.order = append(s.order, t.ID)
	return t
}

// SeedTask inserts one pre-built task, keeping the sequence ahead of it.
// Only the seed loader calls this.
func (s *Store) SeedTask(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[t.ID] = t
	s.order = append(s.order, t.ID)
	s.seq++
}

func (s *Store) listAll() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *Store) complete(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.items[id]
	if !ok {
		return Task{}, false
	}
	t.Status = StatusCompleted
	s.items[id] = t
	return t, true
}

// Service applies role and assignment gates over the task store.
type Service struct {
	store *Store
	authz *rbac.Engine
}

func NewService(store *Store, authz *rbac.Engine) *Service {
	return &Service{store: store, authz: authz}
}

// ListMine returns the caller's tasks sorted by due date.
func (s *Service) ListMine(ctx context.Context) ([]Task, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_task") {
		return nil, dErrors.New(dErrors.CodeForbidden, "role cannot view tasks")
	}
	var out []Task
	for _, t := range s.store.listAll() {
		if t.AssignedTo == ident.ID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// Complete marks one of the caller's tasks as completed.
func (s *Service) Complete(ctx context.Context, id string) (Task, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_task") {
		return Task{}, dErrors.New(dErrors.CodeForbidden, "role cannot view tasks")
	}
	s.store.mu.RLock()
	t, ok := s.store.items[id]
	s.store.mu.RUnlock()
	if !ok || t.AssignedTo != ident.ID {
		return Task{}, dErrors.Newf(dErrors.CodeNotFound, "task %s not found", id)
	}
	done, _ := s.store.complete(id)
	return done, nil
}

// PendingFor returns the pending tasks assigned to userID. The dashboard
// derives deadlines from it without a role gate; callers scope to the
// current user.
func (s *Service) PendingFor(userID string) []Task {
	var out []Task
	for _, t := range s.store.listAll() {
		if t.AssignedTo == userID && t.Status == StatusPending {
			out = append(out, t)
		}
	}
	return out
}

// CountOverdue reports pending tasks assigned to userID whose due date is
// before now. The officer dashboard uses it.
func (s *Service) CountOverdue(userID string, now time.Time) int {
	n := 0
	for _, t := range s.store.listAll() {
		if t.AssignedTo == userID && t.Status == StatusPending && t.DueDate.Before(now) {
			n++
		}
	}
	return n
}
