package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

func ctxAs(ident domain.Identity) context.Context {
	return requestcontext.WithIdentity(context.Background(), ident)
}

func TestListMineSortedByDueDate(t *testing.T) {
	store := NewStore()
	svc := NewService(store, rbac.NewEngine(rbac.DefaultRules(), nil))

	due := time.Date(2023, 11, 3, 0, 0, 0, 0, time.UTC)
	store.Add(Task{Type: "RFQ Approval", Title: "later", AssignedTo: "po1", DueDate: due.Add(48 * time.Hour), Status: StatusPending})
	store.Add(Task{Type: "PO Issue", Title: "sooner", AssignedTo: "po1", DueDate: due, Status: StatusPending})
	store.Add(Task{Type: "RFQ Revision", Title: "not mine", AssignedTo: "bu1", DueDate: due, Status: StatusPending})

	officer := domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer}
	got, err := svc.ListMine(ctxAs(officer))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "sooner", got[0].Title)
	assert.Equal(t, "later", got[1].Title)
}

func TestSupplierDeniedTaskList(t *testing.T) {
	svc := NewService(NewStore(), rbac.NewEngine(rbac.DefaultRules(), nil))
	vendor := domain.Identity{ID: "s1", Name: "Widgets Inc.", Role: domain.RoleSupplier}

	_, err := svc.ListMine(ctxAs(vendor))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestComplete(t *testing.T) {
	store := NewStore()
	svc := NewService(store, rbac.NewEngine(rbac.DefaultRules(), nil))
	officer := domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer}

	added := store.Add(Task{Type: "RFQ Approval", Title: "approve", AssignedTo: "po1", Status: StatusPending})

	done, err := svc.Complete(ctxAs(officer), added.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	busUser := domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}
	_, err = svc.Complete(ctxAs(busUser), added.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestCountOverdue(t *testing.T) {
	store := NewStore()
	svc := NewService(store, rbac.NewEngine(rbac.DefaultRules(), nil))

	now := time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC)
	store.Add(Task{AssignedTo: "po1", DueDate: now.AddDate(0, 0, -2), Status: StatusPending})
	store.Add(Task{AssignedTo: "po1", DueDate: now.AddDate(0, 0, -1), Status: StatusCompleted})
	store.Add(Task{AssignedTo: "po1", DueDate: now.AddDate(0, 0, 3), Status: StatusPending})
	store.Add(Task{AssignedTo: "bu1", DueDate: now.AddDate(0, 0, -1), Status: StatusPending})

	assert.Equal(t, 1, svc.CountOverdue("po1", now))
}
