package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailspend/internal/audit"
	"tailspend/internal/notification"
	"tailspend/internal/rbac"
	"tailspend/internal/rfq"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

var (
	alice  = domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}
	bob    = domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer}
	vendor = domain.Identity{ID: "s1", Name: "Widgets Inc.", Role: domain.RoleSupplier}
	other  = domain.Identity{ID: "s2", Name: "Innovate Solutions", Role: domain.RoleSupplier}
)

func newService() (*Service, *InMemoryStore, *notification.InMemoryStore) {
	engine := rbac.NewEngine(rbac.DefaultRules(), nil)
	recorder := audit.NewService(audit.NewInMemoryStore(), engine)
	notifStore := notification.NewInMemoryStore()
	notifier := notification.NewService(notifStore, engine)
	store := NewInMemoryStore()
	return NewService(store, engine, recorder, notifier, nil), store, notifStore
}

func ctxAs(ident domain.Identity) context.Context {
	ctx := requestcontext.WithIdentity(context.Background(), ident)
	return requestcontext.WithTime(ctx, time.Date(2023, 11, 5, 10, 0, 0, 0, time.UTC))
}

func TestSpawnFromRFQ(t *testing.T) {
	svc, store, _ := newService()

	id, err := svc.SpawnFromRFQ(ctxAs(bob), rfq.SpawnOrder{
		RFQID: "RFQ-002", Title: "Server Rack", RequestedBy: "bu1",
		SupplierID: "s1", Price: 12500,
		Items: []domain.ItemLine{{Name: "42U Server Rack", Qty: 1, Unit: "unit"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", id)

	o, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingApproval, o.Status)
	assert.Empty(t, o.PONumber)
	assert.Equal(t, "USD", o.Currency)
}

func TestIssuePOGeneratesNumber(t *testing.T) {
	svc, _, notifs := newService()

	id, err := svc.SpawnFromRFQ(ctxAs(bob), rfq.SpawnOrder{RFQID: "RFQ-002", Title: "Rack", RequestedBy: "bu1", SupplierID: "s1", Price: 12500})
	require.NoError(t, err)

	o, err := svc.Transition(ctxAs(bob), id, ActionIssuePO)
	require.NoError(t, err)
	assert.Equal(t, StatusPOIssued, o.Status)
	assert.Equal(t, "PO-2023-001", o.PONumber)
	require.Len(t, o.History, 2)
	assert.Equal(t, StatusPOIssued, o.History[1].Status)
	require.Len(t, o.AuditLogs, 1)
	assert.Equal(t, "Order Status Changes", o.AuditLogs[0].Action)

	requester, err := notifs.ListByUser(context.Background(), "bu1")
	require.NoError(t, err)
	assert.NotEmpty(t, requester)
	supplier, err := notifs.ListByUser(context.Background(), "s1")
	require.NoError(t, err)
	assert.NotEmpty(t, supplier)
}

func TestBusinessUserCannotIssuePO(t *testing.T) {
	svc, _, _ := newService()
	id, err := svc.SpawnFromRFQ(ctxAs(bob), rfq.SpawnOrder{RFQID: "RFQ-001", Title: "Rack", RequestedBy: "bu1", SupplierID: "s1"})
	require.NoError(t, err)

	_, err = svc.Transition(ctxAs(alice), id, ActionIssuePO)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestSupplierFlowToDelivered(t *testing.T) {
	svc, _, _ := newService()
	id, err := svc.SpawnFromRFQ(ctxAs(bob), rfq.SpawnOrder{RFQID: "RFQ-002", Title: "Rack", RequestedBy: "bu1", SupplierID: "s1", Price: 12500})
	require.NoError(t, err)
	_, err = svc.Transition(ctxAs(bob), id, ActionIssuePO)
	require.NoError(t, err)

	o, err := svc.Transition(ctxAs(vendor), id, ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, o.Status)

	o, err = svc.Transition(ctxAs(vendor), id, ActionMarkReady)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, o.Status)

	o, err = svc.Transition(ctxAs(vendor), id, ActionMarkDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestAcceptWrongStatusRejected(t *testing.T) {
	svc, _, _ := newService()
	id, err := svc.SpawnFromRFQ(ctxAs(bob), rfq.SpawnOrder{RFQID: "RFQ-001", Title: "Rack", RequestedBy: "bu1", SupplierID: "s1"})
	require.NoError(t, err)

	_, err = svc.Transition(ctxAs(vendor), id, ActionAccept)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func TestOnlyAssignedSupplierAccepts(t *testing.T) {
	svc, _, _ := newService()
	id, err := svc.SpawnFromRFQ(ctxAs(bob), rfq.SpawnOrder{RFQID: "RFQ-001", Title: "Rack", RequestedBy: "bu1", SupplierID: "s1"})
	require.NoError(t, err)
	_, err = svc.Transition(ctxAs(bob), id, ActionIssuePO)
	require.NoError(t, err)

	_, err = svc.Transition(ctxAs(other), id, ActionAccept)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestCustomerPickedBranch(t *testing.T) {
	svc, store, _ := newService()

	store.SeedOrder(Order{
		ID: "ORD-003", Title: "Ad-hoc Emergency Repair", RequestedBy: "po1",
		SupplierID: "s1", Status: StatusReady, PONumber: "PO-2023-002",
		DeliveryOption: DeliveryPicked,
		History:        []domain.HistoryEntry{{Status: StatusReady, By: "Widgets Inc."}},
	})

	o, err := svc.Transition(ctxAs(bob), "ORD-003", ActionMarkDelivered)
	require.NoError(t, err)
	assert.Equal(t, StatusCustomerPicked, o.Status)
}

func TestIroningOrdersCanBeMarkedReady(t *testing.T) {
	svc, store, _ := newService()

	store.SeedOrder(Order{
		ID: "ORD-001", Title: "Uniform Order", RequestedBy: "bu1",
		SupplierID: "s1", Status: StatusIroning, PONumber: "PO-2023-001",
		History: []domain.HistoryEntry{{Status: StatusIroning, By: "Widgets Inc."}},
	})

	o, err := svc.Transition(ctxAs(vendor), "ORD-001", ActionMarkReady)
	require.NoError(t, err)
	assert.Equal(t, StatusReady, o.Status)
}

func TestDirectCreateEntersAtPOIssued(t *testing.T) {
	svc, _, _ := newService()

	o, err := svc.Create(ctxAs(bob), CreateInput{
		Title: "Quarterly Stationery Stock", SupplierID: "s2",
		DeliveryDate: "2023-11-20", Price: 450, DeliveryOption: DeliverySupplier,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPOIssued, o.Status)
	assert.Equal(t, "PO-2023-001", o.PONumber)
	assert.Equal(t, "po1", o.RequestedBy)
	require.Len(t, o.History, 2)
	assert.Equal(t, StatusDraft, o.History[0].Status)
	assert.Equal(t, StatusPOIssued, o.History[1].Status)
}

func TestDirectCreateDeniedForOthers(t *testing.T) {
	svc, _, _ := newService()

	for _, ident := range []domain.Identity{alice, vendor} {
		_, err := svc.Create(ctxAs(ident), CreateInput{Title: "x", SupplierID: "s1"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	}
}

func TestEditBlockedInTerminalStatus(t *testing.T) {
	svc, store, _ := newService()

	store.SeedOrder(Order{
		ID: "ORD-004", Title: "Stationery", RequestedBy: "bu1",
		SupplierID: "s2", Status: StatusDelivered, PONumber: "PO-2023-003",
	})

	title := "Renamed"
	_, err := svc.Update(ctxAs(bob), "ORD-004", UpdateInput{Title: &title})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func TestListScopedBySupplierAssignment(t *testing.T) {
	svc, store, _ := newService()

	store.SeedOrder(Order{ID: "ORD-001", Title: "A", RequestedBy: "bu1", SupplierID: "s1", Status: StatusPOIssued})
	store.SeedOrder(Order{ID: "ORD-002", Title: "B", RequestedBy: "bu1", SupplierID: "s2", Status: StatusPOIssued})

	mine, err := svc.List(ctxAs(vendor), "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ORD-001", mine[0].ID)

	own, err := svc.List(ctxAs(alice), "")
	require.NoError(t, err)
	assert.Len(t, own, 2)

	all, err := svc.List(ctxAs(bob), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
