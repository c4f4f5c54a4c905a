package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailspend/internal/order"
	"tailspend/internal/rbac"
	"tailspend/internal/rfq"
	"tailspend/internal/supplier"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

func newFixture() *Service {
	rfqs := rfq.NewInMemoryStore()
	rfqs.SeedRFQ(rfq.RFQ{ID: "RFQ-001", Title: "Office Laptops", Description: "20 laptops", RequestedBy: "bu1", Status: rfq.StatusCreated})
	rfqs.SeedRFQ(rfq.RFQ{ID: "RFQ-002", Title: "Cleaning Supplies", Description: "Monthly restock", RequestedBy: "bu2", Status: rfq.StatusApproved})

	orders := order.NewInMemoryStore()
	orders.SeedOrder(order.Order{ID: "ORD-001", Title: "Laptop Order", RequestedBy: "bu1", SupplierID: "s1", Status: order.StatusPOIssued, PONumber: "PO-2023-001"})
	orders.SeedOrder(order.Order{ID: "ORD-002", Title: "Supply Run", RequestedBy: "bu2", SupplierID: "s2", Status: order.StatusAccepted})

	suppliers := supplier.NewInMemoryStore()
	suppliers.SeedSupplier(supplier.Supplier{ID: "s1", Name: "Widgets Inc.", ContactPerson: "Jane Lee", Status: supplier.StatusActive})
	suppliers.SeedSupplier(supplier.Supplier{ID: "s2", Name: "Innovate Solutions", ContactPerson: "Raj Patel", Status: supplier.StatusActive})

	return NewService(rfqs, orders, suppliers, rbac.NewEngine(rbac.DefaultRules(), nil))
}

func asIdentity(ctx context.Context, id, name string, role domain.Role) context.Context {
	return requestcontext.WithIdentity(ctx, domain.Identity{ID: id, Name: name, Role: role})
}

func TestOfficerSearchesAllKinds(t *testing.T) {
	svc := newFixture()
	ctx := asIdentity(context.Background(), "po1", "Bob Johnson", domain.RoleProcurementOfficer)

	results, err := svc.Search(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "RFQ-001", results[0].EntityID)
	assert.Equal(t, "ORD-001", results[1].EntityID)

	results, err = svc.Search(ctx, "widgets")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Supplier: s1 - Widgets Inc.", results[0].Label)
	assert.Equal(t, "SupplierDetail", results[0].Screen)
}

func TestBusinessUserScopedToOwnRecords(t *testing.T) {
	svc := newFixture()
	ctx := asIdentity(context.Background(), "bu1", "Alice Smith", domain.RoleBusinessUser)

	results, err := svc.Search(ctx, "RFQ-00")
	require.NoError(t, err)
	require.Len(t, results, 1, "bu1 must not see bu2's RFQ")
	assert.Equal(t, "RFQ-001", results[0].EntityID)

	results, err = svc.Search(ctx, "supply")
	require.NoError(t, err)
	assert.Empty(t, results, "bu2's order and RFQ are out of scope")
}

func TestBusinessUserMatchesPONumber(t *testing.T) {
	svc := newFixture()
	ctx := asIdentity(context.Background(), "bu1", "Alice Smith", domain.RoleBusinessUser)

	results, err := svc.Search(ctx, "po-2023")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ORD-001", results[0].EntityID)
	assert.Equal(t, "Order", results[0].Type)
}

func TestSupplierSearchScope(t *testing.T) {
	svc := newFixture()
	ctx := asIdentity(context.Background(), "s1", "Widgets Inc.", domain.RoleSupplier)

	// Suppliers only see their own profile in the directory.
	results, err := svc.Search(ctx, "widgets")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "s1", results[0].EntityID)

	results, err = svc.Search(ctx, "innovate")
	require.NoError(t, err)
	assert.Empty(t, results)

	// They can still find RFQs raised by others and their own orders.
	results, err = svc.Search(ctx, "laptop")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "RFQ-001", results[0].EntityID)
	assert.Equal(t, "ORD-001", results[1].EntityID)
}

func TestEmptyQueryReturnsNothing(t *testing.T) {
	svc := newFixture()
	ctx := asIdentity(context.Background(), "po1", "Bob Johnson", domain.RoleProcurementOfficer)

	results, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestResultCap(t *testing.T) {
	rfqs := rfq.NewInMemoryStore()
	for i := 0; i < 8; i++ {
		rfqs.SeedRFQ(rfq.RFQ{ID: "RFQ-00" + string(rune('1'+i)), Title: "Bulk paper", RequestedBy: "bu1", Status: rfq.StatusCreated})
	}
	svc := NewService(rfqs, order.NewInMemoryStore(), supplier.NewInMemoryStore(), rbac.NewEngine(rbac.DefaultRules(), nil))
	ctx := asIdentity(context.Background(), "po1", "Bob Johnson", domain.RoleProcurementOfficer)

	results, err := svc.Search(ctx, "paper")
	require.NoError(t, err)
	assert.Len(t, results, 5)
}
