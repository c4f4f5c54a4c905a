package audit

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

func ctxFor(ident domain.Identity) context.Context {
	return requestcontext.WithIdentity(context.Background(), ident)
}

func TestFeedScoping(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store, rbac.NewEngine(rbac.DefaultRules(), nil))

	base := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	seed := []Entry{
		{EntityType: "RFQ", EntityID: "RFQ-001", Action: "Status Changed", By: "Alice Smith", Role: domain.RoleBusinessUser, Date: base},
		{EntityType: "RFQ", EntityID: "RFQ-002", Action: "Approved", By: "Bob Johnson", Role: domain.RoleProcurementOfficer, Date: base.Add(time.Hour)},
		{EntityType: "Order", EntityID: "ORD-001", Action: "Order Status Changes", By: "Widgets Inc.", Role: domain.RoleSupplier, Date: base.Add(2 * time.Hour)},
	}
	for _, e := range seed {
		_, err := store.Append(context.Background(), e)
		require.NoError(t, err)
	}

	t.Run("officer sees everything newest first", func(t *testing.T) {
		ctx := ctxFor(domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer})
		got, err := svc.Feed(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "ORD-001", got[0].EntityID)
		assert.Equal(t, "RFQ-001", got[2].EntityID)
	})

	t.Run("business user sees own entries only", func(t *testing.T) {
		ctx := ctxFor(domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser})
		got, err := svc.Feed(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Alice Smith", got[0].By)
	})

	t.Run("supplier denied", func(t *testing.T) {
		ctx := ctxFor(domain.Identity{ID: "s1", Name: "Widgets Inc.", Role: domain.RoleSupplier})
		_, err := svc.Feed(ctx, Filter{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("entity filter narrows the feed", func(t *testing.T) {
		ctx := ctxFor(domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer})
		got, err := svc.Feed(ctx, Filter{EntityType: "RFQ"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		got, err = svc.Feed(ctx, Filter{EntityID: "ORD-001", EntityType: "Order"})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewService(store, rbac.NewEngine(rbac.DefaultRules(), nil))

	now := time.Date(2023, 11, 5, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	e, err := svc.Record(ctx, Entry{EntityType: "RFQ", EntityID: "RFQ-001", Action: "Created", By: "Alice Smith"})
	require.NoError(t, err)
	assert.Equal(t, "AL-001", e.ID)
	assert.Equal(t, now, e.Date)

	e2, err := svc.Record(ctx, Entry{EntityType: "RFQ", EntityID: "RFQ-002", Action: "Created", By: "Alice Smith"})
	require.NoError(t, err)
	assert.Equal(t, "AL-002", e2.ID)
}
