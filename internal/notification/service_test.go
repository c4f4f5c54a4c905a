package notification

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

func newService() *Service {
	return NewService(NewInMemoryStore(), rbac.NewEngine(rbac.DefaultRules(), nil))
}

func ctxAs(ident domain.Identity, at time.Time) context.Context {
	ctx := requestcontext.WithIdentity(context.Background(), ident)
	return requestcontext.WithTime(ctx, at)
}

func TestFeedNewestFirstAndScopedToUser(t *testing.T) {
	svc := newService()
	base := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	alice := domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}

	_, err := svc.Emit(ctxAs(alice, base), "bu1", "first", LevelInfo)
	require.NoError(t, err)
	_, err = svc.Emit(ctxAs(alice, base.Add(time.Hour)), "bu1", "second", LevelSuccess)
	require.NoError(t, err)
	_, err = svc.Emit(ctxAs(alice, base), "po1", "not yours", LevelWarning)
	require.NoError(t, err)

	got, err := svc.Feed(ctxAs(alice, base))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)
	assert.Equal(t, "first", got[1].Message)
}

func TestMarkRead(t *testing.T) {
	svc := newService()
	now := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	alice := domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}
	ctx := ctxAs(alice, now)

	n, err := svc.Emit(ctx, "bu1", "hello", LevelInfo)
	require.NoError(t, err)
	require.False(t, n.Read)

	require.NoError(t, svc.MarkRead(ctx, n.ID))

	got, err := svc.Feed(ctx)
	require.NoError(t, err)
	assert.True(t, got[0].Read)
}

func TestMarkReadForeignNotificationNotFound(t *testing.T) {
	svc := newService()
	now := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	alice := domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}
	bob := domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer}

	n, err := svc.Emit(ctxAs(alice, now), "bu1", "hello", LevelInfo)
	require.NoError(t, err)

	err = svc.MarkRead(ctxAs(bob, now), n.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestMarkAllRead(t *testing.T) {
	svc := newService()
	now := time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC)
	alice := domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}
	ctx := ctxAs(alice, now)

	for i := 0; i < 3; i++ {
		_, err := svc.Emit(ctx, "bu1", "msg", LevelInfo)
		require.NoError(t, err)
	}

	n, err := svc.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
