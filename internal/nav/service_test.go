package nav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

func sessionCtx(id string, role domain.Role) context.Context {
	ctx := requestcontext.WithIdentity(context.Background(), domain.Identity{ID: "u1", Name: "Alice Smith", Role: role})
	return requestcontext.WithSessionID(ctx, id)
}

func newService() *Service {
	return NewService(NewInMemoryStore(), rbac.NewEngine(rbac.DefaultRules(), nil))
}

func TestFreshSessionStartsAtHome(t *testing.T) {
	svc := newService()

	cur, err := svc.Current(sessionCtx("sess-1", domain.RoleBusinessUser))
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "Dashboard"}, cur)

	cur, err = svc.Current(sessionCtx("sess-2", domain.RoleSupplier))
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "SupplierPortal"}, cur)
}

func TestBackPopsInOrder(t *testing.T) {
	svc := newService()
	ctx := sessionCtx("sess-1", domain.RoleBusinessUser)

	_, err := svc.Navigate(ctx, "RFQList", "", "")
	require.NoError(t, err)
	_, err = svc.Navigate(ctx, "RFQDetail", "RFQ-003", "RFQ")
	require.NoError(t, err)
	cur, err := svc.Navigate(ctx, "AuditLog", "RFQ-003", "RFQ")
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "AuditLog", ID: "RFQ-003", Type: "RFQ"}, cur)

	cur, err = svc.Navigate(ctx, Back, "", "")
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "RFQDetail", ID: "RFQ-003", Type: "RFQ"}, cur)

	cur, err = svc.Navigate(ctx, Back, "", "")
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "RFQList"}, cur)

	cur, err = svc.Navigate(ctx, Back, "", "")
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "Dashboard"}, cur)
}

func TestBackIdempotentAtHome(t *testing.T) {
	svc := newService()
	ctx := sessionCtx("sess-1", domain.RoleSupplier)

	for i := 0; i < 3; i++ {
		cur, err := svc.Navigate(ctx, Back, "", "")
		require.NoError(t, err)
		assert.Equal(t, Screen{Name: "SupplierPortal"}, cur)
	}
}

func TestNavigateForbiddenScreen(t *testing.T) {
	svc := newService()
	ctx := sessionCtx("sess-1", domain.RoleBusinessUser)

	_, err := svc.Navigate(ctx, "SupplierList", "", "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	// rejection leaves the stack untouched
	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "Dashboard"}, cur)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newService()
	one := sessionCtx("sess-1", domain.RoleBusinessUser)
	two := sessionCtx("sess-2", domain.RoleBusinessUser)

	_, err := svc.Navigate(one, "RFQList", "", "")
	require.NoError(t, err)

	cur, err := svc.Current(two)
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "Dashboard"}, cur)
}

func TestResetClearsStack(t *testing.T) {
	svc := newService()
	ctx := sessionCtx("sess-1", domain.RoleBusinessUser)

	_, err := svc.Navigate(ctx, "RFQList", "", "")
	require.NoError(t, err)

	home, err := svc.Reset(context.Background(), "sess-1", domain.RoleBusinessUser)
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "Dashboard"}, home)

	cur, err := svc.Navigate(ctx, Back, "", "")
	require.NoError(t, err)
	assert.Equal(t, Screen{Name: "Dashboard"}, cur, "back after reset stays home")
}
