package supplier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailspend/internal/audit"
	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

var (
	officer  = domain.Identity{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer}
	vendor   = domain.Identity{ID: "s1", Name: "Widgets Inc.", Role: domain.RoleSupplier}
	busUser  = domain.Identity{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser}
	testTime = time.Date(2023, 11, 5, 10, 0, 0, 0, time.UTC)
)

func newService() (*Service, *audit.InMemoryStore) {
	auditStore := audit.NewInMemoryStore()
	engine := rbac.NewEngine(rbac.DefaultRules(), nil)
	recorder := audit.NewService(auditStore, engine)
	return NewService(NewInMemoryStore(), engine, recorder), auditStore
}

func ctxAs(ident domain.Identity) context.Context {
	ctx := requestcontext.WithIdentity(context.Background(), ident)
	return requestcontext.WithTime(ctx, testTime)
}

func TestOnboard(t *testing.T) {
	svc, auditStore := newService()

	sup, err := svc.Onboard(ctxAs(officer), OnboardInput{
		Name:          "Acme Corp",
		ContactPerson: "Jane Roe",
		Email:         "jane@acme.test",
		Address:       "1 Acme Way",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", sup.ID)
	assert.Equal(t, StatusOnboarding, sup.Status)
	assert.Equal(t, "Pending Documents", sup.Compliance)
	assert.Equal(t, testTime, sup.RegistrationDate)

	entries, err := auditStore.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Onboarded", entries[0].Action)
	assert.Equal(t, "Supplier", entries[0].EntityType)
}

func TestOnboardDeniedForNonOfficers(t *testing.T) {
	svc, _ := newService()

	for _, ident := range []domain.Identity{busUser, vendor} {
		_, err := svc.Onboard(ctxAs(ident), OnboardInput{Name: "Acme"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	}
}

func TestOnboardRequiresName(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Onboard(ctxAs(officer), OnboardInput{Name: "  "})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestSupplierSelfEditLocksOfficerFields(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Onboard(ctxAs(officer), OnboardInput{Name: "Widgets Inc."})
	require.NoError(t, err)
	require.Equal(t, "s1", created.ID)

	name := "Renamed Inc."
	status := StatusActive
	phone := "555-000-1111"
	got, err := svc.Update(ctxAs(vendor), "s1", UpdateInput{Name: &name, Status: &status, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Widgets Inc.", got.Name)
	assert.Equal(t, StatusOnboarding, got.Status)
	assert.Equal(t, "555-000-1111", got.Phone)
}

func TestSupplierCannotEditForeignProfile(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Onboard(ctxAs(officer), OnboardInput{Name: "One"})
	require.NoError(t, err)
	_, err = svc.Onboard(ctxAs(officer), OnboardInput{Name: "Two"})
	require.NoError(t, err)

	phone := "555"
	_, err = svc.Update(ctxAs(vendor), "s2", UpdateInput{Phone: &phone})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestOfficerUpdateStatusValidated(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Onboard(ctxAs(officer), OnboardInput{Name: "Acme"})
	require.NoError(t, err)

	bad := "SHUT_DOWN"
	_, err = svc.Update(ctxAs(officer), "s1", UpdateInput{Status: &bad})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	good := StatusActive
	got, err := svc.Update(ctxAs(officer), "s1", UpdateInput{Status: &good})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
}

func TestGetScoping(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Onboard(ctxAs(officer), OnboardInput{Name: "One"})
	require.NoError(t, err)
	_, err = svc.Onboard(ctxAs(officer), OnboardInput{Name: "Two"})
	require.NoError(t, err)

	_, err = svc.Get(ctxAs(officer), "s2")
	assert.NoError(t, err)

	_, err = svc.Get(ctxAs(vendor), "s1")
	assert.NoError(t, err)

	_, err = svc.Get(ctxAs(vendor), "s2")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = svc.List(ctxAs(vendor))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}
