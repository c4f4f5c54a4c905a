// Package supplier manages vendor records: officer-driven onboarding plus
// the supplier-facing profile a vendor may edit themselves.
package supplier

import (
	"context"
	"fmt"
	"strings"

	"tailspend/internal/audit"
	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/requestcontext"
)

// Recorder appends audit entries for supplier mutations.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) (audit.Entry, error)
}

// Service applies role gates and ownership rules to supplier records.
type Service struct {
	store    Store
	authz    *rbac.Engine
	recorder Recorder
}

func NewService(store Store, authz *rbac.Engine, recorder Recorder) *Service {
	return &Service{store: store, authz: authz, recorder: recorder}
}

// List returns all suppliers. Only officers hold view_supplier.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_supplier") {
		return nil, dErrors.New(dErrors.CodeForbidden, "role cannot view suppliers")
	}
	return s.store.List(ctx)
}

// Get returns one supplier. Officers may read any record; a supplier-role
// caller only their own profile.
func (s *Service) Get(ctx context.Context, id string) (Supplier, error) {
	ident := requestcontext.Identity(ctx)
	switch {
	case s.authz.CanAccessAction(ident.Role, "view_supplier"):
	case s.authz.CanAccessAction(ident.Role, "view_supplier_profile") && ident.ID == id:
	default:
		return Supplier{}, dErrors.New(dErrors.CodeForbidden, "role cannot view this supplier")
	}
	return s.store.Get(ctx, id)
}

// OnboardInput is the officer-provided part of a new supplier record.
type OnboardInput struct {
	Name          string   `json:"name"`
	ContactPerson string   `json:"contactPerson"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	Documents     []string `json:"documents"`
}

// Onboard creates a supplier in ONBOARDING with compliance pending.
func (s *Service) Onboard(ctx context.Context, in OnboardInput) (Supplier, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "onboard_supplier") {
		return Supplier{}, dErrors.New(dErrors.CodeForbidden, "role cannot onboard suppliers")
	}
	if strings.TrimSpace(in.Name) == "" {
		return Supplier{}, dErrors.New(dErrors.CodeValidation, "supplier name is required")
	}
	now := requestcontext.Now(ctx)
	sup, err := s.store.Create(ctx, Supplier{
		Name:             in.Name,
		Status:           StatusOnboarding,
		ContactPerson:    in.ContactPerson,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		RegistrationDate: now,
		LastActivity:     now,
		Compliance:       "Pending Documents",
		Documents:        in.Documents,
	})
	if err != nil {
		return Supplier{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "Supplier",
		EntityID:   sup.ID,
		Action:     "Onboarded",
		Details:    fmt.Sprintf("New supplier %s onboarded", sup.Name),
		By:         ident.Name,
		Role:       ident.Role,
	})
	return sup, nil
}

// UpdateInput carries the editable supplier fields. Status and Compliance
// only take effect for officers.
type UpdateInput struct {
	Name          *string  `json:"name"`
	ContactPerson *string  `json:"contactPerson"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	Status        *string  `json:"status"`
	Compliance    *string  `json:"compliance"`
	Documents     []string `json:"documents"`
}

// Update edits a supplier record. Officers hold edit_supplier and may edit
// any record; a supplier-role caller holds edit_supplier_profile for their
// own record, with name, status and compliance locked.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Supplier, error) {
	ident := requestcontext.Identity(ctx)

	officer := s.authz.CanAccessAction(ident.Role, "edit_supplier")
	selfEdit := s.authz.CanAccessAction(ident.Role, "edit_supplier_profile") && ident.ID == id
	if !officer && !selfEdit {
		return Supplier{}, dErrors.New(dErrors.CodeForbidden, "role cannot edit this supplier")
	}

	sup, err := s.store.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}

	if in.ContactPerson != nil {
		sup.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		sup.Email = *in.Email
	}
	if in.Phone != nil {
		sup.Phone = *in.Phone
	}
	if in.Address != nil {
		sup.Address = *in.Address
	}
	if in.Documents != nil {
		sup.Documents = append(sup.Documents, in.Documents...)
	}
	if officer {
		if in.Name != nil {
			sup.Name = *in.Name
		}
		if in.Status != nil {
			if !validStatus(*in.Status) {
				return Supplier{}, dErrors.Newf(dErrors.CodeValidation, "unknown supplier status %q", *in.Status)
			}
			sup.Status = *in.Status
		}
		if in.Compliance != nil {
			sup.Compliance = *in.Compliance
		}
	}
	sup.LastActivity = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, sup); err != nil {
		return Supplier{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "Supplier",
		EntityID:   sup.ID,
		Action:     "Updated",
		Details:    fmt.Sprintf("Supplier %s details updated", sup.Name),
		By:         ident.Name,
		Role:       ident.Role,
	})
	return sup, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusOnboarding, StatusActive, StatusInactive, StatusComplianceIssue:
		return true
	}
	return false
}
