// Package domain holds the primitives shared across features: roles, the
// resolved session identity, and the line/history value types embedded in
// procurement entities.
package domain

import "fmt"

// Role is the closed set of personas the workflow recognizes. The wire form
// matches the persona labels users pick at login.
type Role string

const (
	RoleBusinessUser       Role = "Business User"
	RoleProcurementOfficer Role = "Procurement Officer"
	RoleSupplier           Role = "Supplier"
)

// ParseRole validates and returns a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}

// Valid reports whether the role is one of the known personas.
func (r Role) Valid() bool {
	switch r {
	case RoleBusinessUser, RoleProcurementOfficer, RoleSupplier:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Identity is the resolved acting principal handed to the core at session
// start. It is supplied by the persona-selection layer, not verified.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsZero reports whether no identity has been resolved.
func (i Identity) IsZero() bool { return i.ID == "" }
