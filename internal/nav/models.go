// Package nav keeps a per-session history of screens so the client can walk
// back one step at a time. The stack is decoupled from entity state: it only
// records which view was presented, never what was on it.
package nav

import "tailspend/pkg/domain"

// Screen describes one view the client can present. ID and Type are set for
// detail screens (the entity being shown), empty otherwise.
type Screen struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
}

// State is a session's full navigation history: the screen currently shown
// and the stack of screens behind it.
type State struct {
	Current Screen
	Stack   []Screen
}

// Back is the reserved navigation target that pops instead of pushing.
const Back = "back"

// Home returns the landing screen for a role. Unauthenticated sessions land
// on the login screen.
func Home(role domain.Role) Screen {
	switch role {
	case domain.RoleBusinessUser, domain.RoleProcurementOfficer:
		return Screen{Name: "Dashboard"}
	case domain.RoleSupplier:
		return Screen{Name: "SupplierPortal"}
	}
	return Screen{Name: "Login"}
}
