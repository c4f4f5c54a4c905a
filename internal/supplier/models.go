package supplier

import "time"

// Status values for a supplier record.
const (
	StatusOnboarding      = "ONBOARDING"
	StatusActive          = "ACTIVE"
	StatusInactive        = "INACTIVE"
	StatusComplianceIssue = "COMPLIANCE_ISSUE"
)

// Supplier is one vendor record. A supplier-role user owns the record whose
// ID matches their identity.
type Supplier struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	ContactPerson    string    `json:"contactPerson"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	RegistrationDate time.Time `json:"registrationDate"`
	LastActivity     time.Time `json:"lastActivity"`
	Compliance       string    `json:"compliance"`
	Documents        []string  `json:"documents"`
}
