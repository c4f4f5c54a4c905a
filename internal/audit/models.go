package audit

import (
	"time"

	"tailspend/pkg/domain"
)

// Entry is one append-only audit record. By holds the display name of the
// actor; own-scope filtering matches on it.
type Entry struct {
	ID         string      `json:"id"`
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityId"`
	Action     string      `json:"action"`
	Details    string      `json:"details"`
	By         string      `json:"by"`
	Role       domain.Role `json:"role"`
	Date       time.Time   `json:"date"`
}
