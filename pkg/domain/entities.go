package domain

import "time"

// ItemLine is one requested line on an RFQ or Order. Items are copied verbatim
// from an RFQ onto the Order it spawns.
type ItemLine struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// HistoryEntry is one row of an entity's append-only workflow ledger. The last
// entry's status always equals the entity's current status.
type HistoryEntry struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	By     string    `json:"by"`
	Reason string    `json:"reason,omitempty"`
}
