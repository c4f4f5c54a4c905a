package order

import (
	"time"

	"tailspend/pkg/domain"
)

// Order statuses. IRONING is only reachable through seeded data; the state
// machine accepts it as a source for mark_order_ready so in-flight orders
// can progress.
const (
	StatusDraft           = "DRAFT"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusPOIssued        = "PO_ISSUED"
	StatusAccepted        = "ACCEPTED"
	StatusIroning         = "IRONING"
	StatusReady           = "READY"
	StatusDelivered       = "DELIVERED"
	StatusCustomerPicked  = "CUSTOMER_PICKED"
	StatusCompleted       = "COMPLETED"
	StatusCancelled       = "CANCELLED"
)

// Lifecycle actions.
const (
	ActionIssuePO       = "issue_po"
	ActionAccept        = "accept_order"
	ActionMarkReady     = "mark_order_ready"
	ActionMarkDelivered = "mark_order_delivered"
)

// Delivery options.
const (
	DeliverySupplier = "Supplier Delivery"
	DeliveryPicked   = "Customer Picked"
	DeliveryService  = "Service Contract"
)

// terminalStatuses block further edits.
var terminalStatuses = map[string]bool{
	StatusDelivered:      true,
	StatusCustomerPicked: true,
	StatusCompleted:      true,
	StatusCancelled:      true,
}

// Order is a purchase order, spawned from an approved RFQ or raised directly
// by a procurement officer.
type Order struct {
	ID             string                `json:"id"`
	RFQID          string                `json:"rfqId,omitempty"`
	Title          string                `json:"title"`
	RequestedBy    string                `json:"requestedBy"`
	SupplierID     string                `json:"supplierId"`
	Status         string                `json:"status"`
	PONumber       string                `json:"poNumber,omitempty"`
	OrderDate      time.Time             `json:"orderDate"`
	DeliveryDate   time.Time             `json:"deliveryDate,omitempty"`
	Price          float64               `json:"price"`
	Currency       string                `json:"currency"`
	DeliveryOption string                `json:"deliveryOption,omitempty"`
	Items          []domain.ItemLine     `json:"items"`
	History        []domain.HistoryEntry `json:"workflowHistory"`
	AuditLogs      []LogEntry            `json:"auditLogs"`
}

// LogEntry is the per-order audit trail shown on the order detail view, kept
// alongside the global audit feed.
type LogEntry struct {
	Action  string      `json:"action"`
	Details string      `json:"details"`
	By      string      `json:"by"`
	Role    domain.Role `json:"role"`
	Date    time.Time   `json:"date"`
}

// Terminal reports whether the order can no longer be edited.
func (o *Order) Terminal() bool {
	return terminalStatuses[o.Status]
}

func (o *Order) clone() Order {
	out := *o
	out.Items = append([]domain.ItemLine(nil), o.Items...)
	out.History = append([]domain.HistoryEntry(nil), o.History...)
	out.AuditLogs = append([]LogEntry(nil), o.AuditLogs...)
	return out
}
