package rfq

import (
	"time"

	"tailspend/pkg/domain"
)

// RFQ statuses. CREATED only appears in history and KPI buckets; a stored
// RFQ starts at DRAFT.
const (
	StatusCreated           = "CREATED"
	StatusDraft             = "DRAFT"
	StatusPendingApproval   = "PENDING_APPROVAL"
	StatusApproved          = "APPROVED"
	StatusRejected          = "REJECTED"
	StatusQuotationReceived = "QUOTATION_RECEIVED"
)

// Lifecycle actions.
const (
	ActionSubmit      = "submit_rfq"
	ActionApprove     = "approve_rfq"
	ActionReject      = "reject_rfq"
	ActionSubmitQuote = "submit_quote"
	ActionInitiatePO  = "initiate_po"
)

// Quote statuses.
const (
	QuoteSubmitted = "SUBMITTED"
	QuoteAccepted  = "ACCEPTED"
)

// Quote is one supplier's bid on an RFQ. A supplier holds at most one quote
// per RFQ; resubmission replaces the earlier one.
type Quote struct {
	SupplierID     string    `json:"supplierId"`
	Amount         float64   `json:"quoteAmount"`
	Status         string    `json:"status"`
	SubmissionDate time.Time `json:"submissionDate"`
}

// RFQ is a request for quotation owned by the business user who raised it.
type RFQ struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	RequestedBy    string                `json:"requestedBy"`
	Status         string                `json:"status"`
	Category       string                `json:"category"`
	RequestedDate  time.Time             `json:"requestedDate"`
	DueDate        time.Time             `json:"dueDate"`
	Items          []domain.ItemLine     `json:"items"`
	Quotes         []Quote               `json:"quotes"`
	History        []domain.HistoryEntry `json:"workflowHistory"`
	RelatedOrderID string                `json:"relatedOrderId,omitempty"`
	AssignedPO     string                `json:"assignedPO,omitempty"`
}

// QuoteBy returns the quote submitted by the given supplier, if any.
func (r *RFQ) QuoteBy(supplierID string) (Quote, bool) {
	for _, q := range r.Quotes {
		if q.SupplierID == supplierID {
			return q, true
		}
	}
	return Quote{}, false
}

func (r *RFQ) clone() RFQ {
	out := *r
	out.Items = append([]domain.ItemLine(nil), r.Items...)
	out.Quotes = append([]Quote(nil), r.Quotes...)
	out.History = append([]domain.HistoryEntry(nil), r.History...)
	return out
}
