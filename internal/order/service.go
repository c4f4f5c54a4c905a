// Package order implements the purchase-order lifecycle from PO issuance to
// delivery. Orders arrive either as the spawn of an approved RFQ (entering
// at PENDING_APPROVAL) or raised directly by an officer (entering at
// PO_ISSUED with a number already assigned).
package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"tailspend/internal/audit"
	"tailspend/internal/notification"
	"tailspend/internal/rbac"
	"tailspend/internal/rfq"
	"tailspend/internal/workflow"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

// transitions is the order state machine. mark_order_delivered resolves to
// DELIVERED here; the service swaps in CUSTOMER_PICKED when the order's
// delivery option says so.
var transitions = workflow.Table{
	{From: StatusPendingApproval, Action: ActionIssuePO, To: StatusPOIssued},
	{From: StatusPOIssued, Action: ActionAccept, To: StatusAccepted},
	{From: StatusAccepted, Action: ActionMarkReady, To: StatusReady},
	{From: StatusIroning, Action: ActionMarkReady, To: StatusReady},
	{From: StatusReady, Action: ActionMarkDelivered, To: StatusDelivered},
}

// supplierActions are the status updates a supplier performs on their own
// orders through the update_order_status grant.
var supplierActions = map[string]bool{
	ActionAccept:        true,
	ActionMarkReady:     true,
	ActionMarkDelivered: true,
}

// Recorder appends global audit entries.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) (audit.Entry, error)
}

// Notifier emits per-user notifications.
type Notifier interface {
	Emit(ctx context.Context, userID, message string, level notification.Level) (notification.Notification, error)
}

// Service owns all order reads and writes.
type Service struct {
	store    Store
	authz    *rbac.Engine
	recorder Recorder
	notifier Notifier
	metrics  *workflow.Metrics
}

func NewService(store Store, authz *rbac.Engine, recorder Recorder, notifier Notifier, metrics *workflow.Metrics) *Service {
	return &Service{store: store, authz: authz, recorder: recorder, notifier: notifier, metrics: metrics}
}

func (s *Service) visible(ident domain.Identity, o *Order) bool {
	owns := o.RequestedBy == ident.ID || o.SupplierID == ident.ID
	return s.authz.CanSeeRecord(ident.Role, "order", owns)
}

// allowed resolves the role gate for a lifecycle action: either the role
// holds the action itself, or it holds update_order_status and the action is
// a supplier-side status update on its own order.
func (s *Service) allowed(ident domain.Identity, o *Order, action string) bool {
	if s.authz.CanAccessAction(ident.Role, action) {
		return true
	}
	if supplierActions[action] && o.SupplierID == ident.ID {
		return s.authz.CanAccessAction(ident.Role, "update_order_status")
	}
	return false
}

// List returns the orders the caller may see, filtered by an optional
// substring over id, title, status and PO number, newest first.
func (s *Service) List(ctx context.Context, query string) ([]Order, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_order") {
		return nil, dErrors.New(dErrors.CodeForbidden, "role cannot view orders")
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]Order, 0, len(all))
	for i := range all {
		o := all[i]
		if !s.visible(ident, &o) {
			continue
		}
		if q != "" && !matches(&o, q) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func matches(o *Order, q string) bool {
	return strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.Title), q) ||
		strings.Contains(strings.ToLower(o.Status), q) ||
		strings.Contains(strings.ToLower(o.PONumber), q)
}

// Get returns one order if the caller's scope covers it.
func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_order") {
		return Order{}, dErrors.New(dErrors.CodeForbidden, "role cannot view orders")
	}
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !s.visible(ident, &o) {
		return Order{}, dErrors.New(dErrors.CodeForbidden, "order is outside your data scope")
	}
	return o, nil
}

// SpawnFromRFQ creates the follow-on order for an approved RFQ. It enters at
// PENDING_APPROVAL awaiting PO issuance; the history is attributed to the
// review process, not a user.
func (s *Service) SpawnFromRFQ(ctx context.Context, in rfq.SpawnOrder) (string, error) {
	now := requestcontext.Now(ctx)
	o, err := s.store.Create(ctx, Order{
		RFQID:       in.RFQID,
		Title:       in.Title,
		RequestedBy: in.RequestedBy,
		SupplierID:  in.SupplierID,
		Status:      StatusPendingApproval,
		OrderDate:   now,
		Price:       in.Price,
		Currency:    "USD",
		Items:       in.Items,
		History: []domain.HistoryEntry{
			{Status: StatusPendingApproval, Date: now, By: "System (PO Review)"},
		},
	})
	if err != nil {
		return "", err
	}
	return o.ID, nil
}

// CreateInput carries the fields of a directly raised order.
type CreateInput struct {
	Title          string            `json:"title"`
	RFQID          string            `json:"rfqId"`
	SupplierID     string            `json:"supplierId"`
	DeliveryDate   string            `json:"deliveryDate"`
	Price          float64           `json:"price"`
	DeliveryOption string            `json:"deliveryOption"`
	Items          []domain.ItemLine `json:"items"`
}

// Create raises an ad-hoc order. Only officers may do this; the order skips
// review and enters at PO_ISSUED with a freshly issued PO number.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, ActionIssuePO) {
		return Order{}, dErrors.New(dErrors.CodeForbidden, "role cannot issue purchase orders")
	}
	if strings.TrimSpace(in.Title) == "" {
		return Order{}, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if in.SupplierID == "" {
		return Order{}, dErrors.New(dErrors.CodeValidation, "supplier is required")
	}
	now := requestcontext.Now(ctx)
	delivery, err := parseDate(in.DeliveryDate)
	if err != nil {
		return Order{}, err
	}
	po, err := s.store.NextPONumber(ctx, now)
	if err != nil {
		return Order{}, err
	}
	o, err := s.store.Create(ctx, Order{
		RFQID:          in.RFQID,
		Title:          in.Title,
		RequestedBy:    ident.ID,
		SupplierID:     in.SupplierID,
		Status:         StatusPOIssued,
		PONumber:       po,
		OrderDate:      now,
		DeliveryDate:   delivery,
		Price:          in.Price,
		Currency:       "USD",
		DeliveryOption: in.DeliveryOption,
		Items:          in.Items,
		History: []domain.HistoryEntry{
			{Status: StatusDraft, Date: now, By: ident.Name},
			{Status: StatusPOIssued, Date: now, By: ident.Name},
		},
	})
	if err != nil {
		return Order{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "Order", EntityID: o.ID,
		Action: "PO Issued", Details: fmt.Sprintf("New PO %s issued", po),
		By: ident.Name, Role: ident.Role,
	})
	_, _ = s.notifier.Emit(ctx, o.SupplierID,
		fmt.Sprintf("New purchase order %s (%s) issued to you.", o.ID, po), notification.LevelInfo)
	return o, nil
}

// UpdateInput carries the officer-editable order fields.
type UpdateInput struct {
	Title          *string           `json:"title"`
	SupplierID     *string           `json:"supplierId"`
	DeliveryDate   *string           `json:"deliveryDate"`
	Price          *float64          `json:"price"`
	DeliveryOption *string           `json:"deliveryOption"`
	Items          []domain.ItemLine `json:"items"`
}

// Update edits order fields. Blocked once the order reached a terminal
// status; never touches status or history.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Order, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "edit_order") {
		return Order{}, dErrors.New(dErrors.CodeForbidden, "role cannot edit orders")
	}
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.Terminal() {
		return Order{}, dErrors.Newf(dErrors.CodeInvalidTransition, "order %s is %s and can no longer be edited", id, o.Status)
	}

	if in.Title != nil {
		o.Title = *in.Title
	}
	if in.SupplierID != nil {
		o.SupplierID = *in.SupplierID
	}
	if in.DeliveryDate != nil {
		d, err := parseDate(*in.DeliveryDate)
		if err != nil {
			return Order{}, err
		}
		o.DeliveryDate = d
	}
	if in.Price != nil {
		o.Price = *in.Price
	}
	if in.DeliveryOption != nil {
		o.DeliveryOption = *in.DeliveryOption
	}
	if in.Items != nil {
		o.Items = in.Items
	}
	if err := s.store.Update(ctx, o); err != nil {
		return Order{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "Order", EntityID: o.ID,
		Action: "Updated", Details: fmt.Sprintf("Order %s details updated", o.ID),
		By: ident.Name, Role: ident.Role,
	})
	return o, nil
}

// Transition applies one guarded lifecycle action.
func (s *Service) Transition(ctx context.Context, id, action string) (Order, error) {
	o, err := s.transition(ctx, id, action)
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	s.metrics.RecordTransition("order", action, outcome)
	return o, err
}

func (s *Service) transition(ctx context.Context, id, action string) (Order, error) {
	ident := requestcontext.Identity(ctx)
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !s.visible(ident, &o) {
		return Order{}, dErrors.New(dErrors.CodeForbidden, "order is outside your data scope")
	}
	if !s.allowed(ident, &o, action) {
		return Order{}, dErrors.Newf(dErrors.CodeForbidden, "role cannot perform %s", action)
	}
	if action == ActionAccept && o.SupplierID != ident.ID {
		return Order{}, dErrors.New(dErrors.CodeForbidden, "only the assigned supplier can accept this order")
	}

	next, err := transitions.Resolve(o.Status, action)
	if err != nil {
		return Order{}, err
	}
	if action == ActionMarkDelivered && o.DeliveryOption == DeliveryPicked {
		next = StatusCustomerPicked
	}

	now := requestcontext.Now(ctx)
	prev := o.Status
	o.Status = next
	o.History = append(o.History, domain.HistoryEntry{Status: next, Date: now, By: ident.Name})
	o.AuditLogs = append(o.AuditLogs, LogEntry{
		Action:  "Order Status Changes",
		Details: fmt.Sprintf("Status changed from %s to %s", prev, next),
		By:      ident.Name,
		Role:    ident.Role,
		Date:    now,
	})

	if action == ActionIssuePO && o.PONumber == "" {
		po, err := s.store.NextPONumber(ctx, now)
		if err != nil {
			return Order{}, err
		}
		o.PONumber = po
	}

	if err := s.store.Update(ctx, o); err != nil {
		return Order{}, err
	}

	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "Order", EntityID: o.ID,
		Action: "Order Status Changes", Details: fmt.Sprintf("Status changed from %s to %s", prev, next),
		By: ident.Name, Role: ident.Role,
	})
	s.notifyTransition(ctx, &o, action)
	return o, nil
}

func (s *Service) notifyTransition(ctx context.Context, o *Order, action string) {
	switch action {
	case ActionIssuePO:
		_, _ = s.notifier.Emit(ctx, o.RequestedBy,
			fmt.Sprintf("%s has been approved and %s issued.", o.ID, o.PONumber), notification.LevelSuccess)
		_, _ = s.notifier.Emit(ctx, o.SupplierID,
			fmt.Sprintf("New purchase order %s (%s) issued to you.", o.ID, o.PONumber), notification.LevelInfo)
	case ActionMarkReady:
		_, _ = s.notifier.Emit(ctx, o.RequestedBy,
			fmt.Sprintf("Order %s is READY.", o.ID), notification.LevelSuccess)
	case ActionMarkDelivered:
		_, _ = s.notifier.Emit(ctx, o.RequestedBy,
			fmt.Sprintf("Order %s status updated to %s.", o.ID, o.Status), notification.LevelInfo)
	}
}

// parseDate accepts the YYYY-MM-DD wire format; an empty string is a zero
// date, not an error.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
