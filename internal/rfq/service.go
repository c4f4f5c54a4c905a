// Package rfq implements the request-for-quotation lifecycle: draft, submit
// for approval, officer approval or rejection, supplier quoting, and the
// cross-entity order spawn on approval. Every mutation is all-or-nothing:
// guards run first and a rejection leaves the store untouched.
package rfq

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"tailspend/internal/audit"
	"tailspend/internal/notification"
	"tailspend/internal/rbac"
	"tailspend/internal/workflow"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

// transitions is the RFQ state machine. Role gates and ownership run before
// the table lookup; the table only decides status legality.
var transitions = workflow.Table{
	{From: StatusDraft, Action: ActionSubmit, To: StatusPendingApproval},
	{From: StatusPendingApproval, Action: ActionApprove, To: StatusApproved},
	{From: StatusPendingApproval, Action: ActionReject, To: StatusRejected},
	{From: StatusApproved, Action: ActionSubmitQuote, To: StatusQuotationReceived},
	{From: StatusQuotationReceived, Action: ActionSubmitQuote, To: StatusQuotationReceived},
}

// SpawnOrder is what the order service needs to create the follow-on order
// when an RFQ is approved.
type SpawnOrder struct {
	RFQID       string
	Title       string
	RequestedBy string
	SupplierID  string
	Price       float64
	Items       []domain.ItemLine
}

// OrderSpawner creates the pending order for an approved RFQ and returns its
// ID.
type OrderSpawner interface {
	SpawnFromRFQ(ctx context.Context, in SpawnOrder) (string, error)
}

// Recorder appends global audit entries.
type Recorder interface {
	Record(ctx context.Context, e audit.Entry) (audit.Entry, error)
}

// Notifier emits per-user notifications.
type Notifier interface {
	Emit(ctx context.Context, userID, message string, level notification.Level) (notification.Notification, error)
}

// Service owns all RFQ reads and writes.
type Service struct {
	store    Store
	authz    *rbac.Engine
	spawner  OrderSpawner
	recorder Recorder
	notifier Notifier
	metrics  *workflow.Metrics
}

func NewService(store Store, authz *rbac.Engine, spawner OrderSpawner, recorder Recorder, notifier Notifier, metrics *workflow.Metrics) *Service {
	return &Service{
		store:    store,
		authz:    authz,
		spawner:  spawner,
		recorder: recorder,
		notifier: notifier,
		metrics:  metrics,
	}
}

// visible applies the caller's data scope to one RFQ.
func (s *Service) visible(ident domain.Identity, r *RFQ) bool {
	return s.authz.CanSeeRecord(ident.Role, "rfq", r.RequestedBy == ident.ID)
}

// List returns the RFQs the caller may see, filtered by an optional
// case-insensitive substring over id, title and status, newest first.
func (s *Service) List(ctx context.Context, query string) ([]RFQ, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_rfq") {
		return nil, dErrors.New(dErrors.CodeForbidden, "role cannot view rfqs")
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]RFQ, 0, len(all))
	for i := range all {
		r := all[i]
		if !s.visible(ident, &r) {
			continue
		}
		if q != "" && !matches(&r, q) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestedDate.After(out[j].RequestedDate) })
	return out, nil
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

func matches(r *RFQ, q string) bool {
	return strings.Contains(strings.ToLower(r.ID), q) ||
		strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Status), q)
}

// Get returns one RFQ if the caller's scope covers it.
func (s *Service) Get(ctx context.Context, id string) (RFQ, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_rfq") {
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "role cannot view rfqs")
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return RFQ{}, err
	}
	if !s.visible(ident, &r) {
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "rfq is outside your data scope")
	}
	return r, nil
}

// CreateInput carries the author-editable RFQ fields.
type CreateInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	DueDate     string            `json:"dueDate"`
	Items       []domain.ItemLine `json:"items"`
}

// Create opens a new draft owned by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput) (RFQ, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "create_rfq") {
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "role cannot create rfqs")
	}
	if strings.TrimSpace(in.Title) == "" {
		return RFQ{}, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	now := requestcontext.Now(ctx)
	due, err := parseDate(in.DueDate)
	if err != nil {
		return RFQ{}, err
	}
	r, err := s.store.Create(ctx, RFQ{
		Title:         in.Title,
		Description:   in.Description,
		RequestedBy:   ident.ID,
		Status:        StatusDraft,
		Category:      in.Category,
		RequestedDate: now,
		DueDate:       due,
		Items:         in.Items,
		History:       []domain.HistoryEntry{{Status: StatusDraft, Date: now, By: ident.Name}},
	})
	if err != nil {
		return RFQ{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "RFQ", EntityID: r.ID,
		Action: "Created", Details: fmt.Sprintf("New RFQ %s created", r.ID),
		By: ident.Name, Role: ident.Role,
	})
	return r, nil
}

// UpdateInput carries the editable fields for an existing RFQ.
type UpdateInput struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Category    *string           `json:"category"`
	DueDate     *string           `json:"dueDate"`
	Items       []domain.ItemLine `json:"items"`
}

// Update edits RFQ fields. The owning business user may edit a draft;
// officers may edit any RFQ. Status and history are never touched by an
// edit.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (RFQ, error) {
	ident := requestcontext.Identity(ctx)
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return RFQ{}, err
	}

	switch {
	case s.authz.CanAccessAction(ident.Role, "edit_rfq"):
	case s.authz.CanAccessAction(ident.Role, "edit_rfq_draft") && r.RequestedBy == ident.ID:
		if r.Status != StatusDraft {
			return RFQ{}, dErrors.Newf(dErrors.CodeInvalidTransition, "rfq %s is no longer a draft", id)
		}
	default:
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "role cannot edit this rfq")
	}

	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Category != nil {
		r.Category = *in.Category
	}
	if in.DueDate != nil {
		due, err := parseDate(*in.DueDate)
		if err != nil {
			return RFQ{}, err
		}
		r.DueDate = due
	}
	if in.Items != nil {
		r.Items = in.Items
	}
	if err := s.store.Update(ctx, r); err != nil {
		return RFQ{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "RFQ", EntityID: r.ID,
		Action: "Updated", Details: fmt.Sprintf("RFQ %s details updated", r.ID),
		By: ident.Name, Role: ident.Role,
	})
	return r, nil
}

// TransitionInput carries the optional payload of a transition request.
type TransitionInput struct {
	Reason string `json:"reason"`
}

// Transition applies one guarded lifecycle action. Guard order: role gate,
// record visibility, ownership where the action demands it, then the status
// table. Side effects (order spawn, history, audit, notification) happen
// only after every guard passes.
func (s *Service) Transition(ctx context.Context, id, action string, in TransitionInput) (RFQ, error) {
	ident := requestcontext.Identity(ctx)
	r, err := s.transition(ctx, id, action, in, ident)
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	s.metrics.RecordTransition("rfq", action, outcome)
	return r, err
}

func (s *Service) transition(ctx context.Context, id, action string, in TransitionInput, ident domain.Identity) (RFQ, error) {
	if !s.authz.CanAccessAction(ident.Role, action) {
		return RFQ{}, dErrors.Newf(dErrors.CodeForbidden, "role cannot perform %s", action)
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return RFQ{}, err
	}
	if !s.visible(ident, &r) {
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "rfq is outside your data scope")
	}

	switch action {
	case ActionSubmit:
		if r.RequestedBy != ident.ID {
			return RFQ{}, dErrors.New(dErrors.CodeForbidden, "only the requester can submit this rfq")
		}
	case ActionInitiatePO:
		if r.RequestedBy != ident.ID {
			return RFQ{}, dErrors.New(dErrors.CodeForbidden, "only the requester can initiate a po")
		}
		return s.initiatePO(ctx, r, ident)
	case ActionSubmitQuote:
		// Quotes carry an amount and an upsert rule, so the status change
		// only happens through SubmitQuote.
		return RFQ{}, dErrors.New(dErrors.CodeValidation, "quotes are submitted via the quote endpoint, not as a bare transition")
	}

	next, err := transitions.Resolve(r.Status, action)
	if err != nil {
		return RFQ{}, err
	}

	now := requestcontext.Now(ctx)
	r.Status = next
	r.History = append(r.History, domain.HistoryEntry{Status: next, Date: now, By: ident.Name, Reason: in.Reason})

	auditAction := "Status Changed"
	details := fmt.Sprintf("Status updated to %s", next)
	switch action {
	case ActionApprove:
		auditAction = "Approved"
		details = "RFQ approved, PO can be issued"
	case ActionReject:
		auditAction = "Rejected"
		details = fmt.Sprintf("RFQ rejected: %s", in.Reason)
		if in.Reason == "" {
			details = "RFQ rejected"
		}
	}

	// The RFQ write lands before the spawn: a rejected write aborts the
	// approval with no order created.
	if err := s.store.Update(ctx, r); err != nil {
		return RFQ{}, err
	}
	if action == ActionApprove {
		orderID, err := s.spawner.SpawnFromRFQ(ctx, spawnInput(&r))
		if err != nil {
			return RFQ{}, err
		}
		r.RelatedOrderID = orderID
		if err := s.store.Update(ctx, r); err != nil {
			return RFQ{}, err
		}
	}

	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "RFQ", EntityID: r.ID,
		Action: auditAction, Details: details,
		By: ident.Name, Role: ident.Role,
	})
	s.notifyTransition(ctx, &r, action)
	return r, nil
}

// initiatePO lets the requester push an approved RFQ into order review
// without changing the RFQ status. It is rejected once an order exists.
func (s *Service) initiatePO(ctx context.Context, r RFQ, ident domain.Identity) (RFQ, error) {
	if r.Status != StatusApproved && r.Status != StatusQuotationReceived {
		return RFQ{}, dErrors.Newf(dErrors.CodeInvalidTransition, "action %q is not legal from status %q", ActionInitiatePO, r.Status)
	}
	if r.RelatedOrderID != "" {
		return RFQ{}, dErrors.Newf(dErrors.CodeConflict, "rfq %s already has order %s", r.ID, r.RelatedOrderID)
	}
	orderID, err := s.spawner.SpawnFromRFQ(ctx, spawnInput(&r))
	if err != nil {
		return RFQ{}, err
	}
	r.RelatedOrderID = orderID
	r.History = append(r.History, domain.HistoryEntry{
		Status: r.Status, Date: requestcontext.Now(ctx), By: ident.Name,
	})
	if err := s.store.Update(ctx, r); err != nil {
		return RFQ{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "RFQ", EntityID: r.ID,
		Action: "PO Initiated", Details: fmt.Sprintf("Order %s created for review", orderID),
		By: ident.Name, Role: ident.Role,
	})
	return r, nil
}

// spawnInput derives the order fields from the RFQ: supplier and price come
// from the first quote when one exists.
func spawnInput(r *RFQ) SpawnOrder {
	in := SpawnOrder{
		RFQID:       r.ID,
		Title:       r.Title,
		RequestedBy: r.RequestedBy,
		SupplierID:  "unknown",
		Items:       r.Items,
	}
	if len(r.Quotes) > 0 {
		in.SupplierID = r.Quotes[0].SupplierID
		in.Price = r.Quotes[0].Amount
	}
	return in
}

func (s *Service) notifyTransition(ctx context.Context, r *RFQ, action string) {
	switch action {
	case ActionSubmit:
		_, _ = s.notifier.Emit(ctx, r.RequestedBy,
			fmt.Sprintf("Your %s is pending approval by Procurement.", r.ID), notification.LevelInfo)
		if r.AssignedPO != "" {
			_, _ = s.notifier.Emit(ctx, r.AssignedPO,
				fmt.Sprintf("New %s requires your approval.", r.ID), notification.LevelWarning)
		}
	case ActionApprove:
		_, _ = s.notifier.Emit(ctx, r.RequestedBy,
			fmt.Sprintf("%s has been approved and order %s created.", r.ID, r.RelatedOrderID), notification.LevelSuccess)
	case ActionReject:
		_, _ = s.notifier.Emit(ctx, r.RequestedBy,
			fmt.Sprintf("Your %s was rejected.", r.ID), notification.LevelError)
	case ActionSubmitQuote:
		_, _ = s.notifier.Emit(ctx, r.RequestedBy,
			fmt.Sprintf("A quote was received for %s.", r.ID), notification.LevelInfo)
	}
}

// SubmitQuote upserts the calling supplier's quote and moves the RFQ to
// QUOTATION_RECEIVED.
func (s *Service) SubmitQuote(ctx context.Context, id string, amount float64) (RFQ, error) {
	ident := requestcontext.Identity(ctx)
	run := func() (RFQ, error) {
		if !s.authz.CanAccessAction(ident.Role, "submit_quote") {
			return RFQ{}, dErrors.New(dErrors.CodeForbidden, "role cannot submit quotes")
		}
		if amount <= 0 {
			return RFQ{}, dErrors.New(dErrors.CodeValidation, "quote amount must be positive")
		}
		r, err := s.store.Get(ctx, id)
		if err != nil {
			return RFQ{}, err
		}
		next, err := transitions.Resolve(r.Status, ActionSubmitQuote)
		if err != nil {
			return RFQ{}, err
		}

		now := requestcontext.Now(ctx)
		quote := Quote{SupplierID: ident.ID, Amount: amount, Status: QuoteSubmitted, SubmissionDate: now}
		replaced := false
		for i := range r.Quotes {
			if r.Quotes[i].SupplierID == ident.ID {
				r.Quotes[i] = quote
				replaced = true
				break
			}
		}
		if !replaced {
			r.Quotes = append(r.Quotes, quote)
		}
		if r.Status != next {
			r.Status = next
			r.History = append(r.History, domain.HistoryEntry{Status: next, Date: now, By: ident.Name})
		}
		if err := s.store.Update(ctx, r); err != nil {
			return RFQ{}, err
		}
		_, _ = s.recorder.Record(ctx, audit.Entry{
			EntityType: "RFQ", EntityID: r.ID,
			Action: "Quote Submitted", Details: fmt.Sprintf("Quote of %.2f submitted for %s", amount, r.ID),
			By: ident.Name, Role: ident.Role,
		})
		s.notifyTransition(ctx, &r, ActionSubmitQuote)
		return r, nil
	}
	r, err := run()
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	s.metrics.RecordTransition("rfq", ActionSubmitQuote, outcome)
	return r, err
}

// AcceptQuote marks one supplier's quote as accepted. The RFQ status does
// not change; the chosen quote drives the order spawned later.
func (s *Service) AcceptQuote(ctx context.Context, id, supplierID string) (RFQ, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "accept_quote") {
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "role cannot accept quotes")
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return RFQ{}, err
	}
	if r.RequestedBy != ident.ID {
		return RFQ{}, dErrors.New(dErrors.CodeForbidden, "only the requester can accept a quote")
	}
	if r.Status != StatusQuotationReceived {
		return RFQ{}, dErrors.Newf(dErrors.CodeInvalidTransition, "rfq %s has no quotes awaiting acceptance", id)
	}
	found := false
	for i := range r.Quotes {
		if r.Quotes[i].SupplierID == supplierID {
			r.Quotes[i].Status = QuoteAccepted
			found = true
		} else {
			r.Quotes[i].Status = QuoteSubmitted
		}
	}
	if !found {
		return RFQ{}, dErrors.Newf(dErrors.CodeNotFound, "no quote from supplier %s on rfq %s", supplierID, id)
	}
	if err := s.store.Update(ctx, r); err != nil {
		return RFQ{}, err
	}
	_, _ = s.recorder.Record(ctx, audit.Entry{
		EntityType: "RFQ", EntityID: r.ID,
		Action: "Quote Accepted", Details: fmt.Sprintf("Quote from supplier %s accepted", supplierID),
		By: ident.Name, Role: ident.Role,
	})
	return r, nil
}
