// Package dashboard derives the role-specific landing view: KPI counters,
// recent activity and upcoming deadlines for business users and officers,
// and the portal summary for suppliers. Everything here is a pure read over
// the entity stores.
package dashboard

import (
	"context"
	"sort"
	"time"

	"tailspend/internal/audit"
	"tailspend/internal/order"
	"tailspend/internal/rbac"
	"tailspend/internal/rfq"
	"tailspend/internal/supplier"
	"tailspend/internal/task"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

const activityCap = 5

// KPI is one headline counter.
type KPI struct {
	Title string `json:"title"`
	Value int    `json:"value"`
}

// Activity is one recent-activity row.
type Activity struct {
	ID       string    `json:"id"`
	Action   string    `json:"action"`
	Status   string    `json:"status"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Date     time.Time `json:"date"`
}

// Deadline is one upcoming-deadline row derived from the task queue.
type Deadline struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Status   string    `json:"status"`
	DueDate  time.Time `json:"dueDate"`
}

// PortalSummary is the supplier landing view.
type PortalSummary struct {
	PendingQuoteRFQs    []rfq.RFQ     `json:"pendingQuoteRfqs"`
	SubmittedQuoteRFQs  []rfq.RFQ     `json:"submittedQuoteRfqs"`
	ActiveOrders        []order.Order `json:"activeOrders"`
	CompletedDeliveries []order.Order `json:"completedDeliveries"`
}

// Overview is the full dashboard payload. Portal is set only for suppliers.
type Overview struct {
	Dashboard         string         `json:"dashboard"`
	KPIs              []KPI          `json:"kpis,omitempty"`
	RecentActivity    []Activity     `json:"recentActivity,omitempty"`
	UpcomingDeadlines []Deadline     `json:"upcomingDeadlines,omitempty"`
	Portal            *PortalSummary `json:"portal,omitempty"`
}

// Service derives dashboards from the entity stores.
type Service struct {
	rfqs      rfq.Store
	orders    order.Store
	suppliers supplier.Store
	tasks     *task.Service
	auditLog  audit.Store
	authz     *rbac.Engine
}

func NewService(rfqs rfq.Store, orders order.Store, suppliers supplier.Store, tasks *task.Service, auditLog audit.Store, authz *rbac.Engine) *Service {
	return &Service{rfqs: rfqs, orders: orders, suppliers: suppliers, tasks: tasks, auditLog: auditLog, authz: authz}
}

// Overview builds the landing view for the caller's role.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	ident := requestcontext.Identity(ctx)
	switch ident.Role {
	case domain.RoleBusinessUser:
		if !s.authz.CanAccessDashboard(ident.Role, "BusinessUserDashboard") {
			return Overview{}, dErrors.New(dErrors.CodeForbidden, "role cannot open this dashboard")
		}
		return s.businessUser(ctx, ident)
	case domain.RoleProcurementOfficer:
		if !s.authz.CanAccessDashboard(ident.Role, "ProcurementOfficerDashboard") {
			return Overview{}, dErrors.New(dErrors.CodeForbidden, "role cannot open this dashboard")
		}
		return s.officer(ctx, ident)
	case domain.RoleSupplier:
		if !s.authz.CanAccessScreen(ident.Role, "SupplierPortal") {
			return Overview{}, dErrors.New(dErrors.CodeForbidden, "role cannot open the supplier portal")
		}
		return s.portal(ctx, ident)
	}
	return Overview{}, dErrors.New(dErrors.CodeForbidden, "unknown role")
}

func (s *Service) businessUser(ctx context.Context, ident domain.Identity) (Overview, error) {
	rfqs, err := s.rfqs.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return Overview{}, err
	}

	inProgress := map[string]bool{rfq.StatusCreated: true, rfq.StatusPendingApproval: true, rfq.StatusQuotationReceived: true}
	completed := map[string]bool{order.StatusDelivered: true, order.StatusCustomerPicked: true, order.StatusCompleted: true}

	var progressing, awaitingPO, quoted, done int
	var activity []Activity
	for i := range rfqs {
		r := rfqs[i]
		if r.RequestedBy != ident.ID {
			continue
		}
		if inProgress[r.Status] {
			progressing++
		}
		if r.Status == rfq.StatusApproved {
			awaitingPO++
		}
		if r.Status == rfq.StatusQuotationReceived {
			quoted++
		}
		date := r.RequestedDate
		if n := len(r.History); n > 0 {
			date = r.History[n-1].Date
		}
		activity = append(activity, Activity{
			ID: r.ID, Action: "RFQ " + r.Status + ": " + r.Title,
			Status: r.Status, Type: "RFQ", EntityID: r.ID, Date: date,
		})
	}
	for i := range orders {
		if orders[i].RequestedBy == ident.ID && completed[orders[i].Status] {
			done++
		}
	}

	sort.SliceStable(activity, func(i, j int) bool { return activity[i].Date.After(activity[j].Date) })
	if len(activity) > activityCap {
		activity = activity[:activityCap]
	}

	return Overview{
		Dashboard: "BusinessUserDashboard",
		KPIs: []KPI{
			{Title: "My RFQs in Progress", Value: progressing},
			{Title: "My Orders Awaiting PO", Value: awaitingPO},
			{Title: "Pending Supplier Quotes", Value: quoted},
			{Title: "Completed Purchases", Value: done},
		},
		RecentActivity:    activity,
		UpcomingDeadlines: s.deadlines(ident.ID),
	}, nil
}

func (s *Service) officer(ctx context.Context, ident domain.Identity) (Overview, error) {
	rfqs, err := s.rfqs.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	entries, err := s.auditLog.List(ctx)
	if err != nil {
		return Overview{}, err
	}

	var pendingRFQs, pendingPO, onboarding int
	for i := range rfqs {
		if rfqs[i].Status == rfq.StatusPendingApproval {
			pendingRFQs++
		}
	}
	for i := range orders {
		if orders[i].Status == order.StatusPendingApproval {
			pendingPO++
		}
	}
	for i := range suppliers {
		if suppliers[i].Status == supplier.StatusOnboarding {
			onboarding++
		}
	}

	var activity []Activity
	for i := range entries {
		e := entries[i]
		if e.Role != domain.RoleProcurementOfficer {
			continue
		}
		activity = append(activity, Activity{
			ID: e.ID, Action: e.EntityType + " " + e.Action + ": " + e.Details,
			Status: e.Action, Type: e.EntityType, EntityID: e.EntityID, Date: e.Date,
		})
	}
	sort.SliceStable(activity, func(i, j int) bool { return activity[i].Date.After(activity[j].Date) })
	if len(activity) > activityCap {
		activity = activity[:activityCap]
	}

	return Overview{
		Dashboard: "ProcurementOfficerDashboard",
		KPIs: []KPI{
			{Title: "Open RFQs for Review", Value: pendingRFQs},
			{Title: "Orders Pending PO Issue", Value: pendingPO},
			{Title: "Suppliers Onboarding", Value: onboarding},
			{Title: "Overdue Tasks", Value: s.tasks.CountOverdue(ident.ID, requestcontext.Now(ctx))},
		},
		RecentActivity:    activity,
		UpcomingDeadlines: s.deadlines(ident.ID),
	}, nil
}

func (s *Service) portal(ctx context.Context, ident domain.Identity) (Overview, error) {
	rfqs, err := s.rfqs.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return Overview{}, err
	}

	p := &PortalSummary{}
	for i := range rfqs {
		r := rfqs[i]
		if _, quoted := r.QuoteBy(ident.ID); quoted {
			p.SubmittedQuoteRFQs = append(p.SubmittedQuoteRFQs, r)
		} else if r.Status == rfq.StatusApproved {
			p.PendingQuoteRFQs = append(p.PendingQuoteRFQs, r)
		}
	}
	completed := map[string]bool{order.StatusDelivered: true, order.StatusCustomerPicked: true, order.StatusCompleted: true}
	for i := range orders {
		o := orders[i]
		if o.SupplierID != ident.ID {
			continue
		}
		if completed[o.Status] {
			p.CompletedDeliveries = append(p.CompletedDeliveries, o)
		} else {
			p.ActiveOrders = append(p.ActiveOrders, o)
		}
	}
	return Overview{Dashboard: "SupplierPortal", Portal: p}, nil
}

// deadlines lists the caller's pending tasks soonest first, capped.
func (s *Service) deadlines(userID string) []Deadline {
	pending := s.tasks.PendingFor(userID)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].DueDate.Before(pending[j].DueDate) })
	if len(pending) > activityCap {
		pending = pending[:activityCap]
	}
	out := make([]Deadline, 0, len(pending))
	for _, t := range pending {
		out = append(out, Deadline{
			ID: t.ID, Title: t.Title, Type: t.EntityType,
			EntityID: t.EntityID, Status: t.Status, DueDate: t.DueDate,
		})
	}
	return out
}
