// Package search implements the global header search: a case-insensitive
// substring scan over RFQs, orders and suppliers, filtered to the records
// the caller is allowed to open.
package search

import (
	"context"
	"strings"

	"tailspend/internal/order"
	"tailspend/internal/rbac"
	"tailspend/internal/rfq"
	"tailspend/internal/supplier"
	"tailspend/pkg/requestcontext"
)

const resultCap = 5

// Result is one search hit, carrying the navigation target for the UI.
type Result struct {
	Label    string `json:"label"`
	Screen   string `json:"screen"`
	EntityID string `json:"id"`
	Type     string `json:"type"`
}

// Service scans the entity stores for matching records.
type Service struct {
	rfqs      rfq.Store
	orders    order.Store
	suppliers supplier.Store
	authz     *rbac.Engine
}

func NewService(rfqs rfq.Store, orders order.Store, suppliers supplier.Store, authz *rbac.Engine) *Service {
	return &Service{rfqs: rfqs, orders: orders, suppliers: suppliers, authz: authz}
}

// Search returns up to five hits across all entity kinds. An empty query
// returns no hits. Kinds whose detail screen the caller cannot open are
// skipped entirely, and individual records outside the caller's data scope
// are dropped.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []Result{}, nil
	}
	ident := requestcontext.Identity(ctx)
	results := []Result{}

	if s.authz.CanAccessScreen(ident.Role, "RFQDetail") {
		rfqs, err := s.rfqs.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rfqs {
			if len(results) >= resultCap {
				break
			}
			if !s.authz.CanSeeRecord(ident.Role, "rfq", r.RequestedBy == ident.ID) {
				continue
			}
			if matches(query, r.ID, r.Title, r.Description) {
				results = append(results, Result{
					Label:    "RFQ: " + r.ID + " - " + r.Title,
					Screen:   "RFQDetail",
					EntityID: r.ID,
					Type:     "RFQ",
				})
			}
		}
	}

	if len(results) < resultCap && s.authz.CanAccessScreen(ident.Role, "OrderDetail") {
		orders, err := s.orders.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			if len(results) >= resultCap {
				break
			}
			owns := o.RequestedBy == ident.ID || o.SupplierID == ident.ID
			if !s.authz.CanSeeRecord(ident.Role, "order", owns) {
				continue
			}
			if matches(query, o.ID, o.Title, o.PONumber) {
				results = append(results, Result{
					Label:    "Order: " + o.ID + " - " + o.Title,
					Screen:   "OrderDetail",
					EntityID: o.ID,
					Type:     "Order",
				})
			}
		}
	}

	if len(results) < resultCap && s.authz.CanAccessScreen(ident.Role, "SupplierDetail") {
		suppliers, err := s.suppliers.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, sp := range suppliers {
			if len(results) >= resultCap {
				break
			}
			if !s.authz.CanSeeRecord(ident.Role, "supplier", sp.ID == ident.ID) {
				continue
			}
			if matches(query, sp.ID, sp.Name, sp.ContactPerson) {
				results = append(results, Result{
					Label:    "Supplier: " + sp.ID + " - " + sp.Name,
					Screen:   "SupplierDetail",
					EntityID: sp.ID,
					Type:     "Supplier",
				})
			}
		}
	}

	return results, nil
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
