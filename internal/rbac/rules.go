package rbac

import "tailspend/pkg/domain"

// Scope describes record-level visibility for one entity kind: whether the
// role may see records it owns and records owned by others.
type Scope struct {
	Own    bool `json:"own"`
	Others bool `json:"others"`
}

// RoleRules captures everything a single role is allowed to do.
type RoleRules struct {
	Dashboards []string
	Screens    []string
	Actions    map[string]bool
	Data       map[string]Scope
}

// DefaultRules returns the built-in rule table. Callers must treat the
// result as read-only; the engine copies nothing.
func DefaultRules() map[domain.Role]RoleRules {
	return map[domain.Role]RoleRules{
		domain.RoleBusinessUser: {
			Dashboards: []string{"BusinessUserDashboard"},
			Screens: []string{
				"RFQList", "RFQDetail", "RFQForm",
				"OrderList", "OrderDetail",
				"TaskList", "AuditLog", "NotificationCenter",
			},
			Actions: map[string]bool{
				"create_rfq":        true,
				"view_rfq":          true,
				"edit_rfq_draft":    true,
				"submit_rfq":        true,
				"cancel_rfq":        true,
				"view_order":        true,
				"view_task":         true,
				"view_notification": true,
				"view_audit_log":    true,
				"accept_quote":      true,
				"initiate_po":       true,
			},
			Data: map[string]Scope{
				"rfq":      {Own: true, Others: false},
				"order":    {Own: true, Others: false},
				"supplier": {Own: false, Others: true},
				"audit":    {Own: true, Others: false},
			},
		},
		domain.RoleProcurementOfficer: {
			Dashboards: []string{"ProcurementOfficerDashboard"},
			Screens: []string{
				"RFQList", "RFQDetail", "RFQForm",
				"OrderList", "OrderDetail", "OrderForm",
				"SupplierList", "SupplierDetail", "SupplierForm",
				"TaskList", "AuditLog", "NotificationCenter",
			},
			Actions: map[string]bool{
				"create_rfq":           true,
				"view_rfq":             true,
				"edit_rfq":             true,
				"approve_rfq":          true,
				"reject_rfq":           true,
				"issue_po":             true,
				"view_order":           true,
				"edit_order":           true,
				"mark_order_ready":     true,
				"mark_order_delivered": true,
				"view_supplier":        true,
				"onboard_supplier":     true,
				"edit_supplier":        true,
				"view_task":            true,
				"view_notification":    true,
				"view_audit_log":       true,
				"manage_catalog":       true,
			},
			Data: map[string]Scope{
				"rfq":      {Own: true, Others: true},
				"order":    {Own: true, Others: true},
				"supplier": {Own: true, Others: true},
				"audit":    {Own: true, Others: true},
			},
		},
		domain.RoleSupplier: {
			// Suppliers land on the portal view, not a dashboard.
			Dashboards: []string{},
			Screens: []string{
				"SupplierPortal", "RFQDetail",
				"OrderList", "OrderDetail",
				"SupplierDetail", "SupplierForm",
				"NotificationCenter",
			},
			Actions: map[string]bool{
				"view_rfq":              true,
				"submit_quote":          true,
				"view_order":            true,
				"update_order_status":   true,
				"view_supplier_profile": true,
				"edit_supplier_profile": true,
				"view_notification":     true,
				"manage_catalog_items":  true,
			},
			Data: map[string]Scope{
				"rfq":      {Own: false, Others: true},
				"order":    {Own: true, Others: false},
				"supplier": {Own: true, Others: false},
				"audit":    {Own: false, Others: false},
			},
		},
	}
}
