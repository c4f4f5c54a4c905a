// Package seed loads the demo fixture set: RFQs, orders, suppliers, tasks,
// notifications and audit entries, so every persona logs in to a populated
// workspace.
package seed

import (
	"time"

	"tailspend/internal/audit"
	"tailspend/internal/notification"
	"tailspend/internal/order"
	"tailspend/internal/rfq"
	"tailspend/internal/supplier"
	"tailspend/internal/task"
	"tailspend/pkg/domain"
)

// Stores collects the in-memory stores the fixtures are loaded into.
type Stores struct {
	RFQs          *rfq.InMemoryStore
	Orders        *order.InMemoryStore
	Suppliers     *supplier.InMemoryStore
	Tasks         *task.Store
	Notifications *notification.InMemoryStore
	Audit         *audit.InMemoryStore
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// Load seeds all fixtures. Store sequences advance past the seeded IDs so
// records created afterwards do not collide.
func Load(st Stores) {
	seedRFQs(st.RFQs)
	seedOrders(st.Orders)
	seedSuppliers(st.Suppliers)
	seedTasks(st.Tasks)
	seedNotifications(st.Notifications)
	seedAudit(st.Audit)
}

func seedRFQs(store *rfq.InMemoryStore) {
	store.SeedRFQ(rfq.RFQ{
		ID:            "RFQ-001",
		Title:         "Office Supplies Bulk Order",
		Description:   "Procurement of general office stationery for Q3.",
		RequestedBy:   "bu1",
		Status:        rfq.StatusPendingApproval,
		Category:      "Office Supplies",
		RequestedDate: day("2023-10-26"),
		DueDate:       day("2023-11-05"),
		Items: []domain.ItemLine{
			{Name: "A4 Printer Paper", Qty: 50, Unit: "reams"},
			{Name: "Black Ink Cartridges", Qty: 10, Unit: "units"},
		},
		History: []domain.HistoryEntry{
			{Status: rfq.StatusCreated, Date: day("2023-10-26"), By: "Alice Smith"},
			{Status: rfq.StatusPendingApproval, Date: day("2023-10-27"), By: "System"},
		},
		AssignedPO: "po1",
	})
	store.SeedRFQ(rfq.RFQ{
		ID:            "RFQ-002",
		Title:         "New Server Rack Installation",
		Description:   "Request for quotation for a new server rack and installation services.",
		RequestedBy:   "bu1",
		Status:        rfq.StatusApproved,
		Category:      "IT Equipment",
		RequestedDate: day("2023-10-20"),
		DueDate:       day("2023-11-10"),
		Items: []domain.ItemLine{
			{Name: "42U Server Rack", Qty: 1, Unit: "unit"},
			{Name: "Installation Service", Qty: 1, Unit: "service"},
		},
		Quotes: []rfq.Quote{
			{SupplierID: "s1", Amount: 12500, Status: rfq.QuoteSubmitted, SubmissionDate: day("2023-10-25")},
		},
		History: []domain.HistoryEntry{
			{Status: rfq.StatusCreated, Date: day("2023-10-20"), By: "Alice Smith"},
			{Status: rfq.StatusPendingApproval, Date: day("2023-10-21"), By: "System"},
			{Status: rfq.StatusApproved, Date: day("2023-10-22"), By: "Bob Johnson"},
			{Status: rfq.StatusQuotationReceived, Date: day("2023-10-25"), By: "Widgets Inc."},
		},
		RelatedOrderID: "ORD-001",
		AssignedPO:     "po1",
	})
	store.SeedRFQ(rfq.RFQ{
		ID:            "RFQ-003",
		Title:         "Custom Software Development",
		Description:   "RFQ for a custom CRM module for sales team.",
		RequestedBy:   "bu1",
		Status:        rfq.StatusDraft,
		Category:      "Software",
		RequestedDate: day("2023-11-01"),
		DueDate:       day("2023-11-15"),
		Items: []domain.ItemLine{
			{Name: "Discovery & Requirements", Qty: 1, Unit: "phase"},
			{Name: "Development Sprints", Qty: 3, Unit: "sprints"},
		},
		History: []domain.HistoryEntry{
			{Status: rfq.StatusDraft, Date: day("2023-11-01"), By: "Alice Smith"},
		},
		AssignedPO: "po1",
	})
	store.SeedRFQ(rfq.RFQ{
		ID:            "RFQ-004",
		Title:         "Marketing Material Printing",
		Description:   "Printing of brochures and business cards for upcoming event.",
		RequestedBy:   "bu1",
		Status:        rfq.StatusRejected,
		Category:      "Marketing",
		RequestedDate: day("2023-10-15"),
		DueDate:       day("2023-10-25"),
		Items: []domain.ItemLine{
			{Name: "A5 Brochures", Qty: 500, Unit: "units"},
			{Name: "Business Cards", Qty: 200, Unit: "units"},
		},
		History: []domain.HistoryEntry{
			{Status: rfq.StatusCreated, Date: day("2023-10-15"), By: "Alice Smith"},
			{Status: rfq.StatusPendingApproval, Date: day("2023-10-16"), By: "System"},
			{Status: rfq.StatusRejected, Date: day("2023-10-17"), By: "Bob Johnson", Reason: "Budget constraints"},
		},
		AssignedPO: "po1",
	})
	store.SeedRFQ(rfq.RFQ{
		ID:            "RFQ-005",
		Title:         "Facility Maintenance Services",
		Description:   "Quarterly contract for office cleaning and minor repairs.",
		RequestedBy:   "bu1",
		Status:        rfq.StatusQuotationReceived,
		Category:      "Facilities",
		RequestedDate: day("2023-10-28"),
		DueDate:       day("2023-11-08"),
		Items: []domain.ItemLine{
			{Name: "Janitorial Service", Qty: 1, Unit: "contract"},
		},
		Quotes: []rfq.Quote{
			{SupplierID: "s2", Amount: 3000, Status: rfq.QuoteSubmitted, SubmissionDate: day("2023-11-02")},
		},
		History: []domain.HistoryEntry{
			{Status: rfq.StatusCreated, Date: day("2023-10-28"), By: "Alice Smith"},
			{Status: rfq.StatusPendingApproval, Date: day("2023-10-29"), By: "System"},
			{Status: rfq.StatusApproved, Date: day("2023-10-30"), By: "Bob Johnson"},
			{Status: rfq.StatusQuotationReceived, Date: day("2023-11-02"), By: "Innovate Solutions"},
		},
		AssignedPO: "po1",
	})
}

func seedOrders(store *order.InMemoryStore) {
	store.SeedOrder(order.Order{
		ID:             "ORD-001",
		RFQID:          "RFQ-002",
		Title:          "Server Rack & Installation",
		RequestedBy:    "bu1",
		SupplierID:     "s1",
		Status:         order.StatusIroning,
		PONumber:       "PO-2023-001",
		OrderDate:      day("2023-10-22"),
		DeliveryDate:   day("2023-11-15"),
		Price:          12500,
		Currency:       "USD",
		DeliveryOption: order.DeliverySupplier,
		Items: []domain.ItemLine{
			{Name: "42U Server Rack", Qty: 1, Unit: "unit"},
			{Name: "Installation Service", Qty: 1, Unit: "service"},
		},
		History: []domain.HistoryEntry{
			{Status: order.StatusPOIssued, Date: day("2023-10-22"), By: "Bob Johnson"},
			{Status: order.StatusAccepted, Date: day("2023-10-23"), By: "Widgets Inc."},
			{Status: order.StatusIroning, Date: day("2023-10-25"), By: "Widgets Inc."},
		},
		AuditLogs: []order.LogEntry{
			{Action: "Order Status Changes", Details: "Status changed from PO_ISSUED to ACCEPTED", By: "Widgets Inc.", Date: day("2023-10-23")},
			{Action: "Order Status Changes", Details: "Status changed from ACCEPTED to IRONING", By: "Widgets Inc.", Date: day("2023-10-25")},
		},
	})
	store.SeedOrder(order.Order{
		ID:             "ORD-002",
		RFQID:          "RFQ-005",
		Title:          "Facility Maintenance Contract",
		RequestedBy:    "bu1",
		SupplierID:     "s2",
		Status:         order.StatusPendingApproval,
		OrderDate:      day("2023-11-03"),
		DeliveryDate:   day("2023-11-10"),
		Price:          3000,
		Currency:       "USD",
		DeliveryOption: order.DeliveryService,
		Items: []domain.ItemLine{
			{Name: "Janitorial Service", Qty: 1, Unit: "contract"},
		},
		History: []domain.HistoryEntry{
			{Status: rfq.StatusQuotationReceived, Date: day("2023-11-02"), By: "Innovate Solutions"},
			{Status: order.StatusPendingApproval, Date: day("2023-11-03"), By: "System (PO Review)"},
		},
		AuditLogs: []order.LogEntry{
			{Action: "Pricing Changes", Details: "Initial price of $3000 set based on quote", By: "System", Date: day("2023-11-03")},
		},
	})
	store.SeedOrder(order.Order{
		ID:             "ORD-003",
		Title:          "Ad-hoc Emergency Repair",
		RequestedBy:    "po1",
		SupplierID:     "s1",
		Status:         order.StatusReady,
		PONumber:       "PO-2023-002",
		OrderDate:      day("2023-10-30"),
		DeliveryDate:   day("2023-11-02"),
		Price:          500,
		Currency:       "USD",
		DeliveryOption: order.DeliveryPicked,
		Items: []domain.ItemLine{
			{Name: "Emergency HVAC Filter", Qty: 2, Unit: "units"},
		},
		History: []domain.HistoryEntry{
			{Status: order.StatusPOIssued, Date: day("2023-10-30"), By: "Bob Johnson"},
			{Status: order.StatusAccepted, Date: day("2023-10-30"), By: "Widgets Inc."},
			{Status: order.StatusIroning, Date: day("2023-10-31"), By: "Widgets Inc."},
			{Status: order.StatusReady, Date: day("2023-11-01"), By: "Widgets Inc."},
		},
		AuditLogs: []order.LogEntry{
			{Action: "Order Status Changes", Details: "Status changed to READY for pickup", By: "Widgets Inc.", Date: day("2023-11-01")},
			{Action: "Delivery Option", Details: "Changed to Customer Picked", By: "Bob Johnson", Date: day("2023-10-30")},
		},
	})
	store.SeedOrder(order.Order{
		ID:             "ORD-004",
		Title:          "Quarterly Stationery Stock",
		RequestedBy:    "bu1",
		SupplierID:     "s2",
		Status:         order.StatusDelivered,
		PONumber:       "PO-2023-003",
		OrderDate:      day("2023-09-10"),
		DeliveryDate:   day("2023-09-15"),
		Price:          850,
		Currency:       "USD",
		DeliveryOption: order.DeliverySupplier,
		Items: []domain.ItemLine{
			{Name: "Pens (Box of 100)", Qty: 5, Unit: "boxes"},
			{Name: "Notebooks (A5)", Qty: 20, Unit: "units"},
		},
		History: []domain.HistoryEntry{
			{Status: order.StatusPOIssued, Date: day("2023-09-10"), By: "Bob Johnson"},
			{Status: order.StatusAccepted, Date: day("2023-09-11"), By: "Innovate Solutions"},
			{Status: order.StatusIroning, Date: day("2023-09-12"), By: "Innovate Solutions"},
			{Status: order.StatusReady, Date: day("2023-09-14"), By: "Innovate Solutions"},
			{Status: order.StatusDelivered, Date: day("2023-09-15"), By: "Innovate Solutions"},
		},
		AuditLogs: []order.LogEntry{
			{Action: "Order Status Changes", Details: "Status changed to DELIVERED", By: "Innovate Solutions", Date: day("2023-09-15")},
		},
	})
	store.SeedOrder(order.Order{
		ID:             "ORD-005",
		Title:          "Consulting Services Contract",
		RequestedBy:    "po1",
		SupplierID:     "s2",
		Status:         order.StatusCompleted,
		PONumber:       "PO-2023-004",
		OrderDate:      day("2023-08-01"),
		DeliveryDate:   day("2023-08-31"),
		Price:          15000,
		Currency:       "USD",
		DeliveryOption: order.DeliveryService,
		Items: []domain.ItemLine{
			{Name: "Project Management Consulting", Qty: 1, Unit: "month"},
		},
		History: []domain.HistoryEntry{
			{Status: order.StatusPOIssued, Date: day("2023-08-01"), By: "Bob Johnson"},
			{Status: order.StatusAccepted, Date: day("2023-08-02"), By: "Innovate Solutions"},
			{Status: order.StatusIroning, Date: day("2023-08-05"), By: "Innovate Solutions"},
			{Status: order.StatusCompleted, Date: day("2023-08-31"), By: "Innovate Solutions"},
		},
		AuditLogs: []order.LogEntry{
			{Action: "Order Status Changes", Details: "Status changed to COMPLETED", By: "Innovate Solutions", Date: day("2023-08-31")},
		},
	})
}

func seedSuppliers(store *supplier.InMemoryStore) {
	store.SeedSupplier(supplier.Supplier{
		ID: "s1", Name: "Widgets Inc.", Status: supplier.StatusActive,
		ContactPerson: "John Doe", Email: "john.doe@widgetsinc.com",
		Phone: "555-123-4567", Address: "123 Widget Way, Tech City",
		RegistrationDate: day("2022-01-15"), LastActivity: day("2023-11-02"),
		Compliance: "Compliant",
		Documents:  []string{"Business License.pdf", "Tax ID.pdf"},
	})
	store.SeedSupplier(supplier.Supplier{
		ID: "s2", Name: "Innovate Solutions", Status: supplier.StatusActive,
		ContactPerson: "Jane Smith", Email: "jane.smith@innovatesolutions.com",
		Phone: "555-987-6543", Address: "456 Innovation Blvd, Startup Town",
		RegistrationDate: day("2022-03-20"), LastActivity: day("2023-11-01"),
		Compliance: "Compliant",
		Documents:  []string{"Company Profile.pdf", "Insurance.pdf"},
	})
	store.SeedSupplier(supplier.Supplier{
		ID: "s3", Name: "Global Supply Co.", Status: supplier.StatusOnboarding,
		ContactPerson: "Michael Brown", Email: "michael.brown@globalsupply.com",
		Phone: "555-555-1111", Address: "789 Supply Chain Rd, Logistics Hub",
		RegistrationDate: day("2023-10-01"), LastActivity: day("2023-10-15"),
		Compliance: "Pending Documents",
		Documents:  []string{"Application Form.pdf"},
	})
	store.SeedSupplier(supplier.Supplier{
		ID: "s4", Name: "Eco-Friendly Products", Status: supplier.StatusInactive,
		ContactPerson: "Emily White", Email: "emily.white@ecofriendly.com",
		Phone: "555-333-2222", Address: "101 Green St, Eco Village",
		RegistrationDate: day("2021-06-01"), LastActivity: day("2022-05-10"),
		Compliance: "Expired Certifications",
		Documents:  []string{"Eco Cert.pdf"},
	})
	store.SeedSupplier(supplier.Supplier{
		ID: "s5", Name: "Local Builders Ltd.", Status: supplier.StatusActive,
		ContactPerson: "David Green", Email: "david.green@localbuilders.com",
		Phone: "555-444-3333", Address: "202 Construction Way, Buildsville",
		RegistrationDate: day("2023-01-01"), LastActivity: day("2023-09-20"),
		Compliance: "Compliant",
		Documents:  []string{"Contract.pdf"},
	})
}

func seedTasks(store *task.Store) {
	store.SeedTask(task.Task{ID: "T-001", Type: "RFQ Approval", Title: "Approve RFQ-001", AssignedTo: "po1", DueDate: day("2023-11-03"), Status: task.StatusPending, EntityID: "RFQ-001", EntityType: "RFQ"})
	store.SeedTask(task.Task{ID: "T-002", Type: "Submit Quote", Title: "Submit Quote for RFQ-005", AssignedTo: "s2", DueDate: day("2023-11-05"), Status: task.StatusPending, EntityID: "RFQ-005", EntityType: "RFQ"})
	store.SeedTask(task.Task{ID: "T-003", Type: "PO Issue", Title: "Issue PO for RFQ-005", AssignedTo: "po1", DueDate: day("2023-11-04"), Status: task.StatusCompleted, EntityID: "ORD-002", EntityType: "Order"})
	store.SeedTask(task.Task{ID: "T-004", Type: "Supplier Onboarding", Title: "Review Supplier S3 documents", AssignedTo: "po1", DueDate: day("2023-11-06"), Status: task.StatusPending, EntityID: "s3", EntityType: "Supplier"})
	store.SeedTask(task.Task{ID: "T-005", Type: "RFQ Revision", Title: "Revise RFQ-003 details", AssignedTo: "bu1", DueDate: day("2023-11-08"), Status: task.StatusPending, EntityID: "RFQ-003", EntityType: "RFQ"})
	store.SeedTask(task.Task{ID: "T-006", Type: "Update Order Status", Title: "Mark ORD-001 as Ready", AssignedTo: "s1", DueDate: day("2023-11-10"), Status: task.StatusPending, EntityID: "ORD-001", EntityType: "Order"})
}

func seedNotifications(store *notification.InMemoryStore) {
	store.SeedNotification(notification.Notification{ID: "N-001", UserID: "bu1", Message: "Your RFQ-001 is pending approval by Procurement.", Type: notification.LevelInfo, Date: ts("2023-11-02T10:00:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-002", UserID: "po1", Message: "New RFQ-001 requires your approval.", Type: notification.LevelWarning, Date: ts("2023-11-02T10:05:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-003", UserID: "s2", Message: "RFQ-005 requires a quote from Innovate Solutions.", Type: notification.LevelWarning, Date: ts("2023-11-02T10:10:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-004", UserID: "bu1", Message: "RFQ-002 has been approved and PO-2023-001 issued.", Type: notification.LevelSuccess, Read: true, Date: ts("2023-10-22T14:30:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-005", UserID: "s1", Message: "Order ORD-001 status updated to IRONING.", Type: notification.LevelInfo, Read: true, Date: ts("2023-10-25T09:00:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-006", UserID: "po1", Message: "Supplier S3 onboarding documents are pending review.", Type: notification.LevelError, Date: ts("2023-11-01T16:00:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-007", UserID: "bu1", Message: "Your RFQ-004 was rejected due to budget constraints.", Type: notification.LevelError, Date: ts("2023-10-17T11:00:00Z")})
	store.SeedNotification(notification.Notification{ID: "N-008", UserID: "s1", Message: "Order ORD-003 is READY for customer pickup.", Type: notification.LevelSuccess, Date: ts("2023-11-01T15:00:00Z")})
}

func seedAudit(store *audit.InMemoryStore) {
	store.SeedEntry(audit.Entry{ID: "AL-001", EntityType: "RFQ", EntityID: "RFQ-001", Action: "Status Changed", Details: "Status updated to PENDING_APPROVAL", By: "Alice Smith", Role: domain.RoleBusinessUser, Date: ts("2023-10-27T10:00:00Z")})
	store.SeedEntry(audit.Entry{ID: "AL-002", EntityType: "RFQ", EntityID: "RFQ-002", Action: "Approved", Details: "RFQ approved, PO can be issued", By: "Bob Johnson", Role: domain.RoleProcurementOfficer, Date: ts("2023-10-22T14:00:00Z")})
	store.SeedEntry(audit.Entry{ID: "AL-003", EntityType: "Order", EntityID: "ORD-001", Action: "Order Status Changes", Details: "Status changed from PO_ISSUED to ACCEPTED", By: "Widgets Inc.", Role: domain.RoleSupplier, Date: ts("2023-10-23T09:00:00Z")})
	store.SeedEntry(audit.Entry{ID: "AL-004", EntityType: "Order", EntityID: "ORD-001", Action: "Delivery Option", Details: "Delivery option confirmed as Supplier Delivery", By: "Widgets Inc.", Role: domain.RoleSupplier, Date: ts("2023-10-23T09:15:00Z")})
	store.SeedEntry(audit.Entry{ID: "AL-005", EntityType: "Supplier", EntityID: "s3", Action: "Supplier Onboarding Started", Details: "New supplier registration initiated", By: "Bob Johnson", Role: domain.RoleProcurementOfficer, Date: ts("2023-10-01T11:00:00Z")})
	store.SeedEntry(audit.Entry{ID: "AL-006", EntityType: "RFQ", EntityID: "RFQ-004", Action: "Rejected", Details: "RFQ rejected due to budget constraints", By: "Bob Johnson", Role: domain.RoleProcurementOfficer, Date: ts("2023-10-17T11:00:00Z")})
	store.SeedEntry(audit.Entry{ID: "AL-007", EntityType: "Order", EntityID: "ORD-003", Action: "Order Status Changes", Details: "Status changed to READY for pickup", By: "Widgets Inc.", Role: domain.RoleSupplier, Date: ts("2023-11-01T15:00:00Z")})
}
