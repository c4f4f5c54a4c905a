// Package audit captures the append-only trail of who did what. Services
// record entries through it on every successful mutation; the feed applies
// role scoping so callers only see what their role allows.
package audit

import (
	"context"
	"sort"

	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/requestcontext"
)

// Service records and serves audit entries.
type Service struct {
	store Store
	authz *rbac.Engine
}

func NewService(store Store, authz *rbac.Engine) *Service {
	return &Service{store: store, authz: authz}
}

// Record appends one entry. The timestamp defaults to the request time. A
// failed append never blocks the mutation that triggered it; callers decide
// whether to surface the error.
func (s *Service) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Date.IsZero() {
		e.Date = requestcontext.Now(ctx)
	}
	return s.store.Append(ctx, e)
}

// Filter narrows the feed to one entity.
type Filter struct {
	EntityID   string
	EntityType string
}

func (f Filter) match(e Entry) bool {
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if f.EntityType != "" && e.EntityType != f.EntityType {
		return false
	}
	return true
}

// Feed returns the audit trail visible to the caller, newest first.
// Officers see everything; business users see entries they authored;
// suppliers are denied outright.
func (s *Service) Feed(ctx context.Context, f Filter) ([]Entry, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_audit_log") {
		return nil, dErrors.New(dErrors.CodeForbidden, "role cannot view the audit log")
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list audit entries", err)
	}

	scope := s.authz.DataScope(ident.Role, "audit")
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if !f.match(e) {
			continue
		}
		owns := e.By == ident.Name
		if (owns && scope.Own) || (!owns && scope.Others) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
