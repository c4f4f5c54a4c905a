// Package notification delivers per-user messages emitted by lifecycle
// transitions. Emission is best-effort from the caller's point of view; a
// transition never fails because a notification could not be stored.
package notification

import (
	"context"
	"sort"

	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/requestcontext"
)

// Service emits and serves notifications.
type Service struct {
	store Store
	authz *rbac.Engine
}

func NewService(store Store, authz *rbac.Engine) *Service {
	return &Service{store: store, authz: authz}
}

// Emit stores a message for one user. The timestamp defaults to the request
// time.
func (s *Service) Emit(ctx context.Context, userID, message string, level Level) (Notification, error) {
	n := Notification{
		UserID:  userID,
		Message: message,
		Type:    level,
		Date:    requestcontext.Now(ctx),
	}
	return s.store.Append(ctx, n)
}

// Feed returns the caller's notifications, newest first.
func (s *Service) Feed(ctx context.Context) ([]Notification, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_notification") {
		return nil, dErrors.New(dErrors.CodeForbidden, "role cannot view notifications")
	}
	items, err := s.store.ListByUser(ctx, ident.ID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list notifications", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

// MarkRead marks one of the caller's notifications as read.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_notification") {
		return dErrors.New(dErrors.CodeForbidden, "role cannot view notifications")
	}
	return s.store.MarkRead(ctx, ident.ID, id)
}

// MarkAllRead marks all of the caller's unread notifications as read and
// reports how many changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	ident := requestcontext.Identity(ctx)
	if !s.authz.CanAccessAction(ident.Role, "view_notification") {
		return 0, dErrors.New(dErrors.CodeForbidden, "role cannot view notifications")
	}
	return s.store.MarkAllRead(ctx, ident.ID)
}
