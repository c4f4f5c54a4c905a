package nav

import (
	"context"

	"tailspend/internal/rbac"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
	"tailspend/pkg/requestcontext"
)

// Service maintains the navigation stack for the calling session.
type Service struct {
	store Store
	authz *rbac.Engine
}

func NewService(store Store, authz *rbac.Engine) *Service {
	return &Service{store: store, authz: authz}
}

// Current returns the screen the session is on. Sessions that have never
// navigated are on their role's home screen.
func (s *Service) Current(ctx context.Context) (Screen, error) {
	ident := requestcontext.Identity(ctx)
	st, ok, err := s.store.Load(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		return Screen{}, err
	}
	if !ok {
		return Home(ident.Role), nil
	}
	return st.Current, nil
}

// Navigate moves the session to the target screen, pushing the current one
// onto the stack. The reserved target "back" pops instead; on an empty stack
// it lands on the role home and further backs stay there.
func (s *Service) Navigate(ctx context.Context, target, id, typ string) (Screen, error) {
	ident := requestcontext.Identity(ctx)
	sessionID := requestcontext.SessionID(ctx)

	st, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Screen{}, err
	}
	if !ok {
		st = State{Current: Home(ident.Role)}
	}

	if target == Back {
		if n := len(st.Stack); n > 0 {
			st.Current = st.Stack[n-1]
			st.Stack = st.Stack[:n-1]
		} else {
			st.Current = Home(ident.Role)
		}
		if err := s.store.Save(ctx, sessionID, st); err != nil {
			return Screen{}, err
		}
		return st.Current, nil
	}

	next := Screen{Name: target, ID: id, Type: typ}
	if !s.allowed(ident.Role, next) {
		return Screen{}, dErrors.Newf(dErrors.CodeForbidden, "role cannot open screen %s", target)
	}
	st.Stack = append(st.Stack, st.Current)
	st.Current = next
	if err := s.store.Save(ctx, sessionID, st); err != nil {
		return Screen{}, err
	}
	return st.Current, nil
}

// Reset clears the stack for a session and lands it on the role home. Called
// on login, before the session has an authenticated context.
func (s *Service) Reset(ctx context.Context, sessionID string, role domain.Role) (Screen, error) {
	home := Home(role)
	if err := s.store.Save(ctx, sessionID, State{Current: home}); err != nil {
		return Screen{}, err
	}
	return home, nil
}

// The home screens are navigable by the roles they belong to even though the
// rule table lists them as dashboards rather than screens.
func (s *Service) allowed(role domain.Role, target Screen) bool {
	if target == Home(role) {
		return true
	}
	return s.authz.CanAccessScreen(role, target.Name)
}
