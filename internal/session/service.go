// Package session hands out demo persona identities as signed session
// tokens. There is no credential verification: logging in asserts which
// persona the client is driving.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tailspend/internal/nav"
	"tailspend/internal/platform/middleware"
	dErrors "tailspend/pkg/domain-errors"
	"tailspend/pkg/domain"
)

// Persona is one selectable login identity.
type Persona struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// DefaultPersonas mirrors the demo user list.
func DefaultPersonas() []Persona {
	return []Persona{
		{ID: "bu1", Name: "Alice Smith", Role: domain.RoleBusinessUser},
		{ID: "po1", Name: "Bob Johnson", Role: domain.RoleProcurementOfficer},
		{ID: "s1", Name: "Widgets Inc.", Role: domain.RoleSupplier},
		{ID: "s2", Name: "Innovate Solutions", Role: domain.RoleSupplier},
	}
}

type claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Navigator resets a session's navigation state at login.
type Navigator interface {
	Reset(ctx context.Context, sessionID string, role domain.Role) (nav.Screen, error)
}

// Service issues and validates session tokens for the known personas.
type Service struct {
	personas   map[string]Persona
	order      []string
	signingKey []byte
	ttl        time.Duration
	navigator  Navigator
}

func NewService(personas []Persona, signingKey string, ttl time.Duration, navigator Navigator) *Service {
	s := &Service{
		personas:   make(map[string]Persona, len(personas)),
		signingKey: []byte(signingKey),
		ttl:        ttl,
		navigator:  navigator,
	}
	for _, p := range personas {
		s.personas[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

// Personas lists the selectable identities in declaration order.
func (s *Service) Personas() []Persona {
	out := make([]Persona, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.personas[id])
	}
	return out
}

// Login result: the signed token, the persona it asserts, and the screen the
// client should land on.
type LoginResult struct {
	Token   string     `json:"token"`
	User    Persona    `json:"user"`
	Home    nav.Screen `json:"home"`
	Expires time.Time  `json:"expires"`
}

// Login issues a session token for the named persona and resets its
// navigation stack to the role home.
func (s *Service) Login(ctx context.Context, userID string) (LoginResult, error) {
	p, ok := s.personas[userID]
	if !ok {
		return LoginResult{}, dErrors.Newf(dErrors.CodeNotFound, "unknown persona %s", userID)
	}

	sessionID := uuid.NewString()
	now := time.Now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: p.Name,
		Role: p.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return LoginResult{}, dErrors.Wrap(dErrors.CodeInternal, "sign session token", err)
	}

	home, err := s.navigator.Reset(ctx, sessionID, p.Role)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: signed, User: p, Home: home, Expires: expires}, nil
}

// ValidateToken resolves a bearer token back into the persona identity and
// session ID it was issued for. Satisfies middleware.TokenValidator.
func (s *Service) ValidateToken(token string) (middleware.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return middleware.SessionClaims{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return middleware.SessionClaims{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return middleware.SessionClaims{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return middleware.SessionClaims{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return middleware.SessionClaims{
		Identity:  domain.Identity{ID: c.Subject, Name: c.Name, Role: role},
		SessionID: c.ID,
	}, nil
}
