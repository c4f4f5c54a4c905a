// Package httpapi assembles the chi router: public session endpoints plus
// the authenticated API surface behind the session middleware.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tailspend/internal/platform/middleware"
	"tailspend/pkg/platform/httputil"
)

// Registrar is the common shape of the feature handlers: each registers its
// own routes on the router group it is given.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router needs.
type Deps struct {
	Logger    *slog.Logger
	Validator middleware.TokenValidator

	Session Registrar // unauthenticated: /session/*

	// Authenticated feature handlers.
	RFQ          Registrar
	Order        Registrar
	Supplier     Registrar
	Task         Registrar
	Notification Registrar
	Audit        Registrar
	Dashboard    Registrar
	Search       Registrar
	Nav          Registrar
}

// New builds the full router.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	d.Session.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Validator, d.Logger))
		for _, h := range []Registrar{
			d.RFQ, d.Order, d.Supplier, d.Task,
			d.Notification, d.Audit, d.Dashboard, d.Search, d.Nav,
		} {
			h.Register(r)
		}
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
