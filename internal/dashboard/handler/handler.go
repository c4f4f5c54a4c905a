package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/dashboard"
	"tailspend/pkg/platform/httputil"
)

// Service defines the dashboard operation the handler needs.
type Service interface {
	Overview(ctx context.Context) (dashboard.Overview, error)
}

// Handler serves the dashboard endpoint.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the dashboard route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/dashboard", h.handleOverview)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Overview(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
