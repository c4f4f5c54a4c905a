package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/nav"
	"tailspend/pkg/platform/httputil"
)

// Service defines the navigation operations the handler needs.
type Service interface {
	Current(ctx context.Context) (nav.Screen, error)
	Navigate(ctx context.Context, target, id, typ string) (nav.Screen, error)
}

// Handler serves the navigation endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the navigation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/navigation", h.handleCurrent)
	r.Post("/navigation", h.handleNavigate)
}

type navigateRequest struct {
	Target string `json:"target"`
	ID     string `json:"id"`
	Type   string `json:"type"`
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	screen, err := h.svc.Current(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, screen)
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[navigateRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	screen, err := h.svc.Navigate(r.Context(), req.Target, req.ID, req.Type)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, screen)
}
