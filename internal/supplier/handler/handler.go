package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/supplier"
	"tailspend/pkg/platform/httputil"
)

// Service defines the supplier operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]supplier.Supplier, error)
	Get(ctx context.Context, id string) (supplier.Supplier, error)
	Onboard(ctx context.Context, in supplier.OnboardInput) (supplier.Supplier, error)
	Update(ctx context.Context, id string, in supplier.UpdateInput) (supplier.Supplier, error)
}

// Handler serves the supplier endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the supplier routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/suppliers", h.handleList)
	r.Post("/suppliers", h.handleOnboard)
	r.Get("/suppliers/{id}", h.handleGet)
	r.Put("/suppliers/{id}", h.handleUpdate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"suppliers": items})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sup, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sup)
}

func (h *Handler) handleOnboard(w http.ResponseWriter, r *http.Request) {
	in, err := httputil.Decode[supplier.OnboardInput](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sup, err := h.svc.Onboard(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, sup)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := httputil.Decode[supplier.UpdateInput](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sup, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sup)
}
