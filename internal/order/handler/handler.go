package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/order"
	"tailspend/pkg/platform/httputil"
	"tailspend/pkg/requestcontext"
)

// Service defines the order operations the handler needs.
type Service interface {
	List(ctx context.Context, query string) ([]order.Order, error)
	Get(ctx context.Context, id string) (order.Order, error)
	Create(ctx context.Context, in order.CreateInput) (order.Order, error)
	Update(ctx context.Context, id string, in order.UpdateInput) (order.Order, error)
	Transition(ctx context.Context, id, action string) (order.Order, error)
}

// Handler serves the order endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the order routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/orders", h.handleList)
	r.Post("/orders", h.handleCreate)
	r.Get("/orders/{id}", h.handleGet)
	r.Put("/orders/{id}", h.handleUpdate)
	r.Post("/orders/{id}/transitions", h.handleTransition)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"orders": items})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := httputil.Decode[order.CreateInput](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, out)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := httputil.Decode[order.UpdateInput](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type transitionRequest struct {
	Action string `json:"action"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[transitionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.svc.Transition(ctx, chi.URLParam(r, "id"), req.Action)
	if err != nil {
		h.logger.WarnContext(ctx, "order transition rejected",
			"request_id", requestcontext.RequestID(ctx),
			"order_id", chi.URLParam(r, "id"),
			"action", req.Action,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
