package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/rfq"
	"tailspend/pkg/platform/httputil"
	"tailspend/pkg/requestcontext"
)

// Service defines the RFQ operations the handler needs.
type Service interface {
	List(ctx context.Context, query string) ([]rfq.RFQ, error)
	Get(ctx context.Context, id string) (rfq.RFQ, error)
	Create(ctx context.Context, in rfq.CreateInput) (rfq.RFQ, error)
	Update(ctx context.Context, id string, in rfq.UpdateInput) (rfq.RFQ, error)
	Transition(ctx context.Context, id, action string, in rfq.TransitionInput) (rfq.RFQ, error)
	SubmitQuote(ctx context.Context, id string, amount float64) (rfq.RFQ, error)
	AcceptQuote(ctx context.Context, id, supplierID string) (rfq.RFQ, error)
}

// Handler serves the RFQ endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the RFQ routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/rfqs", h.handleList)
	r.Post("/rfqs", h.handleCreate)
	r.Get("/rfqs/{id}", h.handleGet)
	r.Put("/rfqs/{id}", h.handleUpdate)
	r.Post("/rfqs/{id}/transitions", h.handleTransition)
	r.Post("/rfqs/{id}/quotes", h.handleSubmitQuote)
	r.Post("/rfqs/{id}/quotes/accept", h.handleAcceptQuote)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"rfqs": items})
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
	in, err := httputil.Decode[rfq.CreateInput](r)
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
	in, err := httputil.Decode[rfq.UpdateInput](r)
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
	Reason string `json:"reason"`
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[transitionRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.svc.Transition(ctx, chi.URLParam(r, "id"), req.Action, rfq.TransitionInput{Reason: req.Reason})
	if err != nil {
		h.logger.WarnContext(ctx, "rfq transition rejected",
			"request_id", requestcontext.RequestID(ctx),
			"rfq_id", chi.URLParam(r, "id"),
			"action", req.Action,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type submitQuoteRequest struct {
	Amount float64 `json:"quoteAmount"`
}

func (h *Handler) handleSubmitQuote(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[submitQuoteRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.svc.SubmitQuote(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

type acceptQuoteRequest struct {
	SupplierID string `json:"supplierId"`
}

func (h *Handler) handleAcceptQuote(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[acceptQuoteRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.svc.AcceptQuote(r.Context(), chi.URLParam(r, "id"), req.SupplierID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
