package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/notification"
	"tailspend/pkg/platform/httputil"
)

// Service defines the notification operations the handler needs.
type Service interface {
	Feed(ctx context.Context) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) (int, error)
}

// Handler serves the notification center endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the notification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.handleFeed)
	r.Post("/notifications/read", h.handleMarkRead)
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Feed(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"notifications": items})
}

type markReadRequest struct {
	ID string `json:"id"`
}

// handleMarkRead marks one notification read, or all of them when no ID is
// given.
func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[markReadRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.ID == "" {
		n, err := h.svc.MarkAllRead(r.Context())
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]int{"marked": n})
		return
	}
	if err := h.svc.MarkRead(r.Context(), req.ID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"marked": 1})
}
