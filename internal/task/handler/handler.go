package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/task"
	"tailspend/pkg/platform/httputil"
)

// Service defines the task operations the handler needs.
type Service interface {
	ListMine(ctx context.Context) ([]task.Task, error)
	Complete(ctx context.Context, id string) (task.Task, error)
}

// Handler serves the task list endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the task routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/tasks", h.handleList)
	r.Post("/tasks/{id}/complete", h.handleComplete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMine(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"tasks": items})
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, t)
}
