package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/audit"
	"tailspend/pkg/platform/httputil"
	"tailspend/pkg/requestcontext"
)

// Service defines the audit operations the handler needs.
type Service interface {
	Feed(ctx context.Context, f audit.Filter) ([]audit.Entry, error)
}

// Handler serves the audit log feed.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the audit routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit", h.handleFeed)
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f := audit.Filter{
		EntityID:   r.URL.Query().Get("entity_id"),
		EntityType: r.URL.Query().Get("entity_type"),
	}
	entries, err := h.svc.Feed(ctx, f)
	if err != nil {
		h.logger.WarnContext(ctx, "audit feed denied",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
