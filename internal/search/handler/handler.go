package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/search"
	"tailspend/pkg/platform/httputil"
)

//go:generate mockgen -source=handler.go -destination=mock/handler.go -package=mock

// Service defines the search operation the handler needs.
type Service interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Handler serves the global search endpoint.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the search route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/search", h.handleSearch)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
}
