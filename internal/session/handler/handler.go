package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tailspend/internal/session"
	"tailspend/pkg/platform/httputil"
	"tailspend/pkg/requestcontext"
)

// Service defines the session operations the handler needs.
type Service interface {
	Personas() []session.Persona
	Login(ctx context.Context, userID string) (session.LoginResult, error)
}

// Handler serves the unauthenticated session endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register registers the session routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/session/personas", h.handlePersonas)
	r.Post("/session/login", h.handleLogin)
}

type loginRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) handlePersonas(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"personas": h.svc.Personas()})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := httputil.Decode[loginRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.svc.Login(ctx, req.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "login rejected",
			"user_id", req.UserID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
