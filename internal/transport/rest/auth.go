package rest

import (
	"context"
	"log/slog"
	"net/http"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	SignOut(ctx context.Context) error
}

// AuthHandler serves session endpoints. Tokens are issued by the identity
// provider, so only sign-out lives here.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

// SignOut handles POST /auth/signout.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SignOut(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
