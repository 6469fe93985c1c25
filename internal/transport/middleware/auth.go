package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/featureboard-backend/internal/auth"
	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// accessTokenParam carries the token on WebSocket upgrades, where browsers
// cannot set an Authorization header.
const accessTokenParam = "access_token"

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Auth resolves the bearer token into a request identity. Requests without a
// token pass through anonymously; handlers decide whether that is enough.
func Auth(validator tokenValidator, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" && isWebSocketUpgrade(r) {
				token = strings.TrimSpace(r.URL.Query().Get(accessTokenParam))
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrNotAuthenticated) {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				logger.ErrorContext(r.Context(), "token validation failed", slog.String("error", err.Error()))
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			ctx := ctxutil.WithUserID(r.Context(), id.UserID)
			ctx = ctxutil.WithUserRole(ctx, id.Role)
			ctx = ctxutil.WithSessionID(ctx, id.TokenID)
			ctx = ctxutil.WithSessionExpiry(ctx, id.ExpiresAt)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
