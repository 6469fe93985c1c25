package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/featureboard-backend/internal/auth"
	"github.com/heartmarshall/featureboard-backend/internal/config"
)

// tokenStore defines the revocation store needed by auth service.
type tokenStore interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

// jwtManager defines the JWT validation needed by auth service.
type jwtManager interface {
	ValidateAccessToken(token string) (auth.Identity, error)
}

// sessionForgetter drops per-session state when a session ends.
type sessionForgetter interface {
	Forget(sessionID string)
}

// Service implements the identity boundary: token validation and sign-out.
type Service struct {
	log      *slog.Logger
	tokens   tokenStore
	jwt      jwtManager
	sessions sessionForgetter
	cfg      config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	tokens tokenStore,
	jwt jwtManager,
	sessions sessionForgetter,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		tokens:   tokens,
		jwt:      jwt,
		sessions: sessions,
		cfg:      cfg,
	}
}
