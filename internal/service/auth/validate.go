package auth

import (
	"context"
	"fmt"

	"github.com/heartmarshall/featureboard-backend/internal/auth"
	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// ValidateToken checks the access token signature and claims, then rejects
// sessions that were signed out. A store failure is returned as is so the
// caller can tell it apart from a bad token.
func (s *Service) ValidateToken(ctx context.Context, token string) (auth.Identity, error) {
	id, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return auth.Identity{}, domain.ErrNotAuthenticated
	}

	revoked, err := s.tokens.IsTokenRevoked(ctx, id.TokenID)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return auth.Identity{}, domain.ErrNotAuthenticated
	}

	return id, nil
}
