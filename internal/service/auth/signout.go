package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// SignOut revokes the current session's token until it would have expired
// and drops the session's notification state.
func (s *Service) SignOut(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrNotAuthenticated
	}
	sessionID := ctxutil.SessionIDFromCtx(ctx)
	if sessionID == "" {
		return domain.ErrNotAuthenticated
	}

	expiresAt := ctxutil.SessionExpiryFromCtx(ctx)
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.cfg.AccessTokenTTL)
	}

	if err := s.tokens.RevokeToken(ctx, sessionID, expiresAt); err != nil {
		s.log.ErrorContext(ctx, "sign out failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", domain.ErrSignOutFailed, err)
	}
	s.sessions.Forget(sessionID)

	s.log.InfoContext(ctx, "user signed out", slog.String("user_id", userID))
	return nil
}

// CleanupExpiredRevocations removes revocations whose tokens have expired.
// Returns the number of rows deleted. This is a maintenance operation.
func (s *Service) CleanupExpiredRevocations(ctx context.Context) (int64, error) {
	count, err := s.tokens.DeleteExpiredRevocations(ctx, time.Now())
	if err != nil {
		s.log.ErrorContext(ctx, "revocation cleanup failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("auth.CleanupExpiredRevocations: %w", err)
	}

	if count > 0 {
		s.log.InfoContext(ctx, "cleaned up expired revocations", slog.Int64("count", count))
	}

	return count, nil
}
