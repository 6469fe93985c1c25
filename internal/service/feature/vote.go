package feature

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// ToggleVote adds the current user's upvote, or retracts it if present.
// The read and the write happen in one store transaction, so concurrent
// toggles by the same user resolve in some serial order.
func (s *Service) ToggleVote(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	var added bool
	fr, err := s.features.Update(ctx, id, func(fr *domain.FeatureRequest) error {
		added = fr.ToggleVote(userID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle vote: %w", err)
	}

	s.log.InfoContext(ctx, "vote toggled",
		slog.String("user_id", userID),
		slog.String("feature_id", id.String()),
		slog.Bool("added", added),
		slog.Int("upvote_count", fr.UpvoteCount),
	)

	return fr, nil
}
