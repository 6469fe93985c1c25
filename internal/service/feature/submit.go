package feature

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// Submit creates a pending feature request owned by the current user.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.FeatureRequest, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	categories, err := domain.ParseCategories(input.Categories)
	if err != nil {
		return nil, err
	}

	fr, err := s.features.Create(ctx, &domain.FeatureRequest{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Categories:  categories,
		Status:      domain.StatusPending,
		SubmittedBy: userID,
		CreatedAt:   time.Now().UTC(),
		UpvoteCount: 0,
		UpvotedBy:   []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("create feature request: %w", err)
	}

	s.log.InfoContext(ctx, "feature request submitted",
		slog.String("user_id", userID),
		slog.String("feature_id", fr.ID.String()),
	)

	return fr, nil
}
