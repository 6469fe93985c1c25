package feature

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// Decide moves a feature request along the approval workflow. Only admins
// may decide. The edge is checked against the locked stored status, so two
// admins racing cannot both succeed with conflicting decisions.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, input DecideInput) (*domain.FeatureRequest, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	to := domain.Status(strings.TrimSpace(input.Status))

	var from domain.Status
	fr, err := s.features.Update(ctx, id, func(fr *domain.FeatureRequest) error {
		from = fr.Status
		return fr.Transition(to)
	})
	if err != nil {
		return nil, fmt.Errorf("decide feature request: %w", err)
	}

	s.log.InfoContext(ctx, "feature request status changed",
		slog.String("admin_id", userID),
		slog.String("feature_id", id.String()),
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)

	return fr, nil
}
