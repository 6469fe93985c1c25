package feature

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/live"
	"github.com/heartmarshall/featureboard-backend/internal/notify"
)

type featureRepo interface {
	Create(ctx context.Context, fr *domain.FeatureRequest) (*domain.FeatureRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	List(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.FeatureRequest) error) (*domain.FeatureRequest, error)
}

type subscriber interface {
	Subscribe(ctx context.Context, filter domain.FeatureFilter) (*live.Subscription, error)
}

// Service implements the feature request lifecycle: submission, voting,
// admin decisions and live views.
type Service struct {
	log      *slog.Logger
	features featureRepo
	live     subscriber
	trackers *notify.Registry
}

// NewService creates a new feature service.
func NewService(
	logger *slog.Logger,
	features featureRepo,
	live subscriber,
	trackers *notify.Registry,
) *Service {
	return &Service{
		log:      logger.With("service", "feature"),
		features: features,
		live:     live,
		trackers: trackers,
	}
}
