package feature

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/view"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// Get returns a single feature request. Pending and rejected records are
// visible only to admins and their submitter; anyone else gets ErrNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	fr, err := s.features.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get feature request: %w", err)
	}
	if !canSee(ctx, fr) {
		return nil, fmt.Errorf("get feature request: %w", domain.ErrNotFound)
	}
	return fr, nil
}

func canSee(ctx context.Context, fr *domain.FeatureRequest) bool {
	switch fr.Status {
	case domain.StatusApproved, domain.StatusDone:
		return true
	}
	if ctxutil.IsAdminCtx(ctx) {
		return true
	}
	viewer, ok := ctxutil.UserIDFromCtx(ctx)
	return ok && fr.SubmittedBy != "" && fr.SubmittedBy == viewer
}

// List returns the composed view for the current caller.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.FeatureRequest, error) {
	q, err := s.resolveQuery(ctx, input)
	if err != nil {
		return nil, err
	}

	records, err := s.features.List(ctx, q.Tab.Filter(q.Viewer))
	if err != nil {
		return nil, fmt.Errorf("list feature requests: %w", err)
	}

	return view.Compose(records, q), nil
}

// resolveQuery parses view parameters with the session user as viewer and
// checks the caller may see the tab.
func (s *Service) resolveQuery(ctx context.Context, input ListInput) (view.Query, error) {
	viewer, _ := ctxutil.UserIDFromCtx(ctx)

	q, err := view.ParseQuery(input.Tab, input.Sort, input.Search, input.Categories, viewer)
	if err != nil {
		return view.Query{}, err
	}

	if q.Tab.RequiresViewer() && viewer == "" {
		return view.Query{}, domain.ErrNotAuthenticated
	}
	if q.Tab.AdminOnly() {
		if viewer == "" {
			return view.Query{}, domain.ErrNotAuthenticated
		}
		if !ctxutil.IsAdminCtx(ctx) {
			return view.Query{}, domain.ErrForbidden
		}
	}
	return q, nil
}
