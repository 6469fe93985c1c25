package feature

import (
	"context"
	"fmt"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/notify"
	"github.com/heartmarshall/featureboard-backend/internal/view"
	"github.com/heartmarshall/featureboard-backend/pkg/ctxutil"
)

// Watch streams the composed view after every store change. The first value
// is the current view. The channel closes when ctx is done.
func (s *Service) Watch(ctx context.Context, input ListInput) (<-chan []domain.FeatureRequest, error) {
	q, err := s.resolveQuery(ctx, input)
	if err != nil {
		return nil, err
	}

	sub, err := s.live.Subscribe(ctx, q.Tab.Filter(q.Viewer))
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan []domain.FeatureRequest)
	go func() {
		defer close(out)
		defer sub.Cancel()

		for records := range sub.C() {
			select {
			case out <- view.Compose(records, q):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// WatchRejections streams alerts for the current user's requests that get
// rejected. Each record alerts once per session: a delivery is offered again
// on reconnect until the consumer acknowledges it.
func (s *Service) WatchRejections(ctx context.Context) (<-chan *notify.Delivery, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	sessionID := ctxutil.SessionIDFromCtx(ctx)
	if sessionID == "" {
		sessionID = userID
	}
	tracker := s.trackers.ForSession(sessionID, userID, ctxutil.SessionExpiryFromCtx(ctx))

	sub, err := s.live.Subscribe(ctx, domain.OwnerFilter(userID))
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan *notify.Delivery)
	go func() {
		defer close(out)
		defer sub.Cancel()

		for records := range sub.C() {
			d := tracker.Deliver(records)
			if d == nil {
				continue
			}
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
			// Wait for the write so the next reload does not offer the
			// same alerts twice.
			select {
			case <-d.Acked():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
