// Package live fans store change notifications out to subscriptions. Every
// subscription re-runs its filter against the store on each change and
// emits the full matching set.
package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// ErrClosed is returned by Subscribe after the hub has been closed.
var ErrClosed = errors.New("live: hub closed")

// Loader fetches every record matching filter. The store evaluates the
// predicate; the hub never filters.
type Loader func(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error)

// Hub tracks open subscriptions for one store.
type Hub struct {
	load Loader
	log  *slog.Logger

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewHub creates a Hub that reloads subscriptions through load.
func NewHub(log *slog.Logger, load Loader) *Hub {
	return &Hub{
		load: load,
		log:  log.With("component", "live"),
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe loads the current matching set and returns a subscription whose
// first emission is that set. The subscription ends when ctx is done or
// Cancel is called; callers must do one of the two.
//
// The subscription is registered before the initial load, so a change
// committed while loading triggers one more reload.
func (h *Hub) Subscribe(ctx context.Context, filter domain.FeatureFilter) (*Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		hub:    h,
		filter: filter,
		ch:     make(chan []domain.FeatureRequest),
		kick:   make(chan struct{}, 1),
		ctx:    subCtx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	initial, err := h.load(subCtx, filter)
	if err != nil {
		h.remove(s)
		cancel()
		close(s.ch)
		close(s.done)
		return nil, err
	}

	go s.run(initial)
	return s, nil
}

// Notify tells every subscription that the store changed. It never blocks;
// changes arriving while a reload is in flight coalesce into one more reload.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs {
		select {
		case s.kick <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close cancels every subscription and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.Cancel()
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

// Subscription is a live sequence of matching record sets.
type Subscription struct {
	hub    *Hub
	filter domain.FeatureFilter
	ch     chan []domain.FeatureRequest
	kick   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// C returns the emission channel. It is closed once the subscription ends.
func (s *Subscription) C() <-chan []domain.FeatureRequest {
	return s.ch
}

// Filter returns the predicate the subscription was opened with.
func (s *Subscription) Filter() domain.FeatureFilter {
	return s.filter
}

// Cancel stops the subscription and waits until no further emission can
// happen. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// Done is closed when the subscription has ended.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) run(initial []domain.FeatureRequest) {
	defer close(s.done)
	defer close(s.ch)
	defer s.hub.remove(s)

	if !s.send(initial) {
		return
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.kick:
		}

		records, err := s.hub.load(s.ctx, s.filter)
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			// The next change retries the load.
			s.hub.log.WarnContext(s.ctx, "subscription reload failed", slog.String("error", err.Error()))
			continue
		}

		if !s.send(records) {
			return
		}
	}
}

func (s *Subscription) send(records []domain.FeatureRequest) bool {
	select {
	case s.ch <- records:
		return true
	case <-s.ctx.Done():
		return false
	}
}
