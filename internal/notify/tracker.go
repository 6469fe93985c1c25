// Package notify tells users once per session that one of their requests
// was rejected.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// Alert reports that a user's own request moved to rejected.
type Alert struct {
	RecordID uuid.UUID `json:"recordId"`
	Title    string    `json:"title"`
}

// Tracker remembers which rejections one session has already seen.
type Tracker struct {
	userID string

	mu        sync.Mutex
	notified  map[uuid.UUID]struct{}
	expiresAt time.Time
}

// NewTracker creates a tracker for userID's records.
func NewTracker(userID string) *Tracker {
	return &Tracker{
		userID:   userID,
		notified: make(map[uuid.UUID]struct{}),
	}
}

// UserID returns the user the tracker watches.
func (t *Tracker) UserID() string { return t.userID }

// Pending returns an alert for every rejected record owned by the tracker's
// user that has not been reported yet. Nothing is marked; see Commit.
func (t *Tracker) Pending(records []domain.FeatureRequest) []Alert {
	t.mu.Lock()
	defer t.mu.Unlock()

	var alerts []Alert
	for _, r := range records {
		if r.Status != domain.StatusRejected || r.SubmittedBy == "" || r.SubmittedBy != t.userID {
			continue
		}
		if _, seen := t.notified[r.ID]; seen {
			continue
		}
		alerts = append(alerts, Alert{RecordID: r.ID, Title: r.Title})
	}
	return alerts
}

// Commit marks alerts as reported to the session.
func (t *Tracker) Commit(alerts []Alert) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, a := range alerts {
		t.notified[a.RecordID] = struct{}{}
	}
}

// Deliver wraps the pending alerts for records in a Delivery, or returns nil
// when there is nothing new to report.
func (t *Tracker) Deliver(records []domain.FeatureRequest) *Delivery {
	alerts := t.Pending(records)
	if len(alerts) == 0 {
		return nil
	}
	return &Delivery{Alerts: alerts, tracker: t, acked: make(chan struct{})}
}

func (t *Tracker) expired(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.expiresAt.IsZero() && now.After(t.expiresAt)
}

func (t *Tracker) extend(expiresAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if expiresAt.After(t.expiresAt) {
		t.expiresAt = expiresAt
	}
}

// Delivery is a batch of alerts on its way to a client. The alerts count as
// reported only after Ack, so a batch lost with its connection is offered
// again on reconnect.
type Delivery struct {
	Alerts []Alert

	tracker *Tracker
	once    sync.Once
	acked   chan struct{}
}

// Ack records the batch as delivered. Safe to call more than once.
func (d *Delivery) Ack() {
	d.once.Do(func() {
		d.tracker.Commit(d.Alerts)
		close(d.acked)
	})
}

// Acked is closed once Ack has been called.
func (d *Delivery) Acked() <-chan struct{} {
	return d.acked
}

// Registry hands out one tracker per session.
type Registry struct {
	mu       sync.Mutex
	trackers map[string]*Tracker
}

func NewRegistry() *Registry {
	return &Registry{trackers: make(map[string]*Tracker)}
}

// ForSession returns the session's tracker, creating it on first use. A
// session reconnecting keeps its history. If the session is reused by a
// different user the tracker starts over. expiresAt is when the session's
// token stops being valid; the zero time keeps the tracker until Forget.
func (r *Registry) ForSession(sessionID, userID string, expiresAt time.Time) *Tracker {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trackers[sessionID]
	if !ok || t.userID != userID {
		t = NewTracker(userID)
		r.trackers[sessionID] = t
	}
	t.extend(expiresAt)
	return t
}

// Forget drops the session's history.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	delete(r.trackers, sessionID)
	r.mu.Unlock()
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

// Sweep drops trackers whose session expired before now and returns how
// many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, t := range r.trackers {
		if t.expired(now) {
			delete(r.trackers, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
