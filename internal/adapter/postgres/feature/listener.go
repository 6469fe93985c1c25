package feature

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Channel is the NOTIFY channel the feature_requests trigger publishes on.
const Channel = "feature_requests_changed"

// Listener holds one pooled connection in LISTEN mode and calls onChange for
// every committed write to feature_requests.
type Listener struct {
	pool     *pgxpool.Pool
	onChange func()
	retry    time.Duration
	log      *slog.Logger
}

// NewListener creates a Listener. onChange must not block.
func NewListener(pool *pgxpool.Pool, onChange func(), retry time.Duration, log *slog.Logger) *Listener {
	return &Listener{
		pool:     pool,
		onChange: onChange,
		retry:    retry,
		log:      log.With("component", "pg_listener"),
	}
}

// Run listens until ctx is done and then returns nil. A lost connection is
// re-established after the retry delay. Every (re)connect triggers onChange
// because notifications sent while disconnected are gone.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		l.log.WarnContext(ctx, "change listener disconnected",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", l.retry),
		)

		t := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer func() {
		// Do not hand a listening connection back to the pool.
		unlistenCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if _, err := conn.Exec(unlistenCtx, "UNLISTEN *"); err != nil {
			conn.Conn().Close(unlistenCtx)
		}
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("listen %s: %w", Channel, err)
	}
	l.log.InfoContext(ctx, "change listener connected", slog.String("channel", Channel))

	l.onChange()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		l.log.DebugContext(ctx, "feature request changed", slog.String("id", n.Payload))
		l.onChange()
	}
}
