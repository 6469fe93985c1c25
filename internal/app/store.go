package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres"
	pgfeature "github.com/heartmarshall/featureboard-backend/internal/adapter/postgres/feature"
	pgtoken "github.com/heartmarshall/featureboard-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/featureboard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/featureboard-backend/internal/config"
	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/live"
)

type featureStore interface {
	Create(ctx context.Context, fr *domain.FeatureRequest) (*domain.FeatureRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	List(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.FeatureRequest) error) (*domain.FeatureRequest, error)
}

type tokenStore interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

// backend is an opened record store with its live hub attached.
type backend struct {
	features featureStore
	tokens   tokenStore
	ping     func(ctx context.Context) error
	hub      *live.Hub

	// watch blocks until ctx is done, feeding store changes into hub.
	// Nil when the store notifies in-process.
	watch func(ctx context.Context) error
	close func()
}

// openBackend connects the configured store driver.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Store.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", n))
	}

	features := pgfeature.New(pool, postgres.NewTxManager(pool))
	hub := live.NewHub(logger, features.List)
	listener := pgfeature.NewListener(pool, hub.Notify, cfg.Live.ListenerRetry, logger)

	return &backend{
		features: features,
		tokens:   pgtoken.New(pool),
		ping:     pool.Ping,
		hub:      hub,
		watch:    listener.Run,
		close: func() {
			hub.Close()
			pool.Close()
		},
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	store, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("sqlite store opened", slog.String("path", cfg.SQLite.Path))

	hub := live.NewHub(logger, store.List)
	store.OnChange(hub.Notify)

	return &backend{
		features: store,
		tokens:   store,
		ping:     store.Ping,
		hub:      hub,
		close: func() {
			hub.Close()
			if err := store.Close(); err != nil {
				logger.Warn("close sqlite store", slog.String("error", err.Error()))
			}
		},
	}, nil
}

// pingFunc adapts a ping function to the health handler.
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
