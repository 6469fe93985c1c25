// Command cleanup-tokens deletes revocation entries whose token has already
// expired. It is intended to be invoked by an external cron job.
//
// Usage:
//
//	cleanup-tokens
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/featureboard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/featureboard-backend/internal/app"
	"github.com/heartmarshall/featureboard-backend/internal/config"
	authsvc "github.com/heartmarshall/featureboard-backend/internal/service/auth"
)

type revocationStore interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var tokens revocationStore
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		tokens = token.New(pool)
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			logger.Error("open sqlite store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		tokens = store
	}

	svc := authsvc.NewService(logger, tokens, nil, nil, cfg.Auth)

	deleted, err := svc.CleanupExpiredRevocations(ctx)
	if err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed", slog.Int64("deleted", deleted))
}
