package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/featureboard-backend/internal/auth"
	"github.com/heartmarshall/featureboard-backend/internal/config"
	"github.com/heartmarshall/featureboard-backend/internal/notify"
	authsvc "github.com/heartmarshall/featureboard-backend/internal/service/auth"
	featuresvc "github.com/heartmarshall/featureboard-backend/internal/service/feature"
	"github.com/heartmarshall/featureboard-backend/internal/transport/middleware"
	"github.com/heartmarshall/featureboard-backend/internal/transport/rest"
)

const (
	// rateLimitSweep is how often idle rate limit buckets are dropped.
	rateLimitSweep = 5 * time.Minute
	// sessionSweep is how often alert history of expired sessions is dropped.
	sessionSweep = 5 * time.Minute
)

// Run is the application entry point. It loads configuration, opens the
// record store and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Driver),
	)

	store, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.close()

	limiter := middleware.NewRateLimiter(rateLimitSweep)
	defer limiter.Stop()

	sessions := notify.NewRegistry()

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newHandler(cfg, logger, store, sessions, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		// WebSocket streams end with the hub, not with Shutdown.
		store.hub.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	g.Go(func() error { return sessions.Run(gctx, sessionSweep) })

	if store.watch != nil {
		g.Go(func() error { return store.watch(gctx) })
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}

// newHandler builds services, handlers and the middleware stack over store.
func newHandler(cfg *config.Config, logger *slog.Logger, store *backend, sessions *notify.Registry, limiter *middleware.RateLimiter) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	features := featuresvc.NewService(logger, store.features, store.hub, sessions)
	authService := authsvc.NewService(logger, store.tokens, jwtManager, sessions, cfg.Auth)

	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pingFunc(store.ping), store.hub, cfg.Store.Driver, BuildVersion()),
		Auth:     rest.NewAuthHandler(authService, logger),
		Features: rest.NewFeatureHandler(features, logger),
		Streams:  rest.NewStreamHandler(features, cfg.CORS.AllowedOriginList(), logger),
	}, limiter.Limit(cfg.Server.WriteRateLimit))

	var cors middleware.Middleware
	if len(cfg.CORS.AllowedOriginList()) > 0 {
		cors = middleware.CORS(cfg.CORS)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		cors,
		middleware.Auth(authService, logger),
		middleware.Logger(logger),
	)(router)
}
