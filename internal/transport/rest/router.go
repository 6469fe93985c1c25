package rest

import (
	"net/http"

	"github.com/heartmarshall/featureboard-backend/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Features *FeatureHandler
	Streams  *StreamHandler
}

// NewRouter mounts every endpoint. writes wraps the mutating routes, e.g.
// with a rate limiter.
func NewRouter(h Handlers, writes middleware.Middleware) *http.ServeMux {
	if writes == nil {
		writes = middleware.Chain()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /auth/signout", h.Auth.SignOut)

	mux.Handle("POST /features", writes(http.HandlerFunc(h.Features.Submit)))
	mux.HandleFunc("GET /features", h.Features.List)
	mux.HandleFunc("GET /features/{id}", h.Features.Get)
	mux.Handle("POST /features/{id}/vote", writes(http.HandlerFunc(h.Features.Vote)))
	mux.Handle("POST /admin/features/{id}/status", writes(middleware.RequireAdmin(http.HandlerFunc(h.Features.Decide))))

	mux.HandleFunc("GET /ws/features", h.Streams.Features)
	mux.HandleFunc("GET /ws/alerts", h.Streams.Alerts)

	return mux
}
