//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres"
	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres/feature"
	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/featureboard-backend/internal/adapter/postgres/token"
	authpkg "github.com/heartmarshall/featureboard-backend/internal/auth"
	"github.com/heartmarshall/featureboard-backend/internal/config"
	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/live"
	"github.com/heartmarshall/featureboard-backend/internal/notify"
	authsvc "github.com/heartmarshall/featureboard-backend/internal/service/auth"
	featuresvc "github.com/heartmarshall/featureboard-backend/internal/service/feature"
	"github.com/heartmarshall/featureboard-backend/internal/transport/middleware"
	"github.com/heartmarshall/featureboard-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper), including the LISTEN/NOTIFY
// change feed.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	features := feature.New(pool, postgres.NewTxManager(pool))
	hub := live.NewHub(logger, features.List)
	listener := feature.NewListener(pool, hub.Notify, 100*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = listener.Run(ctx)
	}()

	authCfg := config.AuthConfig{
		JWTSecret:      "test-secret-at-least-32-chars-long!!",
		JWTIssuer:      "test-issuer",
		AccessTokenTTL: 15 * time.Minute,
	}
	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	sessions := notify.NewRegistry()
	featureService := featuresvc.NewService(logger, features, hub, sessions)
	authService := authsvc.NewService(logger, token.New(pool), jwtMgr, sessions, authCfg)

	router := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(pool, hub, config.DriverPostgres, "e2e"),
		Auth:     rest.NewAuthHandler(authService, logger),
		Features: rest.NewFeatureHandler(featureService, logger),
		Streams:  rest.NewStreamHandler(featureService, []string{"*"}, logger),
	}, nil)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Auth(authService, logger),
		middleware.Logger(logger),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
		cancel()
		<-done
	})

	return &testServer{URL: srv.URL, Client: srv.Client(), jwt: jwtMgr}
}

// newUser returns a unique user id and a bearer token for it.
func (ts *testServer) newUser(t *testing.T, prefix string) (string, string) {
	t.Helper()
	id := testhelper.UniqueUser(prefix)
	tok, err := ts.jwt.GenerateAccessToken(id, domain.UserRoleUser.String())
	require.NoError(t, err)
	return id, tok
}

// newAdmin returns a bearer token carrying the admin role.
func (ts *testServer) newAdmin(t *testing.T) string {
	t.Helper()
	tok, err := ts.jwt.GenerateAccessToken(testhelper.UniqueUser("admin"), domain.UserRoleAdmin.String())
	require.NoError(t, err)
	return tok
}

// ---------------------------------------------------------------------------
// HTTP helpers.
// ---------------------------------------------------------------------------

type featureJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Status      string   `json:"status"`
	SubmittedBy *string  `json:"submittedBy"`
	CreatedAt   int64    `json:"createdAt"`
	UpvoteCount int      `json:"upvoteCount"`
	UpvotedBy   []string `json:"upvotedBy"`
}

// call sends a JSON request and returns the status and raw body.
func (ts *testServer) call(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// submit creates a feature request and returns it.
func (ts *testServer) submit(t *testing.T, token, title string, categories ...string) featureJSON {
	t.Helper()
	if len(categories) == 0 {
		categories = []string{"UI"}
	}

	status, body := ts.call(t, http.MethodPost, "/features", token, map[string]any{
		"title":       title,
		"description": "Description of " + title,
		"categories":  categories,
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	var fr featureJSON
	require.NoError(t, json.Unmarshal(body, &fr))
	return fr
}

func (ts *testServer) decide(t *testing.T, token, id, status string) (int, []byte) {
	t.Helper()
	return ts.call(t, http.MethodPost, "/admin/features/"+id+"/status", token, map[string]string{"status": status})
}

func (ts *testServer) list(t *testing.T, token, query string) []featureJSON {
	t.Helper()
	status, body := ts.call(t, http.MethodGet, "/features"+query, token, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var out []featureJSON
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func ids(records []featureJSON) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// ---------------------------------------------------------------------------
// WebSocket helpers.
// ---------------------------------------------------------------------------

func (ts *testServer) dial(t *testing.T, path, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	if token != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		url += sep + "access_token=" + token
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() }) //nolint:errcheck
	return conn
}

// readUntil reads messages until match accepts one or the deadline passes.
func readUntil[T any](t *testing.T, conn *websocket.Conn, match func(T) bool) T {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for {
		var msg T
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		if match(msg) {
			return msg
		}
	}
}
