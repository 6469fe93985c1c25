package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/notify"
	"github.com/heartmarshall/featureboard-backend/internal/service/feature"
)

// writeTimeout bounds a single frame write to a slow client.
const writeTimeout = 10 * time.Second

// streamService defines the live operations needed by StreamHandler.
type streamService interface {
	Watch(ctx context.Context, input feature.ListInput) (<-chan []domain.FeatureRequest, error)
	WatchRejections(ctx context.Context) (<-chan *notify.Delivery, error)
}

// StreamHandler serves live views over WebSocket.
type StreamHandler struct {
	svc     streamService
	log     *slog.Logger
	origins []string
}

// NewStreamHandler creates a StreamHandler accepting upgrades from the given
// origins. Origins may be full URLs or bare host patterns; "*" allows any.
func NewStreamHandler(svc streamService, allowedOrigins []string, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		svc:     svc,
		log:     logger.With("handler", "stream"),
		origins: originHosts(allowedOrigins),
	}
}

type featuresMessage struct {
	Type    string            `json:"type"`
	Records []featureResponse `json:"records"`
}

type alertMessage struct {
	Type string `json:"type"`
	notify.Alert
}

// Features handles GET /ws/features?tab=&sort=&q=&category=. Every store
// change produces one message carrying the full composed view.
func (h *StreamHandler) Features(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	views, err := h.svc.Watch(ctx, listInputFromQuery(r))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	serve(ctx, h, w, r, views, func(records []domain.FeatureRequest) []any {
		return []any{featuresMessage{Type: "features", Records: toFeatureList(records)}}
	}, nil)
}

// Alerts handles GET /ws/alerts. Each rejection of one of the caller's
// requests produces one message. A delivery is acknowledged only once all
// of its frames were written.
func (h *StreamHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	alerts, err := h.svc.WatchRejections(ctx)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	serve(ctx, h, w, r, alerts, func(d *notify.Delivery) []any {
		out := make([]any, len(d.Alerts))
		for i, a := range d.Alerts {
			out[i] = alertMessage{Type: "rejected", Alert: a}
		}
		return out
	}, (*notify.Delivery).Ack)
}

// serve upgrades the connection and forwards every value from src until the
// client goes away or src closes. Client frames are ignored. written, when
// set, runs after every frame of a value was sent.
func serve[T any](ctx context.Context, h *StreamHandler, w http.ResponseWriter, r *http.Request, src <-chan T, encode func(T) []any, written func(T)) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.log.WarnContext(ctx, "websocket accept failed", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow() //nolint:errcheck

	ctx = conn.CloseRead(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-src:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "stream closed") //nolint:errcheck
				return
			}
			for _, msg := range encode(v) {
				if err := write(ctx, conn, msg); err != nil {
					h.log.DebugContext(ctx, "websocket write failed", slog.String("error", err.Error()))
					return
				}
			}
			if written != nil {
				written(v)
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, v any) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, v)
}

// originHosts converts configured CORS origins into the host patterns the
// WebSocket handshake matches against.
func originHosts(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if !strings.Contains(o, "://") {
			out = append(out, o)
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
		}
	}
	return out
}
