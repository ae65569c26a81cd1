package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/borderlesste/cavb-visa-sub001/internal/auth"
	"github.com/borderlesste/cavb-visa-sub001/internal/metrics"
	"github.com/borderlesste/cavb-visa-sub001/internal/presence"
)

// Options bound the per-session transport timeouts.
type Options struct {
	PingInterval   time.Duration
	WriteDeadline  time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

func (o Options) withDefaults() Options {
	if o.PingInterval == 0 {
		o.PingInterval = 25 * time.Second
	}
	if o.WriteDeadline == 0 {
		o.WriteDeadline = 10 * time.Second
	}
	if o.PongWait == 0 {
		o.PongWait = 60 * time.Second
	}
	if o.MaxMessageSize == 0 {
		o.MaxMessageSize = 64 * 1024
	}
	if o.SendBuffer == 0 {
		o.SendBuffer = 256
	}
	return o
}

// Gateway turns inbound websocket upgrades into authenticated,
// registered sessions and tears them down again. It is the only
// component that mutates registry membership.
type Gateway struct {
	registry *Registry
	verifier *auth.Verifier
	presence *presence.Store
	log      *zap.SugaredLogger
	opts     Options
}

// NewGateway wires the connection lifecycle. presence may be nil when
// no redis is configured.
func NewGateway(registry *Registry, verifier *auth.Verifier, pres *presence.Store, log *zap.SugaredLogger, opts Options) *Gateway {
	return &Gateway{
		registry: registry,
		verifier: verifier,
		presence: pres,
		log:      log,
		opts:     opts.withDefaults(),
	}
}

// authorize maps the query token to an identity, or to the close reason
// the client gets instead.
func (g *Gateway) authorize(token string) (auth.Identity, string) {
	if token == "" {
		return auth.Identity{}, "Token required"
	}
	id, err := g.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrMissingSubject) {
			return auth.Identity{}, "Invalid token payload"
		}
		return auth.Identity{}, "Invalid token"
	}
	return id, ""
}

// Handle runs for the lifetime of one websocket connection. The bearer
// token travels as ?token= because the websocket handshake cannot carry
// custom headers from every client runtime.
func (g *Gateway) Handle(conn *websocket.Conn) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Errorw("websocket handler panic", "panic", r)
			_ = conn.Close()
		}
	}()

	id, reject := g.authorize(conn.Query("token"))
	if reject != "" {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reject)
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
		_ = conn.Close()
		return
	}

	sess := newSession(conn, id.UserID, g.opts)
	g.registry.Put(id.UserID, sess)
	metrics.ActiveConnections.Inc()
	g.markPresence(id.UserID, true)
	g.log.Infow("websocket connected", "user_id", id.UserID)

	go sess.writePump()
	if frame, err := json.Marshal(ConnectionEstablished()); err == nil {
		_ = sess.Send(frame)
	}

	// blocks until the peer disconnects or the session is evicted
	sess.readLoop()

	g.deregister(id.UserID, sess)
}

// deregister tears s down. The offline marker is written only when the
// user has no registered session left: an evicted connection's late
// teardown must not wipe the presence of its replacement.
func (g *Gateway) deregister(userID string, s Session) {
	g.registry.Remove(userID, s)
	s.Close("")
	metrics.ActiveConnections.Dec()
	if _, ok := g.registry.Get(userID); !ok {
		g.markPresence(userID, false)
	}
	g.log.Infow("websocket disconnected", "user_id", userID)
}

func (g *Gateway) markPresence(userID string, online bool) {
	if g.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var err error
	if online {
		err = g.presence.Online(ctx, userID)
	} else {
		err = g.presence.Offline(ctx, userID)
	}
	if err != nil {
		g.log.Warnw("presence update failed", "user_id", userID, "online", online, "err", err)
	}
}
