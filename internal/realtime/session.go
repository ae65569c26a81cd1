package realtime

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/websocket/v2"
)

var (
	errSessionClosed  = errors.New("session closed")
	errSendBufferFull = errors.New("send buffer full")
)

// Session is one live, message-framed connection owned by a single
// user. The identity is assigned at authentication and never changes
// for the lifetime of the handle.
type Session interface {
	UserID() string
	Open() bool
	// Send queues one serialized frame without blocking the caller.
	Send(frame []byte) error
	// Close tears the transport down; safe to call more than once and
	// from any goroutine.
	Close(reason string)
}

// sessionConn is the slice of *websocket.Conn the session drives.
type sessionConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	Close() error
}

type wsSession struct {
	conn   sessionConn
	userID string

	send chan []byte
	done chan struct{}

	once   sync.Once
	closed atomic.Bool

	pingInterval   time.Duration
	writeDeadline  time.Duration
	pongWait       time.Duration
	maxMessageSize int64
}

func newSession(conn sessionConn, userID string, opts Options) *wsSession {
	return &wsSession{
		conn:           conn,
		userID:         userID,
		send:           make(chan []byte, opts.SendBuffer),
		done:           make(chan struct{}),
		pingInterval:   opts.PingInterval,
		writeDeadline:  opts.WriteDeadline,
		pongWait:       opts.PongWait,
		maxMessageSize: opts.MaxMessageSize,
	}
}

func (s *wsSession) UserID() string { return s.userID }

func (s *wsSession) Open() bool { return !s.closed.Load() }

func (s *wsSession) Send(frame []byte) error {
	if s.closed.Load() {
		return errSessionClosed
	}
	select {
	case s.send <- frame:
		return nil
	default:
		return errSendBufferFull
	}
}

func (s *wsSession) Close(reason string) {
	s.once.Do(func() {
		s.closed.Store(true)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		// fasthttp defers the real hijacked-conn close until the handler
		// returns, so expire the read deadline to kick readLoop loose
		// even when the peer ignores the close frame.
		_ = s.conn.SetReadDeadline(time.Now())
		close(s.done)
	})
}

// writePump owns all data writes on the connection. Control frames are
// written elsewhere (Close), which the transport allows concurrently.
func (s *wsSession) writePump() {
	ticker := time.NewTicker(s.pingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()
	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeDeadline))
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeDeadline))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// readLoop blocks until the peer goes away. The push channel is
// server→client only, so inbound data frames are discarded; reading is
// still required to service pongs and to notice the disconnect.
func (s *wsSession) readLoop() {
	s.conn.SetReadLimit(s.maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	s.conn.SetPongHandler(func(string) error {
		if s.closed.Load() {
			// a pong racing Close must not re-extend the deadline
			return nil
		}
		return s.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
