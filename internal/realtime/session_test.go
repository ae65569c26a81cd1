package realtime

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn blocks ReadMessage until a read deadline in the past is set,
// mirroring how the real transport unblocks a parked reader.
type fakeConn struct {
	mu            sync.Mutex
	controls      []int
	readDeadlines []time.Time
	pongHandler   func(string) error
	closed        bool

	expireOnce sync.Once
	expired    chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{expired: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	<-c.expired
	return 0, nil, errors.New("read deadline exceeded")
}

func (c *fakeConn) WriteMessage(int, []byte) error { return nil }

func (c *fakeConn) WriteControl(messageType int, _ []byte, _ time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controls = append(c.controls, messageType)
	return nil
}

func (c *fakeConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	c.readDeadlines = append(c.readDeadlines, t)
	c.mu.Unlock()
	if !t.After(time.Now()) {
		c.expireOnce.Do(func() { close(c.expired) })
	}
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }
func (c *fakeConn) SetReadLimit(int64)               {}

func (c *fakeConn) SetPongHandler(h func(string) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pongHandler = h
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) lastReadDeadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.readDeadlines) == 0 {
		return time.Time{}, false
	}
	return c.readDeadlines[len(c.readDeadlines)-1], true
}

func TestCloseUnblocksReadLoop(t *testing.T) {
	conn := newFakeConn()
	s := newSession(conn, "u1", Options{}.withDefaults())

	returned := make(chan struct{})
	go func() {
		s.readLoop()
		close(returned)
	}()
	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return conn.pongHandler != nil
	}, time.Second, 5*time.Millisecond)

	s.Close("connection replaced")

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("readLoop still blocked after Close")
	}

	d, ok := conn.lastReadDeadline()
	require.True(t, ok)
	assert.False(t, d.After(time.Now()), "Close must expire the read deadline")
}

func TestCloseSendsExactlyOneCloseFrame(t *testing.T) {
	conn := newFakeConn()
	s := newSession(conn, "u1", Options{}.withDefaults())

	s.Close("bye")
	s.Close("again")

	conn.mu.Lock()
	defer conn.mu.Unlock()
	require.Len(t, conn.controls, 1)
	assert.Equal(t, websocket.CloseMessage, conn.controls[0])
}

func TestSendAfterCloseFails(t *testing.T) {
	conn := newFakeConn()
	s := newSession(conn, "u1", Options{}.withDefaults())

	s.Close("")
	assert.ErrorIs(t, s.Send([]byte("{}")), errSessionClosed)
	assert.False(t, s.Open())
}

func TestPongAfterCloseDoesNotExtendDeadline(t *testing.T) {
	conn := newFakeConn()
	s := newSession(conn, "u1", Options{}.withDefaults())

	go s.readLoop()
	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return conn.pongHandler != nil
	}, time.Second, 5*time.Millisecond)

	s.Close("connection replaced")
	conn.mu.Lock()
	handler := conn.pongHandler
	before := len(conn.readDeadlines)
	conn.mu.Unlock()

	require.NoError(t, handler(""))

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.Len(t, conn.readDeadlines, before, "pong must not refresh the deadline of a closed session")
}

func TestWritePumpStopsAndClosesConn(t *testing.T) {
	conn := newFakeConn()
	s := newSession(conn, "u1", Options{}.withDefaults())

	returned := make(chan struct{})
	go func() {
		s.writePump()
		close(returned)
	}()

	s.Close("")

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("writePump still running after Close")
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.True(t, conn.closed)
}
