package relay

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, s *Sink) (*Server, string) {
	t.Helper()
	srv := NewServer(s)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestWebSocketRelay(t *testing.T) {
	s := newTestSink(16)
	_, url := startServer(t, s)

	c, err := Dial(context.Background(), url)
	require.NoError(t, err)

	touches := sampleTouches()
	require.NoError(t, c.Send(touches[:1]...))
	require.NoError(t, c.Send(touches[1:]...))
	require.NoError(t, c.Send())

	require.Eventually(t, func() bool { return s.Queue().Len() == len(touches) },
		2*time.Second, 5*time.Millisecond)
	assertSameTouches(t, touches, drain(s.Queue()))
	assert.Equal(t, int64(1), s.Stats().Connections)

	require.NoError(t, c.Close())
	require.Eventually(t, func() bool { return s.Stats().Connections == 0 },
		2*time.Second, 5*time.Millisecond)
}

func TestWebSocketRelayIgnoresText(t *testing.T) {
	s := newTestSink(16)
	_, url := startServer(t, s)

	c, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	require.NoError(t, c.Send(sampleTouches()[0]))

	require.Eventually(t, func() bool { return s.Stats().Touches == 1 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, s.Queue().Len())
	assert.Zero(t, s.Stats().DecodeErrors)
}

func TestWebSocketRelayBadPacket(t *testing.T) {
	s := newTestSink(16)
	_, url := startServer(t, s)

	c, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3}))
	require.Eventually(t, func() bool { return s.Stats().DecodeErrors == 1 },
		2*time.Second, 5*time.Millisecond)
	assert.Zero(t, s.Queue().Len())
}

func TestWebSocketServerClose(t *testing.T) {
	s := newTestSink(16)
	srv, url := startServer(t, s)

	c, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer c.conn.Close()
	require.Eventually(t, func() bool { return s.Stats().Connections == 1 },
		2*time.Second, 5*time.Millisecond)

	require.NoError(t, srv.Close())
	_, _, err = c.conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "err = %v", err)
}

func TestDialFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Dial(ctx, "ws://127.0.0.1:1/touches")
	assert.Error(t, err)
}
