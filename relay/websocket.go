package relay

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/phanxgames/tactile"
)

// Server is an http.Handler that upgrades requests to WebSocket connections
// and queues the touches carried by each binary message. Text messages are
// ignored.
type Server struct {
	sink     *Sink
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// NewServer creates a WebSocket relay feeding sink. Requests from any
// origin are accepted.
func NewServer(sink *Sink) *Server {
	return &Server{
		sink: sink,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// SetCheckOrigin replaces the origin check used during the upgrade.
func (s *Server) SetCheckOrigin(fn func(r *http.Request) bool) {
	s.upgrader.CheckOrigin = fn
}

// Sink returns the server's sink.
func (s *Server) Sink() *Sink { return s.sink }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.sink.logger.Error("relay: websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	if !s.track(conn) {
		conn.Close()
		return
	}
	defer s.untrack(conn)

	source := r.RemoteAddr
	s.sink.opened(source)
	var readErr error
	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				readErr = err
			}
			break
		}
		if typ != websocket.BinaryMessage {
			s.sink.logger.Debug("relay: ignoring non-binary message", "source", source)
			continue
		}
		s.sink.Deliver(data, source)
	}
	s.sink.closed(source, readErr)
}

func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

// Close closes every open connection and rejects new ones. Hijacked
// connections are not closed by http.Server.Shutdown, so call this too.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for conn := range s.conns {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
	}
	return nil
}

// Client sends touches to a relay Server.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
	buf  []byte
}

// Dial connects to the relay at url (ws:// or wss://).
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Send writes touches as a single binary message. Safe for concurrent use.
func (c *Client) Send(touches ...tactile.Touch) error {
	if len(touches) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = appendTouches(c.buf[:0], touches)
	return c.conn.WriteMessage(websocket.BinaryMessage, c.buf)
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
