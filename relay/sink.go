package relay

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/phanxgames/tactile"
)

// Stats is a snapshot of a Sink's counters.
type Stats struct {
	// Connections is the number of currently open connections.
	Connections int64 `json:"connections"`
	// Touches is the number of touches accepted onto the queue.
	Touches uint64 `json:"touches"`
	// Dropped is the number of touches rejected by a full queue.
	Dropped uint64 `json:"dropped"`
	// DecodeErrors is the number of malformed packets.
	DecodeErrors uint64 `json:"decode_errors"`
}

// Sink decodes wire packets and pushes the touches onto a queue.
type Sink struct {
	queue  *tactile.TouchQueue
	logger *slog.Logger

	conns   atomic.Int64
	touches atomic.Uint64
	dropped atomic.Uint64
	errs    atomic.Uint64
}

// NewSink creates a sink feeding q. A nil logger uses slog.Default().
func NewSink(q *tactile.TouchQueue, logger *slog.Logger) *Sink {
	if q == nil {
		panic("tactile/relay: nil queue")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{queue: q, logger: logger}
}

// Queue returns the queue the sink feeds.
func (s *Sink) Queue() *tactile.TouchQueue { return s.queue }

// Logger returns the sink's logger.
func (s *Sink) Logger() *slog.Logger { return s.logger }

// Deliver decodes every packet in data and queues the touches. It returns
// the number of touches queued. A malformed packet stops decoding; the
// touches before it are still queued.
func (s *Sink) Deliver(data []byte, source string) int {
	touches, err := tactile.DecodeTouches(data)
	if err != nil {
		s.errs.Add(1)
		s.logger.Warn("relay: bad touch packet", "source", source, "err", err)
	}
	n := 0
	for _, t := range touches {
		if s.push(t, source) {
			n++
		}
	}
	return n
}

func (s *Sink) push(t tactile.Touch, source string) bool {
	if err := s.queue.Push(t); err != nil {
		s.dropped.Add(1)
		s.logger.Debug("relay: touch dropped", "source", source, "id", t.ID, "err", err)
		return false
	}
	s.touches.Add(1)
	return true
}

func (s *Sink) opened(source string) {
	n := s.conns.Add(1)
	s.logger.Info("relay: connection opened", "source", source, "open", n)
}

func (s *Sink) closed(source string, err error) {
	n := s.conns.Add(-1)
	if err != nil {
		s.logger.Warn("relay: connection closed", "source", source, "open", n, "err", err)
		return
	}
	s.logger.Info("relay: connection closed", "source", source, "open", n)
}

// Stats returns a snapshot of the counters.
func (s *Sink) Stats() Stats {
	return Stats{
		Connections:  s.conns.Load(),
		Touches:      s.touches.Load(),
		Dropped:      s.dropped.Load(),
		DecodeErrors: s.errs.Load(),
	}
}

// ServeStream reads packets from r until EOF or ctx is done and queues the
// touches. Packets with an unknown state or a non-finite position are
// skipped. Any other decode error loses framing and ends the stream. A clean
// EOF returns nil.
func (s *Sink) ServeStream(ctx context.Context, r io.Reader, source string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, err := tactile.ReadTouch(r)
		switch {
		case err == nil:
			s.push(t, source)
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, tactile.ErrUnknownState), errors.Is(err, tactile.ErrBadCoordinate):
			s.errs.Add(1)
			s.logger.Warn("relay: skipped touch packet", "source", source, "err", err)
		default:
			if !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, net.ErrClosed) {
				s.errs.Add(1)
			}
			return err
		}
	}
}

// ServeListener accepts connections from ln and serves each as a packet
// stream until ctx is done. It closes ln and waits for every connection to
// finish before returning.
func (s *Sink) ServeListener(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	s.logger.Info("relay: listening", "addr", ln.Addr().String())
	var err error
	for {
		var conn net.Conn
		conn, err = ln.Accept()
		if err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
	wg.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (s *Sink) serveConn(ctx context.Context, conn net.Conn) {
	source := conn.RemoteAddr().String()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	s.opened(source)
	err := s.ServeStream(ctx, conn, source)
	if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
		err = nil
	}
	s.closed(source, err)
}

// WriteTouches encodes touches as consecutive packets and writes them to w
// in one call.
func WriteTouches(w io.Writer, touches ...tactile.Touch) error {
	_, err := w.Write(appendTouches(nil, touches))
	return err
}

func appendTouches(buf []byte, touches []tactile.Touch) []byte {
	for _, t := range touches {
		buf = t.AppendPacket(buf)
	}
	return buf
}
