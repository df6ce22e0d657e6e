package bridge

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/diogo/chatpanel/internal/errors"
)

// Handler receives inbound frames in arrival order.
type Handler interface {
	HandleFrame(Frame)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Frame)

func (f HandlerFunc) HandleFrame(fr Frame) { f(fr) }

// Conn is one end of the bridge. Writes are safe for concurrent use.
type Conn struct {
	t      Transport
	logger zerolog.Logger

	mu        sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the logger used for transport diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Conn) {
		c.logger = l.With().Str("component", "bridge").Logger()
	}
}

// NewConn wraps a transport.
func NewConn(t Transport, opts ...Option) *Conn {
	c := &Conn{t: t, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects the panel to a host listening on a websocket URL.
func Dial(ctx context.Context, url string, opts ...Option) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial host at %s", url)
	}
	return NewConn(NewWebSocket(ws), opts...), nil
}

// Accept upgrades an HTTP request from a panel into a bridge connection.
func Accept(w http.ResponseWriter, r *http.Request, opts ...Option) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upgrade panel connection")
	}
	return NewConn(NewWebSocket(ws), opts...), nil
}

// Notify sends an event to the other side. args may be nil.
func (c *Conn) Notify(event string, args any) error {
	return c.send(FrameEvent, "notify", event, args)
}

// Invoke calls a method on the other side with positional arguments.
func (c *Conn) Invoke(method string, args ...any) error {
	if args == nil {
		args = []any{}
	}
	return c.send(FrameCall, "invoke", method, args)
}

func (c *Conn) send(typ, op, name string, args any) error {
	if c == nil || c.closed.Load() {
		return apperrors.NewUnavailableError(op, name)
	}

	f, err := NewFrame(typ, name, args)
	if err != nil {
		return apperrors.NewBridgeError(op, name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.t.WriteFrame(f); err != nil {
		c.logger.Debug().Err(err).Str("frame", name).Msg("write failed")
		return apperrors.NewBridgeError(op, name, err)
	}
	return nil
}

// Serve reads frames until the transport closes or ctx is done, passing
// each to h on the calling goroutine. A clean close returns nil.
func (c *Conn) Serve(ctx context.Context, h Handler) error {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()

	for {
		f, err := c.t.ReadFrame()
		if err != nil {
			c.closed.Store(true)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isClosed(err) {
				c.logger.Debug().Msg("bridge closed by peer")
				return nil
			}
			return errors.Wrap(err, "bridge read failed")
		}
		c.logger.Trace().Str("type", f.Type).Str("name", f.Name).Msg("frame received")
		h.HandleFrame(f)
	}
}

// Closed reports whether the connection can no longer send.
func (c *Conn) Closed() bool {
	return c == nil || c.closed.Load()
}

// Close shuts the connection down. It is safe to call more than once.
func (c *Conn) Close() error {
	if c == nil {
		return nil
	}
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		// Not under mu: closing must unblock a writer stuck on a dead peer.
		err = c.t.Close()
	})
	return err
}

func isClosed(err error) bool {
	return stderrors.Is(err, io.EOF) ||
		stderrors.Is(err, io.ErrUnexpectedEOF) ||
		stderrors.Is(err, io.ErrClosedPipe) ||
		stderrors.Is(err, net.ErrClosed) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
