package bridge

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Transport moves frames over an underlying connection. ReadFrame is called
// from a single goroutine; WriteFrame calls are serialized by Conn.
type Transport interface {
	ReadFrame() (Frame, error)
	WriteFrame(Frame) error
	Close() error
}

type streamTransport struct {
	r   io.Reader
	w   io.Writer
	dec *json.Decoder
	enc *json.Encoder
}

// NewStream returns a transport exchanging newline-delimited JSON frames.
// Closing it closes r and w when they implement io.Closer.
func NewStream(r io.Reader, w io.Writer) Transport {
	return &streamTransport{
		r:   r,
		w:   w,
		dec: json.NewDecoder(r),
		enc: json.NewEncoder(w),
	}
}

func (s *streamTransport) ReadFrame() (Frame, error) {
	var f Frame
	err := s.dec.Decode(&f)
	return f, err
}

func (s *streamTransport) WriteFrame(f Frame) error {
	return s.enc.Encode(f)
}

func (s *streamTransport) Close() error {
	var first error
	if c, ok := s.r.(io.Closer); ok {
		first = c.Close()
	}
	if c, ok := s.w.(io.Closer); ok {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type wsTransport struct {
	conn *websocket.Conn
}

// NewWebSocket wraps an established websocket connection.
func NewWebSocket(conn *websocket.Conn) Transport {
	return &wsTransport{conn: conn}
}

func (t *wsTransport) ReadFrame() (Frame, error) {
	var f Frame
	err := t.conn.ReadJSON(&f)
	return f, err
}

func (t *wsTransport) WriteFrame(f Frame) error {
	return t.conn.WriteJSON(f)
}

func (t *wsTransport) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = t.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return t.conn.Close()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The panel is a local companion of the host, not a browser page.
	CheckOrigin: func(r *http.Request) bool { return true },
}
