// Package host is a demo host application for the chat panel. It keeps the
// conversation in memory and answers every message with an echo.
package host

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/diogo/chatpanel/internal/bridge"
	"github.com/diogo/chatpanel/internal/models"
)

// Replier produces the assistant reply for a user message.
type Replier func(text string) string

// Echo is the default Replier.
func Echo(text string) string {
	return "Echo: " + text
}

// Host answers panel events.
type Host struct {
	logger zerolog.Logger
	delay  time.Duration
	reply  Replier
	now    func() time.Time

	mu         sync.Mutex
	transcript []models.Message
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) { h.logger = l.With().Str("component", "host").Logger() }
}

// WithDelay sets how long the typing indicator shows before a reply.
func WithDelay(d time.Duration) Option {
	return func(h *Host) { h.delay = d }
}

// WithReplier replaces the echo reply.
func WithReplier(r Replier) Option {
	return func(h *Host) {
		if r != nil {
			h.reply = r
		}
	}
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		if now != nil {
			h.now = now
		}
	}
}

// New creates a host with an empty transcript.
func New(opts ...Option) *Host {
	h := &Host{
		logger: zerolog.Nop(),
		reply:  Echo,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Transcript returns a copy of the conversation so far.
func (h *Host) Transcript() []models.Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]models.Message(nil), h.transcript...)
}

// HistoryJSON encodes the transcript as a loadHistory payload.
func (h *Host) HistoryJSON() (string, error) {
	msgs := h.Transcript()
	records := make([]models.HistoryRecord, 0, len(msgs))
	for _, m := range msgs {
		records = append(records, models.NewHistoryRecord(m))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode history")
	}
	return string(data), nil
}

func (h *Host) record(kind models.Kind, text string) models.Message {
	m := models.Message{Kind: kind, Text: text, Timestamp: h.now()}
	h.mu.Lock()
	h.transcript = append(h.transcript, m)
	h.mu.Unlock()
	return m
}

func (h *Host) clear() {
	h.mu.Lock()
	h.transcript = nil
	h.mu.Unlock()
}

// Attach serves one panel until its connection closes or ctx is done.
// Pending replies are abandoned when it returns.
func (h *Host) Attach(ctx context.Context, conn *bridge.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	h.logger.Info().Msg("panel attached")
	err := conn.Serve(ctx, bridge.HandlerFunc(func(f bridge.Frame) {
		h.handle(ctx, &wg, conn, f)
	}))
	h.logger.Info().Msg("panel detached")
	return err
}

func (h *Host) handle(ctx context.Context, wg *sync.WaitGroup, conn *bridge.Conn, f bridge.Frame) {
	if f.Type != bridge.FrameEvent {
		h.logger.Warn().Str("name", f.Name).Msg("ignoring non-event frame")
		return
	}

	switch f.Name {
	case bridge.EventAddInReady:
		payload, err := h.HistoryJSON()
		if err != nil {
			h.logger.Error().Err(err).Msg("cannot send history")
			return
		}
		h.invoke(conn, bridge.MethodLoadHistory, payload)

	case bridge.EventMessageSent:
		text := f.Arg(0).String()
		if text == "" {
			return
		}
		m := h.record(models.KindUser, text)
		h.invoke(conn, bridge.MethodAppendMessage, string(models.KindUser), text, stamp(m))
		h.invoke(conn, bridge.MethodSetTypingIndicator, true)

		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case <-time.After(h.delay):
			case <-ctx.Done():
				return
			}
			reply := h.record(models.KindAssistant, h.reply(text))
			h.invoke(conn, bridge.MethodAppendMessage, string(models.KindAssistant), reply.Text, stamp(reply))
		}()

	case bridge.EventChatCleared:
		h.clear()
		h.invoke(conn, bridge.MethodClearMessages)

	default:
		h.logger.Warn().Str("event", f.Name).Msg("unknown panel event")
	}
}

func (h *Host) invoke(conn *bridge.Conn, method string, args ...any) {
	if err := conn.Invoke(method, args...); err != nil {
		h.logger.Warn().Err(err).Str("method", method).Msg("call to panel failed")
	}
}

func stamp(m models.Message) string {
	return m.Timestamp.Format("15:04")
}

// Handler accepts panel websocket connections.
func (h *Host) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := bridge.Accept(w, r, bridge.WithLogger(h.logger))
		if err != nil {
			h.logger.Error().Err(err).Msg("rejected panel connection")
			return
		}
		defer conn.Close()
		if err := h.Attach(r.Context(), conn); err != nil && !errors.Is(err, context.Canceled) {
			h.logger.Warn().Err(err).Msg("panel connection ended")
		}
	})
}

// ListenAndServe serves panels on addr until ctx is cancelled.
func (h *Host) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/bridge", h.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	h.logger.Info().Str("addr", addr).Msg("host listening")
	select {
	case err := <-errCh:
		return errors.Wrapf(err, "failed to listen on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
