package chatview

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diogo/chatpanel/internal/bridge"
	"github.com/diogo/chatpanel/internal/content"
	apperrors "github.com/diogo/chatpanel/internal/errors"
	"github.com/diogo/chatpanel/internal/models"
)

// Controller owns the panel state. It is not safe for concurrent use: run
// every method on a single event loop (see Loop, or the TUI update loop).
type Controller struct {
	view     View
	notifier Notifier
	logger   zerolog.Logger
	loc      *time.Location
	newID    func() string

	processing    bool
	typingVisible bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l.With().Str("component", "chatview").Logger()
	}
}

// WithLocation sets the zone timestamps are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithIDs replaces the entry id generator.
func WithIDs(next func() string) Option {
	return func(c *Controller) {
		if next != nil {
			c.newID = next
		}
	}
}

// New creates a controller drawing on view. notifier may be nil, in which
// case every notification fails as an unavailable bridge.
func New(view View, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		view:     view,
		notifier: notifier,
		logger:   zerolog.Nop(),
		loc:      time.Local,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetNotifier swaps the outbound channel, e.g. after a reconnect.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// Processing reports whether a submitted message is awaiting a host reply.
func (c *Controller) Processing() bool { return c.processing }

// TypingVisible reports whether the typing indicator is shown.
func (c *Controller) TypingVisible() bool { return c.typingVisible }

// AppendMessage renders a message after all existing ones. It always
// clears the in-flight flag, whether or not a send was pending.
func (c *Controller) AppendMessage(kind models.Kind, text, timestamp string) {
	c.hideIndicator()
	c.view.RenderMessage(c.newEntry(kind, text, timestamp))
	c.view.ScrollToEnd()
	c.processing = false
	c.view.SetInputEnabled(true)
}

func (c *Controller) newEntry(kind models.Kind, text, timestamp string) Entry {
	blocks := content.Parse(text)
	return Entry{
		ID:     c.newID(),
		Kind:   kind,
		Class:  kind.Class(),
		Sender: models.SenderLabel(kind),
		Text:   text,
		Body:   content.Format(text),
		Blocks: blocks,
		Time:   timestamp,
	}
}

// ClearMessages removes every entry and the typing indicator, and resets
// the in-flight flag.
func (c *Controller) ClearMessages() {
	c.view.Clear()
	c.typingVisible = false
	c.processing = false
	c.view.SetInputEnabled(true)
}

// SetTypingIndicator shows or hides the indicator. Both directions are
// idempotent.
func (c *Controller) SetTypingIndicator(visible bool) {
	if visible {
		if c.typingVisible {
			return
		}
		c.view.ShowTypingIndicator()
		c.typingVisible = true
		c.view.ScrollToEnd()
		return
	}
	c.hideIndicator()
}

func (c *Controller) hideIndicator() {
	if !c.typingVisible {
		return
	}
	c.view.HideTypingIndicator()
	c.typingVisible = false
}

// Submit sends the current input to the host. Empty input and a pending
// send are silently ignored. A failed notification re-enables input.
func (c *Controller) Submit() {
	text := strings.TrimSpace(c.view.InputValue())
	if text == "" || c.processing {
		return
	}

	c.view.ResetInput()
	c.processing = true
	c.view.SetInputEnabled(false)

	if err := c.notify(bridge.EventMessageSent, []string{text}); err != nil {
		c.logger.Error().Err(err).Msg("failed to send message to host")
		c.processing = false
		c.view.SetInputEnabled(true)
	}
}

// RequestClear asks the host to clear the conversation. The host answers
// with clearMessages; nothing is removed locally.
func (c *Controller) RequestClear() {
	if err := c.notify(bridge.EventChatCleared, nil); err != nil {
		c.logger.Error().Err(err).Msg("failed to request clear")
	}
}

// Ready tells the host the panel has finished loading.
func (c *Controller) Ready() {
	if err := c.notify(bridge.EventAddInReady, nil); err != nil {
		c.logger.Warn().Err(err).Msg("failed to announce panel ready")
	}
}

func (c *Controller) notify(event string, args any) error {
	if c.notifier == nil {
		return apperrors.NewUnavailableError("notify", event)
	}
	return c.notifier.Notify(event, args)
}
