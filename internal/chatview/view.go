// Package chatview holds the chat panel state machine: the send-in-flight
// flag, the typing indicator and the mapping of host calls and user actions
// onto an injected view.
package chatview

import (
	"html"
	"strings"

	"github.com/diogo/chatpanel/internal/content"
	"github.com/diogo/chatpanel/internal/models"
)

// View is the surface a Controller draws on. Implementations are not
// expected to be goroutine-safe; the controller calls them from its event loop.
type View interface {
	RenderMessage(Entry)
	Clear()
	ScrollToEnd()
	SetInputEnabled(enabled bool)
	ShowTypingIndicator()
	HideTypingIndicator()
	InputValue() string
	// ResetInput clears the input text and shrinks it back to its natural height.
	ResetInput()
}

// Notifier delivers panel events to the host.
type Notifier interface {
	Notify(event string, args any) error
}

// Entry is a rendered message.
type Entry struct {
	ID     string
	Kind   models.Kind
	Class  string
	Sender string
	Text   string
	Body   string
	Blocks []content.Block
	Time   string
}

// HTML returns the markup for the entry as it appears in the message list.
func (e Entry) HTML() string {
	var sb strings.Builder
	sb.WriteString(`<div class="message `)
	sb.WriteString(html.EscapeString(e.Class))
	sb.WriteString(`" id="`)
	sb.WriteString(html.EscapeString(e.ID))
	sb.WriteString(`"><div class="message-bubble">`)
	sb.WriteString(e.Body)
	sb.WriteString(`</div><div class="message-meta"><span class="message-sender">`)
	sb.WriteString(content.Escape(e.Sender))
	sb.WriteString(`</span><span>`)
	sb.WriteString(content.Escape(e.Time))
	sb.WriteString(`</span></div></div>`)
	return sb.String()
}

// TypingIndicatorHTML is the markup of the "AI is thinking" entry.
const TypingIndicatorHTML = `<div class="message assistant typing-indicator" id="typingIndicator">` +
	`<div class="message-bubble">AI is thinking<span class="typing-dots">` +
	`<span>.</span><span>.</span><span>.</span></span></div></div>`
