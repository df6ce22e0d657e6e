// Package panel renders the chat panel as a standalone HTML document.
package panel

import (
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/diogo/chatpanel/internal/chatview"
)

// Document is an in-memory chatview.View that accumulates message markup.
// Like every view it is driven from a single event loop.
type Document struct {
	title        string
	entries      []chatview.Entry
	typing       bool
	inputEnabled bool
	input        string
	policy       *bluemonday.Policy
}

var _ chatview.View = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument(title string) *Document {
	if title == "" {
		title = "Chat"
	}
	return &Document{
		title:        title,
		inputEnabled: true,
		policy:       newPolicy(),
	}
}

var classPattern = regexp.MustCompile(`^[A-Za-z0-9_\- ]*$`)

// newPolicy allows exactly the markup the formatter and entries produce.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "code", "table", "tr", "th", "td")
	p.AllowAttrs("class").Matching(classPattern).Globally()
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).Globally()
	return p
}

func (d *Document) RenderMessage(e chatview.Entry) { d.entries = append(d.entries, e) }

func (d *Document) Clear() {
	d.entries = nil
	d.typing = false
}

// ScrollToEnd is a no-op; a static document has no scroll position.
func (d *Document) ScrollToEnd() {}

func (d *Document) SetInputEnabled(enabled bool) { d.inputEnabled = enabled }
func (d *Document) ShowTypingIndicator()          { d.typing = true }
func (d *Document) HideTypingIndicator()          { d.typing = false }
func (d *Document) InputValue() string            { return d.input }
func (d *Document) ResetInput()                   { d.input = "" }

// SetInput replaces the pending input text.
func (d *Document) SetInput(text string) { d.input = text }

// InputEnabled reports whether the document would accept a submit.
func (d *Document) InputEnabled() bool { return d.inputEnabled }

// Entries returns the rendered messages in order.
func (d *Document) Entries() []chatview.Entry {
	return append([]chatview.Entry(nil), d.entries...)
}

// Fragment returns the sanitized message list markup, typing indicator last.
func (d *Document) Fragment() string {
	var sb strings.Builder
	for _, e := range d.entries {
		sb.WriteString(e.HTML())
		sb.WriteString("\n")
	}
	if d.typing {
		sb.WriteString(chatview.TypingIndicatorHTML)
		sb.WriteString("\n")
	}
	return d.policy.Sanitize(sb.String())
}

type page struct {
	Title        string
	Messages     template.HTML
	InputEnabled bool
}

// WriteTo writes the full HTML page.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := pageTemplate.Execute(cw, page{
		Title: d.title,
		// Fragment is sanitized above.
		Messages:     template.HTML(d.Fragment()),
		InputEnabled: d.inputEnabled,
	})
	if err != nil {
		return cw.n, errors.Wrap(err, "failed to render document")
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
