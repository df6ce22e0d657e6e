package content

import "strings"

// htmlEscaper mirrors how a DOM serializes a text node: quotes are left alone.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\u00a0", "&nbsp;",
)

// Escape makes s safe to embed as HTML text.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Format converts raw message text to an HTML fragment. It never panics; if
// classification fails for any reason the whole text is returned escaped.
func Format(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Escape(text)
		}
	}()
	return Render(Parse(text))
}

// Render produces the HTML fragment for a block list.
func Render(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case CodeBlock:
			sb.WriteString(`<div class="code-block">`)
			sb.WriteString(Escape(b.Text))
			sb.WriteString(`</div>`)
		case Table:
			if len(b.Rows) == 0 {
				sb.WriteString(Escape(b.Text))
				continue
			}
			writeTable(&sb, b.Rows)
		case InlineCode:
			sb.WriteString("<code>")
			sb.WriteString(Escape(b.Text))
			sb.WriteString("</code>")
		default:
			sb.WriteString(Escape(b.Text))
		}
	}
	return sb.String()
}
