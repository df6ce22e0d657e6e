// Package content converts raw chat message text into HTML fragments.
//
// Text is classified into non-overlapping blocks (plain text, fenced code,
// pipe tables and inline code) that together cover the whole input. Blocks
// can be rendered to HTML with Render or consumed directly by views that do
// not speak HTML, such as the terminal panel.
package content

// BlockKind classifies a span of message text.
type BlockKind int

const (
	PlainText BlockKind = iota
	CodeBlock
	Table
	InlineCode
)

func (k BlockKind) String() string {
	switch k {
	case PlainText:
		return "text"
	case CodeBlock:
		return "code"
	case Table:
		return "table"
	case InlineCode:
		return "inline-code"
	default:
		return "unknown"
	}
}

// Block is one classified span of a message.
type Block struct {
	Kind BlockKind

	// Start and End are byte offsets of the span in the parsed text.
	Start int
	End   int

	// Text holds the raw span for PlainText, the trimmed body for CodeBlock
	// and InlineCode, and the trimmed source for Table.
	Text string

	// Lang is the language tag of a fenced block, if any.
	Lang string

	// Rows holds table cells; the first row is the header.
	Rows [][]string
}
