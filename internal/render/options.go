// Package render draws classified message content for terminal display.
package render

// Options configures terminal rendering of message content.
type Options struct {
	// Width is the column budget for wrapped text and code (default: 80)
	Width int

	// Style is a glamour style name ("dark", "light", ...) or a path to a JSON style
	Style string

	// PreserveNewLines keeps line breaks inside code blocks as written
	PreserveNewLines bool

	// TableWrap fits tables wider than Width by wrapping their cells
	TableWrap bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            StyleDark,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// WithTableWrap returns Options with table wrap enabled/disabled.
func (o Options) WithTableWrap(enabled bool) Options {
	o.TableWrap = enabled
	return o
}
