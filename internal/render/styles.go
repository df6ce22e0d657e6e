package render

// Glamour styles for code blocks.
const (
	StyleDark    = "dark"
	StyleLight   = "light"
	StyleDracula = "dracula"
	StyleTokyo   = "tokyo-night"
	StylePink    = "pink"
	StyleNoTTY   = "notty"
	StyleASCII   = "ascii"
)

// StyleNames lists the glamour styles accepted by name.
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleTokyo, StylePink, StyleNoTTY, StyleASCII}
}

// IsBuiltinStyle reports whether style names a glamour style rather than a file.
func IsBuiltinStyle(style string) bool {
	for _, s := range StyleNames() {
		if s == style {
			return true
		}
	}
	return false
}
