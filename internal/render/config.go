package render

import (
	"os"

	"github.com/diogo/chatpanel/internal/config"
)

// EnvStyle overrides the configured glamour style.
const EnvStyle = "GLAMOUR_STYLE"

// OptionsFromConfig derives render options from the user configuration.
// GLAMOUR_STYLE takes precedence over the file.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()

	md := cfg.Markdown
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap

	if style := os.Getenv(EnvStyle); style != "" {
		opts.Style = style
	}
	return opts
}
