// Package tui provides the terminal chat panel.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatpanel/internal/models"
	"github.com/diogo/chatpanel/internal/render"
)

// Active palette (updated by ApplyPalette)
var palette = render.TokyoNight

// Style variables (rebuilt when the palette changes)
var (
	// Header panel
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	// Message bubbles; the border color follows the sender
	bubbleStyle lipgloss.Style
	labelStyle  lipgloss.Style
	metaStyle   lipgloss.Style

	// Typing indicator
	typingStyle lipgloss.Style

	// Input area panel
	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	waitingStyle    lipgloss.Style

	// Status bar
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style

	// Welcome screen
	welcomeTitleStyle lipgloss.Style
	welcomeStyle      lipgloss.Style
)

func init() {
	ApplyPalette(render.TokyoNight)
}

// ApplyPalette switches the color scheme and rebuilds every style.
func ApplyPalette(p render.Palette) {
	palette = p
	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(palette.User).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(palette.Border).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 1)

	bubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Foreground(palette.Text).
		Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
		Bold(true)

	metaStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	typingStyle = lipgloss.NewStyle().
		Foreground(palette.Assistant).
		Italic(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(palette.User).
		Bold(true)

	waitingStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim).
		Italic(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(palette.Text).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(palette.System)

	errorStyle = lipgloss.NewStyle().
		Foreground(palette.Error).
		Bold(true)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(palette.User).
		Bold(true).
		Align(lipgloss.Center)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(palette.TextDim).
		Align(lipgloss.Center)
}

// bubbleFor returns the bubble style for a sender. User messages are
// indented from the left, everything else from the right.
func bubbleFor(kind models.Kind) lipgloss.Style {
	s := bubbleStyle.BorderForeground(palette.Accent(kind))
	if kind == models.KindUser {
		return s.MarginLeft(4)
	}
	return s.MarginRight(4)
}

func labelFor(kind models.Kind) lipgloss.Style {
	s := labelStyle.Foreground(palette.Accent(kind))
	if kind == models.KindUser {
		return s.MarginLeft(4)
	}
	return s
}
