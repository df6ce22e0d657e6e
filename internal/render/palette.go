package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatpanel/internal/models"
)

// Palette is the color scheme of the terminal panel.
type Palette struct {
	Name        string
	Description string

	Border  lipgloss.Color
	Surface lipgloss.Color

	// Sender accents
	User      lipgloss.Color
	Assistant lipgloss.Color
	System    lipgloss.Color

	Code  lipgloss.Color
	Error lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

var (
	TokyoNight = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",
		Border:      lipgloss.Color("#414868"),
		Surface:     lipgloss.Color("#24283b"),
		User:        lipgloss.Color("#7aa2f7"),
		Assistant:   lipgloss.Color("#9ece6a"),
		System:      lipgloss.Color("#e0af68"),
		Code:        lipgloss.Color("#bb9af7"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
	}

	Catppuccin = Palette{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - warm pastels",
		Border:      lipgloss.Color("#45475a"),
		Surface:     lipgloss.Color("#313244"),
		User:        lipgloss.Color("#89b4fa"),
		Assistant:   lipgloss.Color("#a6e3a1"),
		System:      lipgloss.Color("#f9e2af"),
		Code:        lipgloss.Color("#cba6f7"),
		Error:       lipgloss.Color("#f38ba8"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
	}

	Nord = Palette{
		Name:        "nord",
		Description: "Nord - cool arctic tones",
		Border:      lipgloss.Color("#4c566a"),
		Surface:     lipgloss.Color("#3b4252"),
		User:        lipgloss.Color("#88c0d0"),
		Assistant:   lipgloss.Color("#a3be8c"),
		System:      lipgloss.Color("#ebcb8b"),
		Code:        lipgloss.Color("#b48ead"),
		Error:       lipgloss.Color("#bf616a"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
	}
)

// Palettes returns every built-in palette, default first.
func Palettes() []Palette {
	return []Palette{TokyoNight, Catppuccin, Nord}
}

// PaletteByName looks a palette up, falling back to TokyoNight.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range Palettes() {
		if p.Name == name {
			return p, true
		}
	}
	return TokyoNight, false
}

// Accent returns the color used for messages of the given kind.
func (p Palette) Accent(kind models.Kind) lipgloss.Color {
	switch kind {
	case models.KindUser:
		return p.User
	case models.KindAssistant:
		return p.Assistant
	case models.KindSystem:
		return p.System
	default:
		return p.TextDim
	}
}
