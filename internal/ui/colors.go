package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kmacinski/desk95/internal/config"
)

// Colors defines the color palette for the application
type Colors struct {
	Desktop       lipgloss.Color
	Face          lipgloss.Color
	Text          lipgloss.Color
	TitleActive   lipgloss.Color
	TitleInactive lipgloss.Color
	TitleText     lipgloss.Color
	Highlight     lipgloss.Color
	HighlightText lipgloss.Color
	Shadow        lipgloss.Color
	Disabled      lipgloss.Color
	Window        lipgloss.Color
	Tooltip       lipgloss.Color
}

// DefaultColors returns the default color palette
var DefaultColors = ColorsFromTheme(config.Default().Theme)

// ColorsFromTheme builds a palette from configured hex colors
func ColorsFromTheme(t config.ThemeConfig) Colors {
	return Colors{
		Desktop:       lipgloss.Color(t.Desktop),
		Face:          lipgloss.Color(t.Face),
		Text:          lipgloss.Color(t.Text),
		TitleActive:   lipgloss.Color(t.TitleActive),
		TitleInactive: lipgloss.Color(t.TitleInactive),
		TitleText:     lipgloss.Color(t.TitleText),
		Highlight:     lipgloss.Color(t.Highlight),
		HighlightText: lipgloss.Color("#ffffff"),
		Shadow:        lipgloss.Color(t.Shadow),
		Disabled:      lipgloss.Color(t.Disabled),
		Window:        lipgloss.Color("#ffffff"),
		Tooltip:       lipgloss.Color("#ffffe1"),
	}
}
