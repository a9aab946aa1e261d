package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles for the application. They only
// carry colors and attributes; geometry is drawn cell by cell on a Canvas.
type Styles struct {
	// Desktop
	Desktop      lipgloss.Style
	IconGlyph    lipgloss.Style
	IconLabel    lipgloss.Style
	IconSelected lipgloss.Style
	IconOpening  lipgloss.Style
	Rubberband   lipgloss.Style

	// Window styles
	WindowFrame   lipgloss.Style
	WindowBody    lipgloss.Style
	TitleActive   lipgloss.Style
	TitleInactive lipgloss.Style
	TitleButton   lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	// Taskbar
	Taskbar             lipgloss.Style
	TaskbarButton       lipgloss.Style
	TaskbarButtonActive lipgloss.Style
	StartButton         lipgloss.Style
	StartButtonPressed  lipgloss.Style
	Clock               lipgloss.Style

	// Start menu
	Menu             lipgloss.Style
	MenuBanner       lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuItemDisabled lipgloss.Style

	// Modal
	Modal          lipgloss.Style
	ModalTitle     lipgloss.Style
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	Input          lipgloss.Style
	InputCursor    lipgloss.Style
	Toast          lipgloss.Style

	// General
	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given colors
func NewStyles(c Colors) Styles {
	face := lipgloss.NewStyle().Background(c.Face).Foreground(c.Text)
	title := lipgloss.NewStyle().Foreground(c.TitleText).Bold(true)

	return Styles{
		Desktop: lipgloss.NewStyle().
			Background(c.Desktop),
		IconGlyph: lipgloss.NewStyle().
			Background(c.Desktop).
			Foreground(c.Face).
			Bold(true),
		IconLabel: lipgloss.NewStyle().
			Background(c.Desktop).
			Foreground(c.HighlightText),
		IconSelected: lipgloss.NewStyle().
			Background(c.Highlight).
			Foreground(c.HighlightText),
		IconOpening: lipgloss.NewStyle().
			Background(c.HighlightText).
			Foreground(c.Highlight).
			Bold(true),
		Rubberband: lipgloss.NewStyle().
			Background(c.Desktop).
			Foreground(c.HighlightText),

		WindowFrame: face,
		WindowBody: lipgloss.NewStyle().
			Background(c.Window).
			Foreground(c.Text),
		TitleActive:   title.Background(c.TitleActive),
		TitleInactive: title.Background(c.TitleInactive),
		TitleButton:   face.Bold(true),

		ListItem: lipgloss.NewStyle().
			Background(c.Window).
			Foreground(c.Text),
		ListItemSelected: lipgloss.NewStyle().
			Background(c.Highlight).
			Foreground(c.HighlightText),

		Taskbar:       face,
		TaskbarButton: face,
		TaskbarButtonActive: lipgloss.NewStyle().
			Background(c.HighlightText).
			Foreground(c.Text).
			Bold(true),
		StartButton: face.Bold(true),
		StartButtonPressed: lipgloss.NewStyle().
			Background(c.Shadow).
			Foreground(c.HighlightText).
			Bold(true),
		Clock: face,

		Menu: face,
		MenuBanner: lipgloss.NewStyle().
			Background(c.Shadow).
			Foreground(c.Face).
			Bold(true),
		MenuItemSelected: lipgloss.NewStyle().
			Background(c.Highlight).
			Foreground(c.HighlightText),
		MenuItemDisabled: lipgloss.NewStyle().
			Background(c.Face).
			Foreground(c.Disabled),

		Modal:      face,
		ModalTitle: title.Background(c.TitleActive),
		Button:     face,
		ButtonFocused: face.
			Bold(true).
			Underline(true),
		Input: lipgloss.NewStyle().
			Background(c.Window).
			Foreground(c.Text),
		InputCursor: lipgloss.NewStyle().
			Background(c.Text).
			Foreground(c.Window),
		Toast: lipgloss.NewStyle().
			Background(c.Tooltip).
			Foreground(c.Text),

		Muted: face.Foreground(c.Shadow),
		Bold:  face.Bold(true),
	}
}

// DefaultStyles returns styles with the default color palette
var DefaultStyles = NewStyles(DefaultColors)
