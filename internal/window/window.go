package window

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/ui"
)

// Window defines the interface for all drawable views
type Window interface {
	// Update handles input when focused
	Update(msg tea.Msg) (Window, tea.Cmd)

	// Draw paints the view into area
	Draw(c *ui.Canvas, area geom.Rect)

	// Focus state
	Focused() bool
	SetFocus(bool)

	// Identity
	Name() string
}
