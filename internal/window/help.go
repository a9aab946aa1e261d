package window

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/keys"
	"github.com/kmacinski/desk95/internal/ui"
)

// Help displays keybinding help
type Help struct {
	Base
}

// NewHelp creates a new help window
func NewHelp(styles *ui.Styles) *Help {
	return &Help{
		Base: NewBase("help", styles),
	}
}

// Update handles input (modal keys handled by app)
func (h *Help) Update(msg tea.Msg) (Window, tea.Cmd) {
	return h, nil
}

// Lines returns the help text
func (h *Help) Lines() []string {
	lines := []string{
		"Mouse: click icons, double-click to open,",
		"drag the desktop to select, drag title bars.",
		"",
	}
	for _, b := range keys.HelpBindings() {
		lines = append(lines, fmt.Sprintf("%-10s %s", b.Help().Key, b.Help().Desc))
	}
	lines = append(lines, "", "Press ? or Esc to close")
	return lines
}

// Size returns the box size needed to show the help
func (h *Help) Size() geom.Point {
	width := 0
	lines := h.Lines()
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	return geom.Point{X: width + 4, Y: len(lines) + 3}
}

// Draw renders the help box into area
func (h *Help) Draw(c *ui.Canvas, area geom.Rect) {
	if area.W < 4 || area.H < 3 {
		return
	}

	c.Fill(area, ' ', &h.styles.Modal)
	c.Box(area, ui.SingleBorder, &h.styles.Modal)
	c.Fill(geom.Rect{X: area.X, Y: area.Y, W: area.W, H: 1}, ' ', &h.styles.ModalTitle)
	c.PutClipped(area.X+1, area.Y, area.W-2, "Keybindings", &h.styles.ModalTitle)

	for i, line := range h.Lines() {
		y := area.Y + 2 + i
		if y >= area.Bottom()-1 {
			break
		}
		style := &h.styles.Modal
		if i == len(h.Lines())-1 {
			style = &h.styles.Muted
		}
		c.PutClipped(area.X+2, y, area.W-4, line, style)
	}
}
