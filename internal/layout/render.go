package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kmacinski/desk95/internal/ui"
	"github.com/kmacinski/desk95/internal/window"
)

// Render draws the whole desktop, bottom layer first
func (m *Manager) Render(v View) string {
	c := m.Draw(v)
	if c == nil {
		return ""
	}
	return c.String()
}

// Draw composes the frame onto a fresh canvas
func (m *Manager) Draw(v View) *ui.Canvas {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	p := m.plan(v)
	c := ui.NewCanvas(m.width, m.height)
	s := m.styles

	c.Fill(p.screen, ' ', &s.Desktop)
	m.drawIcons(c, v)

	for _, w := range v.Windows {
		if w.Minimized {
			continue
		}
		active := v.HasActive && v.Active == w.ID
		ch := window.DrawFrame(c, w, active, s)
		if list, ok := v.Lists[w.ID]; ok {
			list.Draw(c, ch.Body)
		}
	}

	if v.Selecting {
		// the pointer cell itself is part of the outline
		r := v.Rect
		r.W++
		r.H++
		c.Box(r, ui.DashedBorder, &s.Rubberband)
	}

	if !p.menu.Empty() {
		m.drawMenu(c, p, v)
	}
	m.drawTaskbar(c, p, v)

	for _, t := range p.toasts {
		c.Fill(t.rect, ' ', &s.Toast)
		c.Box(t.rect, ui.SingleBorder, &s.Toast)
		c.PutClipped(t.rect.X+toastPadding, t.rect.Y+1, t.rect.W-2*toastPadding, t.toast.Message, &s.Toast)
	}

	if p.hasDialog && v.DialogView != nil {
		v.DialogView.Draw(c, p.screen)
	}
	if v.Help != nil {
		v.Help.Draw(c, p.help)
	}
	return c
}

func (m *Manager) drawIcons(c *ui.Canvas, v View) {
	s := m.styles
	for _, icon := range v.Icons {
		b := icon.Bounds
		glyph, label := &s.IconGlyph, &s.IconLabel
		switch {
		case icon.Animating:
			glyph, label = &s.IconOpening, &s.IconOpening
		case icon.Selected:
			label = &s.IconSelected
		}
		putCentered(c, b.X, b.Y, b.W, icon.Glyph, glyph)
		putCentered(c, b.X, b.Y+1, b.W, icon.Label, label)
	}
}

// putCentered writes s centered in a field of width cells, truncating it
// when it does not fit
func putCentered(c *ui.Canvas, x, y, width int, s string, style *lipgloss.Style) {
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	c.Put(x+pad, y, s, style)
}

func (m *Manager) drawMenu(c *ui.Canvas, p plan, v View) {
	s := m.styles
	c.Fill(p.menu, ' ', &s.Menu)
	c.Box(p.menu, ui.SingleBorder, &s.Menu)

	// banner text reads bottom to top
	c.Fill(p.banner, ' ', &s.MenuBanner)
	banner := []rune(menuBannerText)
	for i, r := range banner {
		y := p.banner.Bottom() - 1 - i
		if y < p.banner.Y {
			break
		}
		c.Set(p.banner.X, y, r, &s.MenuBanner)
	}

	for _, slot := range p.items {
		if slot.item.Separator && slot.rect.Y-1 > p.menu.Y {
			c.Put(slot.rect.X, slot.rect.Y-1, strings.Repeat("─", slot.rect.W), &s.Menu)
		}
		m.drawItem(c, slot, v.MenuHover == slot.item.Action || v.Menu.Submenu == slot.item.Action)
	}

	if p.submenu.Empty() {
		return
	}
	c.Fill(p.submenu, ' ', &s.Menu)
	c.Box(p.submenu, ui.SingleBorder, &s.Menu)
	for _, slot := range p.subItems {
		m.drawItem(c, slot, v.MenuHover == slot.item.Action)
	}
}

func (m *Manager) drawItem(c *ui.Canvas, slot itemSlot, highlighted bool) {
	s := m.styles
	style := &s.Menu
	switch {
	case slot.item.Disabled:
		style = &s.MenuItemDisabled
	case highlighted:
		style = &s.MenuItemSelected
	}

	r := slot.rect
	if slot.item.HasChildren() {
		c.PutClipped(r.X, r.Y, r.W-2, itemText(slot.item), style)
		c.PutClipped(r.Right()-2, r.Y, 2, submenuArrow+" ", style)
		return
	}
	c.PutClipped(r.X, r.Y, r.W, itemText(slot.item), style)
}

func (m *Manager) drawTaskbar(c *ui.Canvas, p plan, v View) {
	s := m.styles
	c.Fill(p.taskbar, ' ', &s.Taskbar)

	start := &s.StartButton
	if v.Menu.StartPressed {
		start = &s.StartButtonPressed
	}
	c.Put(p.start.X, p.start.Y, startLabel, start)

	for _, b := range p.buttons {
		w := b.button
		style := &s.TaskbarButton
		if w.Pressed {
			style = &s.TaskbarButtonActive
		}
		label := w.Title
		if w.Icon != "" {
			label = w.Icon + " " + label
		}
		c.PutClipped(b.rect.X, b.rect.Y, b.rect.W, label, style)
	}

	c.PutClipped(p.clock.X, p.clock.Y, p.clock.W, " "+v.Clock+" ", &s.Clock)
}
