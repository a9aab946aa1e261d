package window

import (
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/ui"
	"github.com/kmacinski/desk95/internal/wm"
)

// Part is a region of a window's chrome
type Part int

const (
	PartNone Part = iota
	PartTitle
	PartMinimize
	PartMaximize
	PartClose
	PartBody
	PartBorder
	PartResize
)

const (
	controlWidth = 3
	// below this width only the close button fits
	fullControlsWidth = 14
)

// Chrome is the geometry of a window's decorations
type Chrome struct {
	Bounds   geom.Rect
	Title    geom.Rect
	Minimize geom.Rect
	Maximize geom.Rect
	Close    geom.Rect
	Body     geom.Rect
	Resize   geom.Rect
}

// ChromeFor lays out the decorations of a window occupying b: a title row
// with [_][#][X] on the right, a one-cell border and a resize grip in the
// bottom-right corner.
func ChromeFor(b geom.Rect) Chrome {
	c := Chrome{
		Bounds: b,
		Title:  geom.Rect{X: b.X, Y: b.Y, W: b.W, H: 1},
		Body:   geom.Rect{X: b.X + 1, Y: b.Y + 1, W: max(0, b.W-2), H: max(0, b.H-2)},
		Resize: geom.Rect{X: b.Right() - 1, Y: b.Bottom() - 1, W: 1, H: 1},
	}

	c.Close = geom.Rect{X: b.Right() - controlWidth, Y: b.Y, W: controlWidth, H: 1}
	if b.W >= fullControlsWidth {
		c.Maximize = geom.Rect{X: c.Close.X - controlWidth, Y: b.Y, W: controlWidth, H: 1}
		c.Minimize = geom.Rect{X: c.Maximize.X - controlWidth, Y: b.Y, W: controlWidth, H: 1}
	}
	return c
}

// PartAt returns the part of the window under p
func (c Chrome) PartAt(p geom.Point) Part {
	switch {
	case !c.Bounds.Contains(p):
		return PartNone
	case c.Close.Contains(p):
		return PartClose
	case c.Maximize.Contains(p):
		return PartMaximize
	case c.Minimize.Contains(p):
		return PartMinimize
	case c.Title.Contains(p):
		return PartTitle
	case c.Resize.Contains(p):
		return PartResize
	case c.Body.Contains(p):
		return PartBody
	default:
		return PartBorder
	}
}

// DrawFrame paints the chrome of w. The body is left for the content view.
func DrawFrame(c *ui.Canvas, w wm.Window, active bool, styles *ui.Styles) Chrome {
	ch := ChromeFor(w.Bounds)

	c.Fill(w.Bounds, ' ', &styles.WindowFrame)
	c.Box(w.Bounds, ui.SingleBorder, &styles.WindowFrame)

	title := &styles.TitleInactive
	if active {
		title = &styles.TitleActive
	}
	c.Fill(ch.Title, ' ', title)

	text := " " + w.Title
	if w.Icon != "" {
		text = " " + w.Icon + text
	}
	width := ch.Title.W - 1
	if !ch.Minimize.Empty() {
		width = ch.Minimize.X - ch.Title.X - 1
	} else if !ch.Close.Empty() {
		width = ch.Close.X - ch.Title.X - 1
	}
	c.PutClipped(ch.Title.X, ch.Title.Y, width, text, title)

	if !ch.Minimize.Empty() {
		c.Put(ch.Minimize.X, ch.Minimize.Y, "[_]", &styles.TitleButton)
		maxLabel := "[#]"
		if w.Maximized {
			maxLabel = "[=]"
		}
		c.Put(ch.Maximize.X, ch.Maximize.Y, maxLabel, &styles.TitleButton)
	}
	c.Put(ch.Close.X, ch.Close.Y, "[X]", &styles.TitleButton)

	if !w.Maximized {
		c.Set(ch.Resize.X, ch.Resize.Y, '◢', &styles.WindowFrame)
	}
	return ch
}
