package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kmacinski/desk95/internal/geom"
)

type cell struct {
	r     rune
	style *lipgloss.Style
	// wide marks the right half of a double-width rune
	wide bool
}

// Canvas is a grid of terminal cells that later layers paint over. Styles
// are held by pointer and adjacent cells sharing one are rendered as a
// single run.
type Canvas struct {
	width  int
	height int
	cells  []cell
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	width, height = max(0, width), max(0, height)
	c := &Canvas{width: width, height: height, cells: make([]cell, width*height)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

// Width returns the canvas width
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas area
func (c *Canvas) Bounds() geom.Rect {
	return geom.Rect{W: c.width, H: c.height}
}

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

// Set paints one rune
func (c *Canvas) Set(x, y int, r rune, style *lipgloss.Style) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	cur := c.at(x, y)
	if cur == nil {
		return
	}
	if w == 2 && c.at(x+1, y) == nil {
		r, w = ' ', 1
	}

	c.clearWide(x, y)
	*cur = cell{r: r, style: style}
	if w == 2 {
		c.clearWide(x+1, y)
		*c.at(x+1, y) = cell{style: style, wide: true}
	}
}

// clearWide blanks the other half of a wide rune that (x, y) belongs to
func (c *Canvas) clearWide(x, y int) {
	cur := c.at(x, y)
	if cur == nil {
		return
	}
	if cur.wide {
		if left := c.at(x-1, y); left != nil {
			left.r, left.wide = ' ', false
		}
		return
	}
	if runewidth.RuneWidth(cur.r) == 2 {
		if right := c.at(x+1, y); right != nil && right.wide {
			right.r, right.wide = ' ', false
		}
	}
}

// Put writes s starting at (x, y) and returns the column after it
func (c *Canvas) Put(x, y int, s string, style *lipgloss.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.Set(x, y, r, style)
		x += w
	}
	return x
}

// PutClipped writes s truncated to width cells and pads the rest
func (c *Canvas) PutClipped(x, y, width int, s string, style *lipgloss.Style) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	end := c.Put(x, y, s, style)
	for ; end < x+width; end++ {
		c.Set(end, y, ' ', style)
	}
}

// Fill paints r with ch
func (c *Canvas) Fill(r geom.Rect, ch rune, style *lipgloss.Style) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.Set(x, y, ch, style)
		}
	}
}

// Border is the set of runes used to outline a rectangle
type Border struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// SingleBorder is a light box
	SingleBorder = Border{'┌', '┐', '└', '┘', '─', '│'}
	// DashedBorder marks the rubber-band selection
	DashedBorder = Border{'┌', '┐', '└', '┘', '╌', '╎'}
)

// Box outlines r. The outline covers the cells of r itself.
func (c *Canvas) Box(r geom.Rect, b Border, style *lipgloss.Style) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.Set(x, r.Y, b.Horizontal, style)
		c.Set(x, bottom, b.Horizontal, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.Set(r.X, y, b.Vertical, style)
		c.Set(right, y, b.Vertical, style)
	}
	c.Set(r.X, r.Y, b.TopLeft, style)
	c.Set(right, r.Y, b.TopRight, style)
	c.Set(r.X, bottom, b.BottomLeft, style)
	c.Set(right, bottom, b.BottomRight, style)
}

// Row returns the text of row y without styling
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < c.width; x++ {
		cur := c.cells[y*c.width+x]
		if cur.wide {
			continue
		}
		b.WriteRune(cur.r)
	}
	return b.String()
}

// Plain returns the canvas text without styling
func (c *Canvas) Plain() string {
	rows := make([]string, c.height)
	for y := range rows {
		rows[y] = c.Row(y)
	}
	return strings.Join(rows, "\n")
}

// String renders the canvas with styles
func (c *Canvas) String() string {
	rows := make([]string, c.height)
	for y := range rows {
		var (
			b     strings.Builder
			run   strings.Builder
			style *lipgloss.Style
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style != nil {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}

		for x := 0; x < c.width; x++ {
			cur := c.cells[y*c.width+x]
			if cur.wide {
				continue
			}
			if cur.style != style {
				flush()
				style = cur.style
			}
			run.WriteRune(cur.r)
		}
		flush()
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}
