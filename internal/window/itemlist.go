package window

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/keys"
	"github.com/kmacinski/desk95/internal/ui"
)

// row is one wrapped screen line of an item
type row struct {
	item int
	text string
}

// ItemList displays the content lines of an application window with a
// cursor. Long lines wrap to the body width.
type ItemList struct {
	Base
	items  []string
	cursor int
	offset int // first visible row
	rows   []row
	height int
}

// NewItemList creates a new item list window
func NewItemList(name string, items []string, styles *ui.Styles) *ItemList {
	return &ItemList{
		Base:  NewBase(name, styles),
		items: items,
	}
}

// SetItems updates the list
func (l *ItemList) SetItems(items []string) {
	l.items = items
	if l.cursor >= len(items) {
		l.cursor = max(0, len(items)-1)
	}
}

// Cursor returns the selected item index
func (l *ItemList) Cursor() int {
	return l.cursor
}

// SetCursor selects item i
func (l *ItemList) SetCursor(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.cursor = i
	l.ensureVisible()
}

// ItemAt maps a body row, relative to the top of the body, to an item
func (l *ItemList) ItemAt(bodyRow int) (int, bool) {
	idx := l.offset + bodyRow
	if bodyRow < 0 || idx >= len(l.rows) {
		return 0, false
	}
	return l.rows[idx].item, true
}

// Scroll moves the viewport by delta rows
func (l *ItemList) Scroll(delta int) {
	maxOffset := max(0, len(l.rows)-l.height)
	l.offset = min(maxOffset, max(0, l.offset+delta))
}

// Update handles input
func (l *ItemList) Update(msg tea.Msg) (Window, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if l.cursor < len(l.items)-1 {
				l.cursor++
				l.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.GotoTop):
			l.cursor = 0
			l.offset = 0
		case key.Matches(msg, keys.DefaultKeyMap.GotoBot):
			l.cursor = max(0, len(l.items)-1)
			l.ensureVisible()
		}
	}

	return l, nil
}

func (l *ItemList) ensureVisible() {
	if l.height < 1 || len(l.rows) == 0 {
		return
	}

	first, last := -1, -1
	for i, r := range l.rows {
		if r.item == l.cursor {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return
	}

	if first < l.offset {
		l.offset = first
	} else if last >= l.offset+l.height {
		l.offset = min(first, last-l.height+1)
	}
}

// Draw renders the list into the window body
func (l *ItemList) Draw(c *ui.Canvas, area geom.Rect) {
	if area.W < 1 || area.H < 1 {
		return
	}
	l.height = area.H

	c.Fill(area, ' ', &l.styles.WindowBody)

	textWidth := max(1, area.W-2)
	l.rows = l.rows[:0]
	for i, item := range l.items {
		wrapped := ansi.Wrap(item, textWidth, "")
		for _, line := range strings.Split(wrapped, "\n") {
			l.rows = append(l.rows, row{item: i, text: line})
		}
	}
	l.Scroll(0)

	for y := 0; y < area.H && l.offset+y < len(l.rows); y++ {
		r := l.rows[l.offset+y]
		style := &l.styles.ListItem
		if l.focused && r.item == l.cursor {
			style = &l.styles.ListItemSelected
		}
		c.PutClipped(area.X, area.Y+y, area.W, " "+r.text, style)
	}
}
