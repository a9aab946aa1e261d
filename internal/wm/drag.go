package wm

import (
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/surface"
)

type dragMode int

const (
	dragMove dragMode = iota
	dragResize
)

// Drag is a pointer-held move or resize of one window. It listens on the
// pointer bus from BeginDrag/BeginResize until the pointer is released.
type Drag struct {
	m      *Manager
	id     ID
	mode   dragMode
	start  geom.Point
	origin geom.Rect
	remove func()
	ended  bool
}

// BeginDrag starts moving a window with the pointer held on its title
// bar. The window is activated and leaves the maximized state, keeping
// its current geometry. Returns nil for unknown ids.
func (m *Manager) BeginDrag(id ID, start geom.Point) *Drag {
	return m.begin(id, start, dragMove)
}

// BeginResize starts resizing a window from its bottom-right corner
func (m *Manager) BeginResize(id ID, start geom.Point) *Drag {
	return m.begin(id, start, dragResize)
}

func (m *Manager) begin(id ID, start geom.Point, mode dragMode) *Drag {
	w, ok := m.windows[id]
	if !ok {
		return nil
	}

	m.Activate(id)
	if w.Maximized {
		w.Maximized = false
		m.surface.SetClass(id.Node(), surface.ClassMaximized, false)
		m.log.Debug().Stringer("window", id).Msg("window unmaximized by drag")
	}

	d := &Drag{
		m:      m,
		id:     id,
		mode:   mode,
		start:  start,
		origin: w.Bounds,
	}
	d.remove = m.bus.Add(d)
	return d
}

// PointerMove applies the pointer delta. The top edge never goes above
// the screen; horizontal movement is free.
func (d *Drag) PointerMove(p geom.Point) {
	w, ok := d.m.windows[d.id]
	if !ok || d.ended {
		return
	}

	delta := p.Sub(d.start)
	switch d.mode {
	case dragMove:
		w.Bounds.X = d.origin.X + delta.X
		w.Bounds.Y = max(0, d.origin.Y+delta.Y)
	case dragResize:
		w.Bounds.W = max(d.m.minSize.X, d.origin.W+delta.X)
		w.Bounds.H = max(d.m.minSize.Y, d.origin.H+delta.Y)
	}
}

// PointerUp ends the drag
func (d *Drag) PointerUp(geom.Point) {
	d.End()
}

// End deregisters the drag from the pointer bus. Safe to call more than
// once and on a nil drag.
func (d *Drag) End() {
	if d == nil || d.ended {
		return
	}
	d.ended = true
	d.remove()
	d.m.log.Debug().Stringer("window", d.id).Msg("drag ended")
}

// Active reports whether the drag still listens for pointer events
func (d *Drag) Active() bool {
	return d != nil && !d.ended
}
