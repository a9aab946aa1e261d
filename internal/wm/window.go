package wm

import (
	"fmt"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/surface"
)

// ID identifies a window. IDs are assigned in increasing order and never
// reused within a Manager.
type ID int

func (id ID) String() string {
	return fmt.Sprintf("window-%d", int(id))
}

// Window is a snapshot of one managed window
type Window struct {
	ID      ID
	Kind    string
	Title   string
	Icon    string
	Content []string

	Bounds    geom.Rect
	Minimized bool
	Maximized bool

	// saved holds the geometry to return to when leaving maximized
	saved geom.Rect
}

// Node returns the window's surface node
func (id ID) Node() surface.Node {
	return surface.Node{ID: id.String(), Kind: surface.KindWindow}
}

// ButtonNode returns the window's taskbar button node
func (id ID) ButtonNode() surface.Node {
	return surface.Node{ID: id.String() + "-button", Kind: surface.KindTaskbarButton}
}
