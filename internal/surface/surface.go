// Package surface defines the rendering capability the desktop components
// drive. Components mount and unmount nodes and toggle classes on them; they
// never touch a concrete UI toolkit.
package surface

import "sort"

// Kind identifies what a node represents
type Kind int

const (
	KindWindow Kind = iota
	KindTaskbarButton
	KindIcon
	KindSelectionRect
	KindStartButton
	KindStartMenu
	KindSubmenu
	KindToast
	KindDialog
)

func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindTaskbarButton:
		return "taskbar-button"
	case KindIcon:
		return "icon"
	case KindSelectionRect:
		return "selection-rect"
	case KindStartButton:
		return "start-button"
	case KindStartMenu:
		return "start-menu"
	case KindSubmenu:
		return "submenu"
	case KindToast:
		return "toast"
	case KindDialog:
		return "dialog"
	default:
		return "unknown"
	}
}

// Node is a handle to a mounted visual element
type Node struct {
	ID   string
	Kind Kind
}

// Common class names
const (
	ClassActive        = "active"
	ClassInactive      = "inactive"
	ClassHidden        = "hidden"
	ClassMaximized     = "maximized"
	ClassSelected      = "selected"
	ClassVisible       = "visible"
	ClassPressed       = "pressed"
	ClassDoubleClicked = "double-clicked"
)

// Surface is the rendering capability handed to every component
type Surface interface {
	Mount(n Node)
	Unmount(n Node)
	SetClass(n Node, name string, on bool)
}

type entry struct {
	node    Node
	seq     int
	classes map[string]bool
}

// Scene is a retained in-memory Surface. The terminal renderer reads it to
// decide how nodes look, and tests use it to observe what was mounted.
type Scene struct {
	nodes map[string]*entry
	seq   int
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{nodes: make(map[string]*entry)}
}

// Mount adds a node. Mounting an already mounted node is a no-op.
func (s *Scene) Mount(n Node) {
	if _, ok := s.nodes[n.ID]; ok {
		return
	}
	s.seq++
	s.nodes[n.ID] = &entry{node: n, seq: s.seq, classes: make(map[string]bool)}
}

// Unmount removes a node and its classes
func (s *Scene) Unmount(n Node) {
	delete(s.nodes, n.ID)
}

// SetClass toggles a class on a mounted node
func (s *Scene) SetClass(n Node, name string, on bool) {
	e, ok := s.nodes[n.ID]
	if !ok {
		return
	}
	if on {
		e.classes[name] = true
	} else {
		delete(e.classes, name)
	}
}

// Mounted reports whether a node with id is mounted
func (s *Scene) Mounted(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// HasClass reports whether the node with id carries class name
func (s *Scene) HasClass(id, name string) bool {
	e, ok := s.nodes[id]
	return ok && e.classes[name]
}

// Count returns the number of mounted nodes of a kind
func (s *Scene) Count(kind Kind) int {
	n := 0
	for _, e := range s.nodes {
		if e.node.Kind == kind {
			n++
		}
	}
	return n
}

// Nodes returns mounted nodes of a kind in mount order
func (s *Scene) Nodes(kind Kind) []Node {
	var entries []*entry
	for _, e := range s.nodes {
		if e.node.Kind == kind {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	nodes := make([]Node, len(entries))
	for i, e := range entries {
		nodes[i] = e.node
	}
	return nodes
}

type tee []Surface

// Tee returns a Surface that forwards every call to each of surfaces in
// order
func Tee(surfaces ...Surface) Surface {
	return tee(surfaces)
}

func (t tee) Mount(n Node) {
	for _, s := range t {
		s.Mount(n)
	}
}

func (t tee) Unmount(n Node) {
	for _, s := range t {
		s.Unmount(n)
	}
}

func (t tee) SetClass(n Node, name string, on bool) {
	for _, s := range t {
		s.SetClass(n, name, on)
	}
}
