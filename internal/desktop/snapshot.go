package desktop

import (
	"github.com/kmacinski/desk95/internal/dialog"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/notify"
	"github.com/kmacinski/desk95/internal/selection"
	"github.com/kmacinski/desk95/internal/startmenu"
	"github.com/kmacinski/desk95/internal/surface"
	"github.com/kmacinski/desk95/internal/wm"
)

// IconView is an icon as the renderer sees it
type IconView struct {
	selection.Icon
	Glyph     string
	Selected  bool
	Animating bool
}

// TaskButton is a mounted taskbar button and the window it controls
type TaskButton struct {
	wm.Window
	Pressed bool
}

// MenuView is the Start menu as the renderer sees it
type MenuView struct {
	State        startmenu.State
	Items        []startmenu.Item
	Submenu      string
	StartPressed bool
}

// Snapshot is a read-only view of the whole desktop for one frame.
// Visibility and state classes come from the scene; geometry and text
// come from the controllers.
type Snapshot struct {
	Screen geom.Point

	Icons     []IconView
	Selecting bool
	Rect      geom.Rect

	// Windows are in z-order, bottom first
	Windows   []wm.Window
	Taskbar   []TaskButton
	Active    wm.ID
	HasActive bool

	Menu   MenuView
	Dialog *dialog.Dialog
	Toasts []notify.Toast
}

// Snapshot captures the current state
func (d *Desktop) Snapshot() Snapshot {
	sc := d.scene
	s := Snapshot{Screen: d.Screen()}

	buttons := make(map[string]wm.Window)
	for _, w := range d.windows.Windows() {
		node := w.ID.Node().ID
		if !sc.Mounted(node) {
			continue
		}
		w.Minimized = sc.HasClass(node, surface.ClassHidden)
		w.Maximized = sc.HasClass(node, surface.ClassMaximized)
		if sc.HasClass(node, surface.ClassActive) {
			s.Active, s.HasActive = w.ID, true
		}
		s.Windows = append(s.Windows, w)
		buttons[w.ID.ButtonNode().ID] = w
	}
	for _, n := range sc.Nodes(surface.KindTaskbarButton) {
		if w, ok := buttons[n.ID]; ok {
			s.Taskbar = append(s.Taskbar, TaskButton{
				Window:  w,
				Pressed: sc.HasClass(n.ID, surface.ClassActive),
			})
		}
	}

	for _, icon := range d.icons.Icons() {
		node := icon.Node().ID
		if !sc.Mounted(node) {
			continue
		}
		v := IconView{
			Icon:      icon,
			Selected:  sc.HasClass(node, surface.ClassSelected),
			Animating: sc.HasClass(node, surface.ClassDoubleClicked),
		}
		if e, ok := d.deps.Catalog.Lookup(icon.Kind); ok {
			v.Glyph = e.Glyph
		}
		s.Icons = append(s.Icons, v)
	}
	if sc.HasClass(selection.RectNode.ID, surface.ClassVisible) {
		s.Rect, s.Selecting = d.icons.Rect()
	}

	s.Menu = d.menuView()

	for _, t := range d.toasts.Active() {
		if sc.HasClass(t.Node().ID, surface.ClassVisible) {
			s.Toasts = append(s.Toasts, t)
		}
	}
	if dlg, ok := d.dialogs.Current(); ok && sc.HasClass(dlg.Node().ID, surface.ClassVisible) {
		s.Dialog = dlg
	}
	return s
}

func (d *Desktop) menuView() MenuView {
	sc := d.scene
	v := MenuView{
		Items:        d.menu.Items(),
		StartPressed: sc.HasClass(startmenu.ButtonNode.ID, surface.ClassPressed),
	}
	if !sc.HasClass(startmenu.MenuNode.ID, surface.ClassVisible) {
		return v
	}

	v.State = startmenu.Open
	for _, it := range v.Items {
		if it.HasChildren() && sc.HasClass(startmenu.SubmenuNode(it.Action).ID, surface.ClassVisible) {
			v.State = startmenu.SubmenuOpen
			v.Submenu = it.Action
			break
		}
	}
	return v
}

// Window returns the snapshot of window id
func (s Snapshot) Window(id wm.ID) (wm.Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return wm.Window{}, false
}
