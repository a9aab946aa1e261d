package layout

import (
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/window"
	"github.com/kmacinski/desk95/internal/wm"
)

// Target is what lies under a pointer position
type Target int

const (
	TargetNone Target = iota
	TargetDesktop
	TargetIcon
	TargetTitle
	TargetBody
	TargetBorder
	TargetMinimize
	TargetMaximize
	TargetClose
	TargetResize
	TargetTaskbar
	TargetTaskbarButton
	TargetStartButton
	TargetMenu
	TargetMenuItem
	TargetSubmenu
	TargetSubmenuItem
	TargetToast
	TargetDialog
	TargetDialogButton
	TargetDialogChoice
	TargetDialogClose
	TargetHelp
)

var targetNames = map[Target]string{
	TargetNone:          "none",
	TargetDesktop:       "desktop",
	TargetIcon:          "icon",
	TargetTitle:         "title",
	TargetBody:          "body",
	TargetBorder:        "border",
	TargetMinimize:      "minimize",
	TargetMaximize:      "maximize",
	TargetClose:         "close",
	TargetResize:        "resize",
	TargetTaskbar:       "taskbar",
	TargetTaskbarButton: "taskbar-button",
	TargetStartButton:   "start-button",
	TargetMenu:          "menu",
	TargetMenuItem:      "menu-item",
	TargetSubmenu:       "submenu",
	TargetSubmenuItem:   "submenu-item",
	TargetToast:         "toast",
	TargetDialog:        "dialog",
	TargetDialogButton:  "dialog-button",
	TargetDialogChoice:  "dialog-choice",
	TargetDialogClose:   "dialog-close",
	TargetHelp:          "help",
}

func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// Hit describes the thing under the pointer
type Hit struct {
	Target Target
	// Window is set for window parts and taskbar buttons
	Window wm.ID
	// Kind is the icon kind
	Kind string
	// Action is the menu item action
	Action string
	// Index is the dialog button or choice, or the content item under a
	// window body (-1 when the row is empty)
	Index int
	// Toast is the toast id
	Toast string
}

// HitTest maps a screen cell to what is drawn there, topmost first. While
// a dialog is open nothing outside it can be hit.
func (m *Manager) HitTest(v View, pt geom.Point) Hit {
	screen := geom.Rect{W: m.width, H: m.height}
	if !screen.Contains(pt) {
		return Hit{}
	}
	pl := m.plan(v)

	if v.Help != nil {
		if pl.help.Contains(pt) {
			return Hit{Target: TargetHelp}
		}
		return Hit{}
	}

	if pl.hasDialog {
		return dialogHit(pl.dialog, pt)
	}

	for _, t := range pl.toasts {
		if t.rect.Contains(pt) {
			return Hit{Target: TargetToast, Toast: t.toast.ID}
		}
	}

	if !pl.submenu.Empty() && pl.submenu.Contains(pt) {
		for _, slot := range pl.subItems {
			if slot.rect.Contains(pt) {
				return Hit{Target: TargetSubmenuItem, Action: slot.item.Action}
			}
		}
		return Hit{Target: TargetSubmenu}
	}
	if !pl.menu.Empty() && pl.menu.Contains(pt) {
		for _, slot := range pl.items {
			if slot.rect.Contains(pt) {
				return Hit{Target: TargetMenuItem, Action: slot.item.Action}
			}
		}
		return Hit{Target: TargetMenu}
	}

	if pl.taskbar.Contains(pt) {
		if pl.start.Contains(pt) {
			return Hit{Target: TargetStartButton}
		}
		for _, b := range pl.buttons {
			if b.rect.Contains(pt) {
				return Hit{Target: TargetTaskbarButton, Window: b.button.ID}
			}
		}
		return Hit{Target: TargetTaskbar}
	}

	for i := len(v.Windows) - 1; i >= 0; i-- {
		w := v.Windows[i]
		if w.Minimized || !w.Bounds.Contains(pt) {
			continue
		}
		return m.windowHit(v, w, pt)
	}

	for _, icon := range v.Icons {
		if icon.Bounds.Contains(pt) {
			return Hit{Target: TargetIcon, Kind: icon.Kind}
		}
	}
	return Hit{Target: TargetDesktop}
}

func (m *Manager) windowHit(v View, w wm.Window, pt geom.Point) Hit {
	ch := window.ChromeFor(w.Bounds)
	hit := Hit{Window: w.ID, Index: -1}

	switch ch.PartAt(pt) {
	case window.PartClose:
		hit.Target = TargetClose
	case window.PartMaximize:
		hit.Target = TargetMaximize
	case window.PartMinimize:
		hit.Target = TargetMinimize
	case window.PartTitle:
		hit.Target = TargetTitle
	case window.PartResize:
		hit.Target = TargetResize
		if w.Maximized {
			hit.Target = TargetBorder
		}
	case window.PartBody:
		hit.Target = TargetBody
		if list, ok := v.Lists[w.ID]; ok {
			if item, ok := list.ItemAt(pt.Y - ch.Body.Y); ok {
				hit.Index = item
			}
		}
	default:
		hit.Target = TargetBorder
	}
	return hit
}

func dialogHit(g window.DialogGeometry, pt geom.Point) Hit {
	if !g.Box.Contains(pt) {
		return Hit{}
	}
	if g.Close.Contains(pt) {
		return Hit{Target: TargetDialogClose}
	}
	for i, r := range g.Buttons {
		if r.Contains(pt) {
			return Hit{Target: TargetDialogButton, Index: i}
		}
	}
	for i, r := range g.Choices {
		if r.Contains(pt) {
			return Hit{Target: TargetDialogChoice, Index: i}
		}
	}
	return Hit{Target: TargetDialog}
}
