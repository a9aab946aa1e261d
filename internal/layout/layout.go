package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/kmacinski/desk95/internal/desktop"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/notify"
	"github.com/kmacinski/desk95/internal/startmenu"
	"github.com/kmacinski/desk95/internal/ui"
	"github.com/kmacinski/desk95/internal/window"
	"github.com/kmacinski/desk95/internal/wm"
)

const (
	startLabel       = "[Start]"
	maxTaskButton    = 20
	minTaskButton    = 6
	menuBannerText   = "desk95"
	submenuArrow     = "►"
	toastPadding     = 2
	toastMargin      = 1
	helpMaxWidth     = 56
	taskButtonMargin = 1
)

// View is everything drawn in one frame
type View struct {
	desktop.Snapshot

	Clock string
	// Lists hold the content view of each open window
	Lists      map[wm.ID]*window.ItemList
	DialogView *window.DialogView
	// Help is drawn on top of everything when set
	Help *window.Help
	// MenuHover is the action of the highlighted menu item
	MenuHover string
}

// Manager places the desktop pieces on the terminal and maps pointer
// positions back to them
type Manager struct {
	styles  *ui.Styles
	width   int
	height  int
	taskbar int
}

// NewManager creates a new layout manager
func NewManager(styles *ui.Styles, taskbarHeight int) *Manager {
	return &Manager{
		styles:  styles,
		taskbar: max(1, taskbarHeight),
	}
}

// Resize updates the layout dimensions
func (m *Manager) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Size returns the layout dimensions
func (m *Manager) Size() geom.Point {
	return geom.Point{X: m.width, Y: m.height}
}

type taskSlot struct {
	button desktop.TaskButton
	rect   geom.Rect
}

type itemSlot struct {
	item startmenu.Item
	rect geom.Rect
}

type toastSlot struct {
	toast notify.Toast
	rect  geom.Rect
}

// plan is the resolved geometry of one frame. Render and HitTest share it
// so what is drawn is exactly what is clickable.
type plan struct {
	screen  geom.Rect
	taskbar geom.Rect
	start   geom.Rect
	clock   geom.Rect
	buttons []taskSlot

	menu     geom.Rect
	banner   geom.Rect
	items    []itemSlot
	submenu  geom.Rect
	subItems []itemSlot

	toasts []toastSlot

	dialog    window.DialogGeometry
	hasDialog bool

	help geom.Rect
}

func (m *Manager) plan(v View) plan {
	p := plan{screen: geom.Rect{W: m.width, H: m.height}}

	bar := min(m.taskbar, m.height)
	p.taskbar = geom.Rect{X: 0, Y: m.height - bar, W: m.width, H: bar}
	p.start = geom.Rect{X: 0, Y: p.taskbar.Y, W: runewidth.StringWidth(startLabel), H: 1}

	clockW := runewidth.StringWidth(v.Clock) + 2
	p.clock = geom.Rect{X: max(p.start.Right(), m.width-clockW), Y: p.taskbar.Y, W: clockW, H: 1}
	m.planTaskButtons(&p, v)

	if v.Menu.State != startmenu.Closed {
		m.planMenu(&p, v)
	}

	y := toastMargin
	for _, t := range v.Toasts {
		w := min(m.width, runewidth.StringWidth(t.Message)+2*toastPadding)
		r := geom.Rect{X: max(0, m.width-w-toastMargin), Y: y, W: w, H: 3}
		p.toasts = append(p.toasts, toastSlot{toast: t, rect: r})
		y += r.H
	}

	if v.Snapshot.Dialog != nil {
		p.dialog = window.DialogLayout(v.Snapshot.Dialog, geom.Point{X: m.width, Y: m.height})
		p.hasDialog = true
	}

	if v.Help != nil {
		size := v.Help.Size()
		w := min(max(size.X, 20), helpMaxWidth, m.width)
		h := min(size.Y, m.height)
		p.help = geom.Rect{X: (m.width - w) / 2, Y: (m.height - h) / 2, W: w, H: h}
	}
	return p
}

func (m *Manager) planTaskButtons(p *plan, v View) {
	n := len(v.Taskbar)
	if n == 0 {
		return
	}
	x := p.start.Right() + taskButtonMargin
	room := p.clock.X - taskButtonMargin - x
	w := min(maxTaskButton, room/n-taskButtonMargin)
	if w < minTaskButton {
		w = minTaskButton
	}
	for _, b := range v.Taskbar {
		if x+w > p.clock.X {
			break
		}
		p.buttons = append(p.buttons, taskSlot{button: b, rect: geom.Rect{X: x, Y: p.taskbar.Y, W: w, H: 1}})
		x += w + taskButtonMargin
	}
}

func itemText(it startmenu.Item) string {
	text := " " + it.Label
	if it.Icon != "" {
		text = " " + it.Icon + text
	}
	return text
}

func (m *Manager) planMenu(p *plan, v View) {
	items := v.Menu.Items
	width := 0
	rows := 0
	for _, it := range items {
		width = max(width, runewidth.StringWidth(itemText(it))+3)
		rows++
		if it.Separator {
			rows++
		}
	}

	// border, banner column and border
	w := min(width+3, m.width)
	h := min(rows+2, p.taskbar.Y)
	p.menu = geom.Rect{X: 0, Y: p.taskbar.Y - h, W: w, H: h}
	p.banner = geom.Rect{X: p.menu.X + 1, Y: p.menu.Y + 1, W: 1, H: max(0, h-2)}

	y := p.menu.Y + 1
	var parent geom.Rect
	for _, it := range items {
		if it.Separator {
			y++
		}
		if y >= p.menu.Bottom()-1 {
			break
		}
		r := geom.Rect{X: p.banner.Right(), Y: y, W: p.menu.Right() - 1 - p.banner.Right(), H: 1}
		p.items = append(p.items, itemSlot{item: it, rect: r})
		if it.Action == v.Menu.Submenu {
			parent = r
		}
		y++
	}

	if v.Menu.State != startmenu.SubmenuOpen || parent.Empty() {
		return
	}
	var children []startmenu.Item
	for _, it := range items {
		if it.Action == v.Menu.Submenu {
			children = it.Children
		}
	}
	if len(children) == 0 {
		return
	}

	sw := 0
	for _, it := range children {
		sw = max(sw, runewidth.StringWidth(itemText(it))+1)
	}
	sw += 2
	sh := len(children) + 2
	sx := min(p.menu.Right(), max(0, m.width-sw))
	sy := max(0, min(parent.Y-1, p.taskbar.Y-sh))
	p.submenu = geom.Rect{X: sx, Y: sy, W: sw, H: sh}
	for i, it := range children {
		r := geom.Rect{X: sx + 1, Y: sy + 1 + i, W: sw - 2, H: 1}
		p.subItems = append(p.subItems, itemSlot{item: it, rect: r})
	}
}
