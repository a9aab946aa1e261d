package wm

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/input"
	"github.com/kmacinski/desk95/internal/surface"
)

// Options configures a Manager. Units are whatever the host renders in:
// pixels for the reference layout, cells for the terminal.
type Options struct {
	Surface surface.Surface
	Bus     *input.Bus

	ScreenWidth   int
	ScreenHeight  int
	TaskbarHeight int

	Origin  geom.Point // first cascade slot
	Step    geom.Point // offset between cascade slots
	Size    geom.Point // default window width/height
	MinSize geom.Point // smallest size a resize can reach

	Logger zerolog.Logger
}

// DefaultOptions returns the reference pixel geometry
func DefaultOptions() Options {
	return Options{
		ScreenWidth:   1024,
		ScreenHeight:  768,
		TaskbarHeight: 30,
		Origin:        geom.Point{X: 50, Y: 50},
		Step:          geom.Point{X: 30, Y: 30},
		Size:          geom.Point{X: 400, Y: 300},
		MinSize:       geom.Point{X: 120, Y: 80},
		Logger:        zerolog.Nop(),
	}
}

// Manager owns the open windows, their z-order and focus, and keeps the
// taskbar buttons on the surface in step with them.
//
// Every operation silently ignores ids it does not know: a taskbar click
// can race a close and there is nothing useful to report.
type Manager struct {
	surface surface.Surface
	bus     *input.Bus
	log     zerolog.Logger

	origin  geom.Point
	step    geom.Point
	size    geom.Point
	minSize geom.Point

	screenW int
	screenH int
	taskbar int

	windows map[ID]*Window
	stack   []ID // z-order, bottom first
	active  ID   // zero when no window is active
	nextID  ID
}

// New creates a window manager
func New(opts Options) *Manager {
	if opts.Surface == nil {
		opts.Surface = surface.NewScene()
	}
	if opts.Bus == nil {
		opts.Bus = input.NewBus()
	}

	return &Manager{
		surface: opts.Surface,
		bus:     opts.Bus,
		log:     opts.Logger,
		origin:  opts.Origin,
		step:    opts.Step,
		size:    opts.Size,
		minSize: opts.MinSize,
		screenW: opts.ScreenWidth,
		screenH: opts.ScreenHeight,
		taskbar: opts.TaskbarHeight,
		windows: make(map[ID]*Window),
	}
}

// Open creates a window in the next cascade slot, mounts it together with
// its taskbar button and makes it the active window.
func (m *Manager) Open(kind, title, icon string, content []string) ID {
	m.nextID++
	id := m.nextID

	w := &Window{
		ID:      id,
		Kind:    kind,
		Title:   title,
		Icon:    icon,
		Content: content,
		Bounds:  m.cascade(len(m.windows)),
	}
	m.windows[id] = w
	m.stack = append(m.stack, id)

	m.surface.Mount(id.Node())
	m.surface.Mount(id.ButtonNode())

	m.log.Debug().
		Stringer("window", id).
		Str("kind", kind).
		Int("x", w.Bounds.X).
		Int("y", w.Bounds.Y).
		Msg("window opened")

	m.Activate(id)
	return id
}

// cascade returns the default placement for the n-th open window. Once
// the screen is known, slots that would leave the usable area wrap back.
func (m *Manager) cascade(n int) geom.Rect {
	if fit := m.cascadeSlots(); fit > 0 {
		n %= fit
	}
	return geom.Rect{
		X: m.origin.X + n*m.step.X,
		Y: m.origin.Y + n*m.step.Y,
		W: m.size.X,
		H: m.size.Y,
	}
}

func (m *Manager) cascadeSlots() int {
	if m.screenW <= 0 || m.screenH <= 0 {
		return 0
	}
	fit := -1
	if m.step.X > 0 {
		fit = (m.screenW-m.origin.X-m.size.X)/m.step.X + 1
	}
	if m.step.Y > 0 {
		nY := (m.screenH-m.taskbar-m.origin.Y-m.size.Y)/m.step.Y + 1
		if fit == -1 || nY < fit {
			fit = nY
		}
	}
	if fit == -1 {
		return 0
	}
	return max(fit, 1)
}

// Activate focuses a window and raises it. A minimized window is restored
// first, so the active window is never a minimized one.
func (m *Manager) Activate(id ID) {
	w, ok := m.windows[id]
	if !ok {
		m.log.Debug().Stringer("window", id).Msg("activate: unknown window")
		return
	}

	if w.Minimized {
		m.unminimize(w)
	}

	m.deactivateAll()

	m.surface.SetClass(id.Node(), surface.ClassActive, true)
	m.surface.SetClass(id.Node(), surface.ClassInactive, false)
	m.surface.SetClass(id.ButtonNode(), surface.ClassActive, true)
	m.active = id
	m.raise(id)

	m.log.Debug().Stringer("window", id).Msg("window activated")
}

func (m *Manager) deactivateAll() {
	for id := range m.windows {
		m.surface.SetClass(id.Node(), surface.ClassActive, false)
		m.surface.SetClass(id.Node(), surface.ClassInactive, true)
		m.surface.SetClass(id.ButtonNode(), surface.ClassActive, false)
	}
	m.active = 0
}

func (m *Manager) raise(id ID) {
	for i, v := range m.stack {
		if v == id {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			break
		}
	}
	m.stack = append(m.stack, id)
}

// Minimize hides a window. Its taskbar button stays, un-pressed.
func (m *Manager) Minimize(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}

	w.Minimized = true
	m.surface.SetClass(id.Node(), surface.ClassHidden, true)
	m.surface.SetClass(id.Node(), surface.ClassActive, false)
	m.surface.SetClass(id.Node(), surface.ClassInactive, true)
	m.surface.SetClass(id.ButtonNode(), surface.ClassActive, false)

	if m.active == id {
		m.active = 0
	}

	m.log.Debug().Stringer("window", id).Msg("window minimized")
}

// Restore shows a minimized window again without activating it
func (m *Manager) Restore(id ID) {
	if w, ok := m.windows[id]; ok {
		m.unminimize(w)
	}
}

func (m *Manager) unminimize(w *Window) {
	if !w.Minimized {
		return
	}
	w.Minimized = false
	m.surface.SetClass(w.ID.Node(), surface.ClassHidden, false)
	m.log.Debug().Stringer("window", w.ID).Msg("window restored")
}

// ToggleMaximize fills the usable screen, or returns to the exact geometry
// the window had before it was maximized. A minimized window is brought
// back and activated first.
func (m *Manager) ToggleMaximize(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}

	if w.Minimized {
		m.Activate(id)
	}

	if w.Maximized {
		w.Bounds = w.saved
		w.Maximized = false
		m.surface.SetClass(id.Node(), surface.ClassMaximized, false)
		m.log.Debug().Stringer("window", id).Msg("window unmaximized")
		return
	}

	w.saved = w.Bounds
	w.Bounds = m.maxBounds()
	w.Maximized = true
	m.surface.SetClass(id.Node(), surface.ClassMaximized, true)
	m.log.Debug().Stringer("window", id).Msg("window maximized")
}

func (m *Manager) maxBounds() geom.Rect {
	return geom.Rect{
		X: 0,
		Y: 0,
		W: m.screenW,
		H: max(0, m.screenH-m.taskbar),
	}
}

// ToggleFromTaskbar implements a taskbar button click: a minimized window
// is restored and focused, the focused window is minimized, any other
// window is focused.
func (m *Manager) ToggleFromTaskbar(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}

	switch {
	case w.Minimized:
		m.unminimize(w)
		m.Activate(id)
	case m.active == id:
		m.Minimize(id)
	default:
		m.Activate(id)
	}
}

// Close removes a window and its taskbar button together. No other
// window is promoted to active.
func (m *Manager) Close(id ID) {
	if _, ok := m.windows[id]; !ok {
		return
	}

	m.surface.Unmount(id.Node())
	m.surface.Unmount(id.ButtonNode())
	delete(m.windows, id)
	for i, v := range m.stack {
		if v == id {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			break
		}
	}

	if m.active == id {
		m.active = 0
	}

	m.log.Debug().Stringer("window", id).Msg("window closed")
}

// CloseAll closes every window
func (m *Manager) CloseAll() {
	for _, id := range m.ids() {
		m.Close(id)
	}
}

// CycleActive focuses the next window in taskbar order, or the previous
// one when reverse is set.
func (m *Manager) CycleActive(reverse bool) {
	ids := m.ids()
	if len(ids) == 0 {
		return
	}

	idx := -1
	for i, id := range ids {
		if id == m.active {
			idx = i
			break
		}
	}

	switch {
	case idx == -1 && reverse:
		idx = len(ids) - 1
	case idx == -1:
		idx = 0
	case reverse:
		idx = (idx - 1 + len(ids)) % len(ids)
	default:
		idx = (idx + 1) % len(ids)
	}
	m.Activate(ids[idx])
}

// SetScreen records the usable screen size. Maximized windows follow it.
func (m *Manager) SetScreen(width, height int) {
	m.screenW = width
	m.screenH = height
	for _, w := range m.windows {
		if w.Maximized {
			w.Bounds = m.maxBounds()
		}
	}
}

// Get returns a snapshot of a window
func (m *Manager) Get(id ID) (Window, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Active returns the active window id, if any
func (m *Manager) Active() (ID, bool) {
	return m.active, m.active != 0
}

// Len returns the number of open windows
func (m *Manager) Len() int {
	return len(m.windows)
}

// Windows returns snapshots in z-order, bottom first
func (m *Manager) Windows() []Window {
	out := make([]Window, 0, len(m.stack))
	for _, id := range m.stack {
		out = append(out, *m.windows[id])
	}
	return out
}

// At returns the topmost visible window containing p
func (m *Manager) At(p geom.Point) (ID, bool) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		w := m.windows[m.stack[i]]
		if !w.Minimized && w.Bounds.Contains(p) {
			return w.ID, true
		}
	}
	return 0, false
}

func (m *Manager) ids() []ID {
	ids := make([]ID, 0, len(m.windows))
	for id := range m.windows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
