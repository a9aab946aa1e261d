// Package selection implements desktop icon selection: click, ctrl-click,
// rectangle drag, double click, delete and enter.
package selection

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/surface"
)

// DefaultDoubleClick is the window in which a second click on the same
// icon counts as a double click
const DefaultDoubleClick = 300 * time.Millisecond

// RectNode is the overlay drawn while rubber-band selecting
var RectNode = surface.Node{ID: "selection-rect", Kind: surface.KindSelectionRect}

// Icon is a desktop icon
type Icon struct {
	Kind   string
	Label  string
	Bounds geom.Rect
}

// Node returns the icon's surface node
func (i Icon) Node() surface.Node {
	return surface.Node{ID: "icon-" + i.Kind, Kind: surface.KindIcon}
}

// Confirmer asks the user a yes/no question. The answer arrives later
// through result, or never if the question is abandoned.
type Confirmer interface {
	Confirm(msg string, result func(ok bool))
}

// Notifier shows a transient message
type Notifier interface {
	Notify(msg string)
}

// Options configure a Controller
type Options struct {
	Surface     surface.Surface
	Scheduler   sched.Scheduler
	Opener      func(kind string)
	Confirmer   Confirmer
	Notifier    Notifier
	DoubleClick time.Duration
	Logger      zerolog.Logger
}

type session struct {
	anchor  geom.Point
	current geom.Point
}

// Controller owns the selection set of the desktop icons
type Controller struct {
	opts    Options
	icons   []Icon
	removed map[string]bool
	sel     map[string]bool

	drag *session

	lastKind  string
	lastClick time.Time

	animations map[string]sched.Timer
}

// New creates a controller over icons and mounts them
func New(icons []Icon, opts Options) *Controller {
	if opts.Surface == nil {
		opts.Surface = surface.NewScene()
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = DefaultDoubleClick
	}

	c := &Controller{
		opts:       opts,
		icons:      append([]Icon(nil), icons...),
		removed:    make(map[string]bool),
		sel:        make(map[string]bool),
		animations: make(map[string]sched.Timer),
	}
	for _, icon := range c.icons {
		opts.Surface.Mount(icon.Node())
	}
	return c
}

// SetDoubleClick changes the double click threshold
func (c *Controller) SetDoubleClick(d time.Duration) {
	if d > 0 {
		c.opts.DoubleClick = d
	}
}

// PointerDown starts a rectangle session on the empty desktop
func (c *Controller) PointerDown(p geom.Point) {
	c.clear()
	c.drag = &session{anchor: p, current: p}
	c.opts.Surface.Mount(RectNode)
	c.opts.Surface.SetClass(RectNode, surface.ClassVisible, true)
	c.opts.Logger.Debug().Int("x", p.X).Int("y", p.Y).Msg("selection drag started")
}

// PointerMove resizes the rectangle and recomputes membership of every
// visible icon
func (c *Controller) PointerMove(p geom.Point) {
	if c.drag == nil {
		return
	}
	c.drag.current = p
	rect := geom.Span(c.drag.anchor, c.drag.current)

	for _, icon := range c.visible() {
		c.set(icon.Kind, geom.Intersects(rect, icon.Bounds))
	}
}

// PointerUp ends the session; the selection stays
func (c *Controller) PointerUp() {
	if c.drag == nil {
		return
	}
	c.drag = nil
	c.opts.Surface.Unmount(RectNode)
	c.opts.Logger.Debug().Strs("selected", c.Selected()).Msg("selection drag ended")
}

// Dragging reports whether a rectangle session is active
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// Rect returns the current overlay rectangle
func (c *Controller) Rect() (geom.Rect, bool) {
	if c.drag == nil {
		return geom.Rect{}, false
	}
	return geom.Span(c.drag.anchor, c.drag.current), true
}

// Click handles a click on the icon of kind at time at. It returns true
// when the click completed a double click.
func (c *Controller) Click(kind string, ctrl bool, at time.Time) bool {
	if !c.exists(kind) {
		return false
	}

	if ctrl {
		c.set(kind, !c.sel[kind])
	} else {
		c.clear()
		c.set(kind, true)
	}

	double := kind == c.lastKind && !c.lastClick.IsZero() &&
		at.Sub(c.lastClick) >= 0 && at.Sub(c.lastClick) <= c.opts.DoubleClick
	if double {
		c.lastKind, c.lastClick = "", time.Time{}
		c.open(kind)
		return true
	}

	c.lastKind, c.lastClick = kind, at
	return false
}

// ClickOutside clears the selection
func (c *Controller) ClickOutside() {
	c.clear()
}

// Enter opens the selected icon when exactly one is selected
func (c *Controller) Enter() bool {
	sel := c.Selected()
	if len(sel) != 1 {
		return false
	}
	c.open(sel[0])
	return true
}

// Delete asks for confirmation and then removes the selected icons
func (c *Controller) Delete() {
	kinds := c.Selected()
	if len(kinds) == 0 {
		return
	}

	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = c.label(k)
	}
	msg := "Are you sure you want to delete " + strings.Join(labels, ", ") + "?"

	confirm := func(ok bool) {
		if !ok {
			c.opts.Logger.Debug().Strs("kinds", kinds).Msg("delete cancelled")
			return
		}
		c.remove(kinds)
		if c.opts.Notifier != nil {
			c.opts.Notifier.Notify("Items moved to Recycle Bin")
		}
	}

	if c.opts.Confirmer == nil {
		confirm(true)
		return
	}
	c.opts.Confirmer.Confirm(msg, confirm)
}

// Selected returns selected kinds, sorted
func (c *Controller) Selected() []string {
	out := make([]string, 0, len(c.sel))
	for k := range c.sel {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsSelected reports whether kind is selected
func (c *Controller) IsSelected(kind string) bool {
	return c.sel[kind]
}

// Icons returns the icons that have not been deleted
func (c *Controller) Icons() []Icon {
	return c.visible()
}

// IconAt returns the icon under p
func (c *Controller) IconAt(p geom.Point) (Icon, bool) {
	for _, icon := range c.visible() {
		if icon.Bounds.Contains(p) {
			return icon, true
		}
	}
	return Icon{}, false
}

// Animating reports whether the double click animation of kind is playing
func (c *Controller) Animating(kind string) bool {
	_, ok := c.animations[kind]
	return ok
}

// Stop cancels running animations
func (c *Controller) Stop() {
	for kind, t := range c.animations {
		t.Stop()
		delete(c.animations, kind)
	}
}

func (c *Controller) open(kind string) {
	c.animate(kind)
	c.opts.Logger.Debug().Str("kind", kind).Msg("icon opened")
	if c.opts.Opener != nil {
		c.opts.Opener(kind)
	}
}

func (c *Controller) animate(kind string) {
	icon, ok := c.find(kind)
	if !ok {
		return
	}
	if t, ok := c.animations[kind]; ok {
		t.Stop()
	}

	node := icon.Node()
	c.opts.Surface.SetClass(node, surface.ClassDoubleClicked, true)
	if c.opts.Scheduler == nil {
		c.opts.Surface.SetClass(node, surface.ClassDoubleClicked, false)
		return
	}
	c.animations[kind] = c.opts.Scheduler.AfterFunc(c.opts.DoubleClick, func() {
		delete(c.animations, kind)
		c.opts.Surface.SetClass(node, surface.ClassDoubleClicked, false)
	})
}

func (c *Controller) remove(kinds []string) {
	for _, kind := range kinds {
		icon, ok := c.find(kind)
		if !ok {
			continue
		}
		if t, ok := c.animations[kind]; ok {
			t.Stop()
			delete(c.animations, kind)
		}
		c.removed[kind] = true
		c.opts.Surface.Unmount(icon.Node())
	}
	c.clear()
	c.opts.Logger.Info().Strs("kinds", kinds).Msg("icons deleted")
}

func (c *Controller) set(kind string, on bool) {
	icon, ok := c.find(kind)
	if !ok || c.sel[kind] == on {
		return
	}
	if on {
		c.sel[kind] = true
	} else {
		delete(c.sel, kind)
	}
	c.opts.Surface.SetClass(icon.Node(), surface.ClassSelected, on)
}

func (c *Controller) clear() {
	for _, kind := range c.Selected() {
		c.set(kind, false)
	}
}

func (c *Controller) exists(kind string) bool {
	_, ok := c.find(kind)
	return ok
}

func (c *Controller) find(kind string) (Icon, bool) {
	if c.removed[kind] {
		return Icon{}, false
	}
	for _, icon := range c.icons {
		if icon.Kind == kind {
			return icon, true
		}
	}
	return Icon{}, false
}

func (c *Controller) label(kind string) string {
	if icon, ok := c.find(kind); ok && icon.Label != "" {
		return icon.Label
	}
	return kind
}

func (c *Controller) visible() []Icon {
	out := make([]Icon, 0, len(c.icons))
	for _, icon := range c.icons {
		if !c.removed[icon.Kind] {
			out = append(out, icon)
		}
	}
	return out
}
