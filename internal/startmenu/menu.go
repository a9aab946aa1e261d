// Package startmenu implements the Start menu state machine.
package startmenu

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/surface"
)

// DefaultHideDelay lets the pointer cross the gap between a parent item
// and its submenu
const DefaultHideDelay = 200 * time.Millisecond

// State of the menu
type State int

const (
	Closed State = iota
	Open
	SubmenuOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case SubmenuOpen:
		return "submenu"
	default:
		return "unknown"
	}
}

var (
	// ButtonNode is the Start button on the taskbar
	ButtonNode = surface.Node{ID: "start-button", Kind: surface.KindStartButton}
	// MenuNode is the root menu panel
	MenuNode = surface.Node{ID: "start-menu", Kind: surface.KindStartMenu}
)

// SubmenuNode returns the panel node of the submenu opened by action
func SubmenuNode(action string) surface.Node {
	return surface.Node{ID: "submenu-" + action, Kind: surface.KindSubmenu}
}

// Options configure a Controller
type Options struct {
	Surface   surface.Surface
	Scheduler sched.Scheduler
	HideDelay time.Duration
	// Handler runs for every enabled item that is selected
	Handler func(action string)
	Logger  zerolog.Logger
}

// Controller drives the Start menu
type Controller struct {
	opts    Options
	items   []Item
	state   State
	submenu string
	hide    sched.Timer
}

// New creates a controller and mounts the button and menu panels hidden
func New(items []Item, opts Options) *Controller {
	if opts.Surface == nil {
		opts.Surface = surface.NewScene()
	}
	if opts.HideDelay <= 0 {
		opts.HideDelay = DefaultHideDelay
	}

	c := &Controller{opts: opts, items: items}

	opts.Surface.Mount(ButtonNode)
	opts.Surface.Mount(MenuNode)
	for _, item := range items {
		if item.HasChildren() {
			opts.Surface.Mount(SubmenuNode(item.Action))
		}
	}
	return c
}

// SetHideDelay changes the submenu hide debounce
func (c *Controller) SetHideDelay(d time.Duration) {
	if d > 0 {
		c.opts.HideDelay = d
	}
}

// Toggle opens a closed menu and closes an open one
func (c *Controller) Toggle() {
	if c.state == Closed {
		c.Open()
		return
	}
	c.Close()
}

// Open shows the root menu without a submenu
func (c *Controller) Open() {
	if c.state != Closed {
		return
	}
	c.state = Open
	c.opts.Surface.SetClass(ButtonNode, surface.ClassPressed, true)
	c.opts.Surface.SetClass(MenuNode, surface.ClassVisible, true)
	c.opts.Logger.Debug().Msg("start menu opened")
}

// Close hides the menu and its submenus and cancels a pending hide
func (c *Controller) Close() {
	c.cancelHide()
	if c.state == Closed {
		return
	}
	c.hideSubmenus()
	c.state = Closed
	c.opts.Surface.SetClass(ButtonNode, surface.ClassPressed, false)
	c.opts.Surface.SetClass(MenuNode, surface.ClassVisible, false)
	c.opts.Logger.Debug().Msg("start menu closed")
}

// Hover handles the pointer entering an item. Root items swap the open
// submenu; items inside the open submenu only keep it alive.
func (c *Controller) Hover(action string) {
	if c.state == Closed {
		return
	}
	c.cancelHide()

	item, ok := c.root(action)
	if !ok {
		return
	}
	c.hideSubmenus()
	if item.HasChildren() && !item.Disabled {
		c.showSubmenu(item.Action)
	}
}

// EnterSubmenu handles the pointer reaching the open submenu
func (c *Controller) EnterSubmenu() {
	c.cancelHide()
}

// Leave handles the pointer leaving an item. Unless it moves into the
// submenu, the submenu is hidden after the debounce delay.
func (c *Controller) Leave(toSubmenu bool) {
	if c.state != SubmenuOpen {
		return
	}
	if toSubmenu {
		c.cancelHide()
		return
	}

	c.cancelHide()
	if c.opts.Scheduler == nil {
		c.hideSubmenus()
		return
	}
	c.hide = c.opts.Scheduler.AfterFunc(c.opts.HideDelay, func() {
		c.hide = nil
		if c.state != SubmenuOpen {
			return
		}
		c.hideSubmenus()
		c.opts.Logger.Debug().Msg("submenu hidden")
	})
}

// Select activates an item. Disabled items are ignored. Parent items
// open their submenu and notify the handler; leaf items run the handler
// and close the menu. It returns false when nothing happened.
func (c *Controller) Select(action string) bool {
	if c.state == Closed {
		return false
	}
	item, ok := c.find(action)
	if !ok || item.Disabled {
		return false
	}

	if item.HasChildren() {
		c.cancelHide()
		c.hideSubmenus()
		c.showSubmenu(item.Action)
		c.handle(action)
		return true
	}

	c.handle(action)
	c.Close()
	return true
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Submenu returns the action of the open submenu
func (c *Controller) Submenu() (string, bool) {
	return c.submenu, c.state == SubmenuOpen
}

// HidePending reports whether a delayed hide is scheduled
func (c *Controller) HidePending() bool {
	return c.hide != nil
}

// Items returns the root items
func (c *Controller) Items() []Item {
	return c.items
}

// Children returns the submenu items of the root item action
func (c *Controller) Children(action string) []Item {
	item, ok := c.root(action)
	if !ok {
		return nil
	}
	return item.Children
}

// Stop cancels the pending hide timer
func (c *Controller) Stop() {
	c.cancelHide()
}

func (c *Controller) handle(action string) {
	c.opts.Logger.Debug().Str("action", action).Msg("start menu action")
	if c.opts.Handler != nil {
		c.opts.Handler(action)
	}
}

func (c *Controller) showSubmenu(action string) {
	c.state = SubmenuOpen
	c.submenu = action
	c.opts.Surface.SetClass(SubmenuNode(action), surface.ClassVisible, true)
}

func (c *Controller) hideSubmenus() {
	for _, item := range c.items {
		if item.HasChildren() {
			c.opts.Surface.SetClass(SubmenuNode(item.Action), surface.ClassVisible, false)
		}
	}
	c.submenu = ""
	if c.state == SubmenuOpen {
		c.state = Open
	}
}

func (c *Controller) cancelHide() {
	if c.hide != nil {
		c.hide.Stop()
		c.hide = nil
	}
}

func (c *Controller) root(action string) (Item, bool) {
	for _, item := range c.items {
		if item.Action == action {
			return item, true
		}
	}
	return Item{}, false
}

func (c *Controller) find(action string) (Item, bool) {
	if item, ok := c.root(action); ok {
		return item, true
	}
	for _, item := range c.items {
		for _, child := range item.Children {
			if child.Action == action {
				return child, true
			}
		}
	}
	return Item{}, false
}
