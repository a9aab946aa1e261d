// Package desktop composes the window manager, icon selection, Start menu,
// dialogs and notifications into one controller with an explicit lifecycle.
package desktop

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/catalog"
	"github.com/kmacinski/desk95/internal/config"
	"github.com/kmacinski/desk95/internal/dialog"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/input"
	"github.com/kmacinski/desk95/internal/logging"
	"github.com/kmacinski/desk95/internal/notify"
	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/selection"
	"github.com/kmacinski/desk95/internal/startmenu"
	"github.com/kmacinski/desk95/internal/surface"
	"github.com/kmacinski/desk95/internal/wm"
)

// Icon column geometry, in cells
const (
	iconX      = 1
	iconY      = 1
	iconWidth  = 11
	iconHeight = 3
	iconGap    = 1
)

// Deps are the collaborators a Desktop is built from
type Deps struct {
	// Surface receives every mount and class change. Snapshot reads them
	// back from a Scene, so any other Surface is paired with one.
	Surface   surface.Surface
	Scheduler sched.Scheduler
	Catalog   *catalog.Catalog
	Config    config.Config

	ScreenWidth  int
	ScreenHeight int

	// Launch runs a command typed into the Run dialog
	Launch func(cmd string)
	// Quit ends the session after Shut Down is confirmed
	Quit func()
	// Clipboard defaults to the system clipboard
	Clipboard func(text string) error

	Logger zerolog.Logger
}

// Desktop is the top-level controller
type Desktop struct {
	deps  Deps
	log   zerolog.Logger
	scene *surface.Scene

	bus     *input.Bus
	windows *wm.Manager
	icons   *selection.Controller
	menu    *startmenu.Controller
	dialogs *dialog.Manager
	toasts  *notify.Toaster

	drag *wm.Drag
}

// New builds the desktop and mounts icons, taskbar and menu
func New(deps Deps) *Desktop {
	scene, ok := deps.Surface.(*surface.Scene)
	if !ok {
		scene = surface.NewScene()
		if deps.Surface != nil {
			deps.Surface = surface.Tee(deps.Surface, scene)
		} else {
			deps.Surface = scene
		}
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}

	d := &Desktop{
		deps:  deps,
		log:   logging.Component(deps.Logger, "desktop"),
		scene: scene,
		bus:   input.NewBus(),
	}

	cfg := deps.Config
	d.windows = wm.New(wm.Options{
		Surface:       deps.Surface,
		Bus:           d.bus,
		ScreenWidth:   deps.ScreenWidth,
		ScreenHeight:  deps.ScreenHeight,
		TaskbarHeight: cfg.Desktop.TaskbarHeight,
		Origin:        geom.Point{X: cfg.Desktop.Cascade.OriginX, Y: cfg.Desktop.Cascade.OriginY},
		Step:          geom.Point{X: cfg.Desktop.Cascade.StepX, Y: cfg.Desktop.Cascade.StepY},
		Size:          geom.Point{X: cfg.Desktop.Window.Width, Y: cfg.Desktop.Window.Height},
		MinSize:       geom.Point{X: cfg.Desktop.Window.MinWidth, Y: cfg.Desktop.Window.MinHeight},
		Logger:        logging.Component(deps.Logger, "wm"),
	})

	d.toasts = notify.NewToaster(deps.Surface, deps.Scheduler, logging.Component(deps.Logger, "notify"))
	d.toasts.SetDuration(cfg.Notifications.Duration)

	d.dialogs = dialog.NewManager(deps.Surface, logging.Component(deps.Logger, "dialog"))

	d.icons = selection.New(iconsFor(deps.Catalog), selection.Options{
		Surface:     deps.Surface,
		Scheduler:   deps.Scheduler,
		Opener:      d.Open,
		Confirmer:   d,
		Notifier:    d.toasts,
		DoubleClick: cfg.Desktop.DoubleClick,
		Logger:      logging.Component(deps.Logger, "selection"),
	})

	d.menu = startmenu.New(startmenu.DefaultItems(), startmenu.Options{
		Surface:   deps.Surface,
		Scheduler: deps.Scheduler,
		HideDelay: cfg.StartMenu.HideDelay,
		Handler:   d.handleAction,
		Logger:    logging.Component(deps.Logger, "startmenu"),
	})

	d.log.Info().
		Int("icons", len(d.icons.Icons())).
		Int("width", deps.ScreenWidth).
		Int("height", deps.ScreenHeight).
		Msg("desktop ready")
	return d
}

// iconsFor lays the catalog out as a column down the left edge
func iconsFor(c *catalog.Catalog) []selection.Icon {
	entries := c.Entries()
	icons := make([]selection.Icon, len(entries))
	for i, e := range entries {
		icons[i] = selection.Icon{
			Kind:  e.Kind,
			Label: e.Title,
			Bounds: geom.Rect{
				X: iconX,
				Y: iconY + i*(iconHeight+iconGap),
				W: iconWidth,
				H: iconHeight,
			},
		}
	}
	return icons
}

// Teardown cancels timers, ends drags and closes everything
func (d *Desktop) Teardown() {
	d.drag.End()
	d.drag = nil
	d.icons.PointerUp()
	d.dialogs.Close()
	d.menu.Close()
	d.menu.Stop()
	d.icons.Stop()
	d.toasts.Stop()
	d.windows.CloseAll()
	d.log.Info().Msg("desktop torn down")
}

// Windows returns the window manager
func (d *Desktop) Windows() *wm.Manager { return d.windows }

// Icons returns the selection controller
func (d *Desktop) Icons() *selection.Controller { return d.icons }

// Menu returns the Start menu
func (d *Desktop) Menu() *startmenu.Controller { return d.menu }

// Dialogs returns the dialog manager
func (d *Desktop) Dialogs() *dialog.Manager { return d.dialogs }

// Toasts returns the notification toaster
func (d *Desktop) Toasts() *notify.Toaster { return d.toasts }

// Bus returns the pointer listener bus
func (d *Desktop) Bus() *input.Bus { return d.bus }

// Scene returns the retained scene the renderer reads
func (d *Desktop) Scene() *surface.Scene { return d.scene }

// Open opens a window for an icon kind
func (d *Desktop) Open(kind string) {
	e, ok := d.deps.Catalog.Lookup(kind)
	if !ok {
		d.log.Debug().Str("kind", kind).Msg("unknown icon kind")
		return
	}
	id := d.windows.Open(e.Kind, e.Title, e.Glyph, e.Content)
	d.log.Info().Str("kind", kind).Stringer("window", id).Msg("window opened")
}

// Notify shows a toast
func (d *Desktop) Notify(msg string) {
	d.toasts.Notify(msg)
}

// Confirm asks through a modal dialog; it lets selection delete via dialogs
func (d *Desktop) Confirm(msg string, result func(bool)) {
	d.dialogs.ShowConfirm("Confirm File Delete", msg, result)
}

// Copy puts the titles of the selected icons on the clipboard
func (d *Desktop) Copy() {
	kinds := d.icons.Selected()
	if len(kinds) == 0 {
		return
	}

	titles := make([]string, len(kinds))
	for i, k := range kinds {
		titles[i] = k
		if e, ok := d.deps.Catalog.Lookup(k); ok {
			titles[i] = e.Title
		}
	}
	text := strings.Join(titles, ", ")

	if err := d.deps.Clipboard(text); err != nil {
		d.log.Warn().Err(err).Msg("clipboard write failed")
		d.Notify("Clipboard unavailable")
		return
	}
	d.Notify("Copied: " + text)
}

// Escape closes the dialog if one is open, else the Start menu. It
// returns false when there was nothing to close.
func (d *Desktop) Escape() bool {
	if _, ok := d.dialogs.Current(); ok {
		d.dialogs.Close()
		return true
	}
	if d.menu.State() != startmenu.Closed {
		d.menu.Close()
		return true
	}
	return false
}

// PressDesktop handles a pointer press on empty desktop: the Start menu
// closes and a selection rectangle starts
func (d *Desktop) PressDesktop(p geom.Point) {
	d.menu.Close()
	d.icons.PointerDown(p)
}

// BeginDrag starts moving a window by its title bar
func (d *Desktop) BeginDrag(id wm.ID, p geom.Point) {
	d.menu.Close()
	d.drag.End()
	d.drag = d.windows.BeginDrag(id, p)
}

// BeginResize starts resizing a window from its corner
func (d *Desktop) BeginResize(id wm.ID, p geom.Point) {
	d.menu.Close()
	d.drag.End()
	d.drag = d.windows.BeginResize(id, p)
}

// PointerMove feeds pointer motion to the active drag session
func (d *Desktop) PointerMove(p geom.Point) {
	d.bus.Move(p)
	d.icons.PointerMove(p)
}

// PointerUp ends whatever drag is in progress
func (d *Desktop) PointerUp(p geom.Point) {
	d.bus.Up(p)
	d.drag = nil
	d.icons.PointerUp()
}

// Dragging reports whether a window drag or rectangle selection is active
func (d *Desktop) Dragging() bool {
	return d.drag.Active() || d.icons.Dragging()
}

// SetScreen updates the usable screen size
func (d *Desktop) SetScreen(width, height int) {
	d.deps.ScreenWidth, d.deps.ScreenHeight = width, height
	d.windows.SetScreen(width, height)
}

// Screen returns the screen size
func (d *Desktop) Screen() geom.Point {
	return geom.Point{X: d.deps.ScreenWidth, Y: d.deps.ScreenHeight}
}

// ApplyConfig updates runtime-tunable settings. Window placement only
// applies at startup.
func (d *Desktop) ApplyConfig(cfg config.Config) {
	d.deps.Config = cfg
	d.icons.SetDoubleClick(cfg.Desktop.DoubleClick)
	d.menu.SetHideDelay(cfg.StartMenu.HideDelay)
	d.toasts.SetDuration(cfg.Notifications.Duration)
	d.log.Debug().
		Dur("double_click", cfg.Desktop.DoubleClick).
		Dur("hide_delay", cfg.StartMenu.HideDelay).
		Dur("toast", cfg.Notifications.Duration).
		Msg("config applied")
}

func (d *Desktop) handleAction(action string) {
	switch action {
	case "programs", "documents", "settings":
		d.Notify(fmt.Sprintf("%s menu opened", menuLabel(action)))
	case "mydocs":
		d.Open("my-documents")
	case "run":
		d.dialogs.ShowRun(d.run, func() { d.Notify("Browse dialog would open") })
	case "shutdown":
		d.dialogs.ShowShutDown(d.shutDown, func() { d.Notify("Help would open") })
	case "control-panel":
		d.Notify("Control Panel would open here")
	case "find":
		d.Notify("Find dialog would open here")
	case "help":
		d.Notify("Help system would open here")
	case "msdos":
		d.Notify("MS-DOS Prompt would open here")
	default:
		d.Notify(action + " clicked")
	}
}

func (d *Desktop) run(cmd string) {
	d.Notify("Run command executed")
	cmd = strings.TrimSpace(cmd)
	if cmd == "" || d.deps.Launch == nil {
		return
	}
	d.log.Info().Str("cmd", cmd).Msg("launching")
	d.deps.Launch(cmd)
}

func (d *Desktop) shutDown(choice dialog.Choice) {
	d.Notify("System would shut down")
	d.log.Info().Stringer("choice", choice).Msg("shut down confirmed")

	switch choice {
	case dialog.ChoiceShutDown:
		if d.deps.Quit != nil {
			d.deps.Quit()
		}
	default:
		d.windows.CloseAll()
	}
}

func menuLabel(action string) string {
	for _, item := range startmenu.DefaultItems() {
		if item.Action == action {
			return item.Label
		}
	}
	return action
}
