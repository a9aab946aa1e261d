package app

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/catalog"
	"github.com/kmacinski/desk95/internal/clock"
	"github.com/kmacinski/desk95/internal/config"
	"github.com/kmacinski/desk95/internal/desktop"
	"github.com/kmacinski/desk95/internal/dialog"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/keys"
	"github.com/kmacinski/desk95/internal/layout"
	"github.com/kmacinski/desk95/internal/logging"
	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/startmenu"
	"github.com/kmacinski/desk95/internal/surface"
	"github.com/kmacinski/desk95/internal/ui"
	"github.com/kmacinski/desk95/internal/window"
	"github.com/kmacinski/desk95/internal/wm"
)

const wheelStep = 3

// Options configures the application
type Options struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Logger  zerolog.Logger

	// Scheduler defaults to wall-clock timers delivered as RunMsg
	Scheduler sched.Scheduler
	// Now defaults to time.Now
	Now func() time.Time
	// Clipboard defaults to the system clipboard
	Clipboard func(text string) error
	// Shell runs Run dialog commands; defaults to $SHELL or /bin/sh
	Shell string
}

// App is the main application model
type App struct {
	state  *State
	opts   Options
	log    zerolog.Logger
	desk   *desktop.Desktop
	scene  *surface.Scene
	layout *layout.Manager
	styles *ui.Styles

	// Windows
	lists      map[wm.ID]*window.ItemList
	dialogView *window.DialogView
	help       *window.Help

	// Dimensions
	width  int
	height int

	// pending holds commands requested by desktop callbacks during Update
	pending []tea.Cmd
	program *tea.Program
}

// New creates a new application
func New(opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Shell == "" {
		opts.Shell = os.Getenv("SHELL")
		if opts.Shell == "" {
			opts.Shell = "/bin/sh"
		}
	}

	styles := ui.NewStyles(ui.ColorsFromTheme(opts.Config.Theme))
	a := &App{
		state:      NewState(opts.Now()),
		log:        logging.Component(opts.Logger, "app"),
		scene:      surface.NewScene(),
		styles:     &styles,
		lists:      make(map[wm.ID]*window.ItemList),
		dialogView: window.NewDialogView(&styles),
		help:       window.NewHelp(&styles),
	}
	a.layout = layout.NewManager(a.styles, opts.Config.Desktop.TaskbarHeight)

	if opts.Scheduler == nil {
		opts.Scheduler = sched.NewLoop(a.post)
	}
	a.opts = opts

	// the desktop components draw into the scene, the layout reads it
	// back through Snapshot every frame
	a.desk = desktop.New(desktop.Deps{
		Surface:   a.scene,
		Scheduler: opts.Scheduler,
		Catalog:   opts.Catalog,
		Config:    opts.Config,
		Launch:    a.launch,
		Quit:      func() { a.pending = append(a.pending, tea.Quit) },
		Clipboard: opts.Clipboard,
		Logger:    opts.Logger,
	})
	return a
}

// SetProgram sets the tea.Program reference for delivering scheduled tasks
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

// Desktop returns the desktop controller
func (a *App) Desktop() *desktop.Desktop {
	return a.desk
}

// Cleanup cancels timers and closes everything
func (a *App) Cleanup() {
	a.desk.Teardown()
}

func (a *App) post(fn func()) {
	if a.program != nil {
		a.program.Send(RunMsg{Fn: fn})
	}
}

func (a *App) launch(cmd string) {
	c := exec.Command(a.opts.Shell, "-c", cmd)
	a.pending = append(a.pending, tea.ExecProcess(c, func(err error) tea.Msg {
		return ExecFinishedMsg{Cmd: cmd, Err: err}
	}))
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return clock.Tick()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.Resize(msg.Width, msg.Height)
		a.desk.SetScreen(msg.Width, msg.Height)

	case clock.TickMsg:
		a.state.Now = time.Time(msg)
		cmds = append(cmds, clock.Tick())

	case RunMsg:
		msg.Fn()

	case ConfigChangedMsg:
		a.applyConfig(msg.Config)

	case ExecFinishedMsg:
		if msg.Err != nil {
			a.log.Warn().Err(msg.Err).Str("cmd", msg.Cmd).Msg("command failed")
			a.desk.Notify(fmt.Sprintf("Cannot run %q", msg.Cmd))
		}

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, a.handleMouse(msg))
	}

	cmds = append(cmds, a.sync())
	cmds = append(cmds, a.pending...)
	a.pending = nil
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Handle modal first
	if a.state.ActiveModal != "" {
		return a.handleModalKey(msg)
	}
	if d, ok := a.desk.Dialogs().Current(); ok {
		return a.handleDialogKey(d, msg)
	}

	windows := a.desk.Windows()
	active, hasActive := windows.Active()

	// Global keybindings
	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Quit):
		return tea.Quit

	case key.Matches(msg, keys.DefaultKeyMap.Help):
		a.state.ToggleModal("help")

	case key.Matches(msg, keys.DefaultKeyMap.Escape):
		a.desk.Escape()

	case key.Matches(msg, keys.DefaultKeyMap.Start):
		a.desk.Menu().Toggle()

	case key.Matches(msg, keys.DefaultKeyMap.Delete):
		a.desk.Icons().Delete()

	case key.Matches(msg, keys.DefaultKeyMap.Copy):
		a.desk.Copy()

	case key.Matches(msg, keys.DefaultKeyMap.Enter):
		a.desk.Icons().Enter()

	case key.Matches(msg, keys.DefaultKeyMap.Tab):
		windows.CycleActive(false)

	case key.Matches(msg, keys.DefaultKeyMap.ShiftTab):
		windows.CycleActive(true)

	case key.Matches(msg, keys.DefaultKeyMap.Minimize):
		if hasActive {
			windows.Minimize(active)
		}

	case key.Matches(msg, keys.DefaultKeyMap.Maximize):
		if hasActive {
			windows.ToggleMaximize(active)
		}

	case key.Matches(msg, keys.DefaultKeyMap.CloseWindow):
		if hasActive {
			windows.Close(active)
		}

	default:
		// Delegate to the active window
		if list, ok := a.lists[active]; ok && hasActive {
			_, cmd := list.Update(msg)
			return cmd
		}
	}
	return nil
}

func (a *App) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	// Always allow quit
	if key.Matches(msg, keys.DefaultKeyMap.Quit) {
		return tea.Quit
	}

	// Close modal on ? or Escape
	if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
		a.state.CloseModal()
	}
	return nil
}

func (a *App) handleDialogKey(d *dialog.Dialog, msg tea.KeyMsg) tea.Cmd {
	hasChoices := len(d.Choices) > 0

	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Escape):
		a.desk.Dialogs().Close()

	case key.Matches(msg, keys.DefaultKeyMap.Enter):
		a.desk.Dialogs().PressFocused()

	case key.Matches(msg, keys.DefaultKeyMap.Tab):
		d.MoveFocus(1)

	case key.Matches(msg, keys.DefaultKeyMap.ShiftTab):
		d.MoveFocus(-1)

	// left and right edit the input line when there is one
	case !d.HasInput && key.Matches(msg, keys.DefaultKeyMap.ButtonNext):
		d.MoveFocus(1)

	case !d.HasInput && key.Matches(msg, keys.DefaultKeyMap.ButtonPrev):
		d.MoveFocus(-1)

	case hasChoices && key.Matches(msg, keys.DefaultKeyMap.ChoiceUp):
		d.MoveChoice(-1)

	case hasChoices && key.Matches(msg, keys.DefaultKeyMap.ChoiceDown):
		d.MoveChoice(1)

	default:
		sync := a.dialogView.SetDialog(d)
		_, cmd := a.dialogView.Update(msg)
		return tea.Batch(sync, cmd)
	}
	return nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := geom.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionMotion:
		if a.desk.Dragging() {
			a.desk.PointerMove(p)
			return nil
		}
		a.hover(p)

	case tea.MouseActionRelease:
		if a.desk.Dragging() {
			a.desk.PointerUp(p)
		}

	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scroll(p, -wheelStep)
		case tea.MouseButtonWheelDown:
			a.scroll(p, wheelStep)
		case tea.MouseButtonLeft:
			a.press(p, msg.Ctrl)
		}
	}
	return nil
}

func (a *App) press(p geom.Point, ctrl bool) {
	if a.state.ActiveModal != "" {
		a.state.CloseModal()
		return
	}

	hit := a.layout.HitTest(a.view(), p)
	a.log.Debug().Stringer("target", hit.Target).Int("x", p.X).Int("y", p.Y).Msg("press")

	switch hit.Target {
	case layout.TargetStartButton, layout.TargetMenu, layout.TargetMenuItem,
		layout.TargetSubmenu, layout.TargetSubmenuItem:
	default:
		a.desk.Menu().Close()
	}

	windows := a.desk.Windows()
	switch hit.Target {
	case layout.TargetStartButton:
		a.desk.Menu().Toggle()

	case layout.TargetMenuItem, layout.TargetSubmenuItem:
		a.desk.Menu().Select(hit.Action)

	case layout.TargetTaskbarButton:
		windows.ToggleFromTaskbar(hit.Window)

	case layout.TargetToast:
		a.desk.Toasts().Dismiss(hit.Toast)

	case layout.TargetClose:
		windows.Close(hit.Window)

	case layout.TargetMinimize:
		windows.Minimize(hit.Window)

	case layout.TargetMaximize:
		windows.ToggleMaximize(hit.Window)

	case layout.TargetTitle:
		a.desk.BeginDrag(hit.Window, p)

	case layout.TargetResize:
		a.desk.BeginResize(hit.Window, p)

	case layout.TargetBody, layout.TargetBorder:
		windows.Activate(hit.Window)
		if list, ok := a.lists[hit.Window]; ok && hit.Index >= 0 {
			list.SetCursor(hit.Index)
		}

	case layout.TargetIcon:
		a.desk.Icons().Click(hit.Kind, ctrl, a.opts.Now())

	case layout.TargetDesktop:
		a.desk.PressDesktop(p)

	case layout.TargetDialogButton:
		if d, ok := a.desk.Dialogs().Current(); ok && hit.Index < len(d.Buttons) {
			d.Focus = hit.Index
			a.desk.Dialogs().Press(d.Buttons[hit.Index].Label)
		}

	case layout.TargetDialogChoice:
		if d, ok := a.desk.Dialogs().Current(); ok {
			d.Choice = hit.Index
		}

	case layout.TargetDialogClose:
		a.desk.Dialogs().Close()
	}
}

// hover drives the Start menu's submenu timing from pointer motion
func (a *App) hover(p geom.Point) {
	menu := a.desk.Menu()
	if a.state.ActiveModal != "" || menu.State() == startmenu.Closed {
		a.state.SetHover("", false)
		return
	}

	hit := a.layout.HitTest(a.view(), p)
	switch hit.Target {
	case layout.TargetMenuItem, layout.TargetSubmenuItem:
		if hit.Action != a.state.MenuHover {
			menu.Hover(hit.Action)
		}
		a.state.SetHover(hit.Action, true)
	case layout.TargetSubmenu:
		menu.EnterSubmenu()
		a.state.SetHover("", true)
	case layout.TargetMenu:
		a.state.SetHover("", true)
	default:
		if a.state.SetHover("", false) {
			menu.Leave(false)
		}
	}
}

func (a *App) scroll(p geom.Point, delta int) {
	hit := a.layout.HitTest(a.view(), p)
	if hit.Target != layout.TargetBody {
		return
	}
	if list, ok := a.lists[hit.Window]; ok {
		list.Scroll(delta)
	}
}

func (a *App) applyConfig(cfg config.Config) {
	a.opts.Config = cfg
	a.desk.ApplyConfig(cfg)
	*a.styles = ui.NewStyles(ui.ColorsFromTheme(cfg.Theme))
	a.log.Info().Msg("config reloaded")
}

// sync keeps the content views in step with the desktop: one list per
// open window, focus on the active one, and the dialog view on the open
// dialog
func (a *App) sync() tea.Cmd {
	windows := a.desk.Windows()
	active, hasActive := windows.Active()

	open := make(map[wm.ID]bool)
	for _, w := range windows.Windows() {
		open[w.ID] = true
		list, ok := a.lists[w.ID]
		if !ok {
			list = window.NewItemList(w.Kind, w.Content, a.styles)
			a.lists[w.ID] = list
		}
		list.SetFocus(hasActive && active == w.ID)
	}
	for id := range a.lists {
		if !open[id] {
			delete(a.lists, id)
		}
	}

	d, _ := a.desk.Dialogs().Current()
	return a.dialogView.SetDialog(d)
}

func (a *App) view() layout.View {
	v := layout.View{
		Snapshot:   a.desk.Snapshot(),
		Clock:      clock.Format(a.state.Now),
		Lists:      a.lists,
		DialogView: a.dialogView,
		MenuHover:  a.state.MenuHover,
	}
	if a.state.ActiveModal == "help" {
		v.Help = a.help
	}
	return v
}

// View renders the application
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}
	if a.width < minWidth || a.height < minHeight {
		return a.renderError("Terminal too small", fmt.Sprintf("desk95 needs at least %dx%d", minWidth, minHeight))
	}
	return a.layout.Render(a.view())
}

const (
	minWidth  = 40
	minHeight = 12
)

func (a *App) renderError(title, hint string) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff5555")).
		Bold(true).
		Padding(1)

	content := fmt.Sprintf("%s\n\n%s", title, a.styles.Muted.Render(hint))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, style.Render(content))
}
