package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/desk95/internal/clock"
	"github.com/kmacinski/desk95/internal/config"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/layout"
	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/startmenu"
)

const (
	screenW = 80
	screenH = 24
)

type harness struct {
	app    *App
	clock  *sched.Manual
	copied []string
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, config.Default())
}

func newHarnessWith(t *testing.T, cfg config.Config) *harness {
	t.Helper()
	h := &harness{clock: sched.NewManual(time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC))}
	h.app = New(Options{
		Config:    cfg,
		Logger:    zerolog.Nop(),
		Scheduler: h.clock,
		Now:       h.clock.Now,
		Clipboard: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
		Shell: "/bin/sh",
	})
	t.Cleanup(h.app.Cleanup)
	h.send(tea.WindowSizeMsg{Width: screenW, Height: screenH})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.app.Update(msg)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	switch s {
	case "enter":
		return h.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return h.send(tea.KeyMsg{Type: tea.KeyEscape})
	case "delete":
		return h.send(tea.KeyMsg{Type: tea.KeyDelete})
	case "tab":
		return h.send(tea.KeyMsg{Type: tea.KeyTab})
	case "down":
		return h.send(tea.KeyMsg{Type: tea.KeyDown})
	case "ctrl+c":
		return h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	}
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) click(p geom.Point) tea.Cmd {
	return h.send(tea.MouseMsg{X: p.X, Y: p.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) move(p geom.Point) {
	h.send(tea.MouseMsg{X: p.X, Y: p.Y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
}

func (h *harness) release(p geom.Point) {
	h.send(tea.MouseMsg{X: p.X, Y: p.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

// find scans the screen for the first cell whose hit matches
func (h *harness) find(t *testing.T, match func(layout.Hit) bool) geom.Point {
	t.Helper()
	v := h.app.view()
	for y := 0; y < screenH; y++ {
		for x := 0; x < screenW; x++ {
			p := geom.Point{X: x, Y: y}
			if match(h.app.layout.HitTest(v, p)) {
				return p
			}
		}
	}
	t.Fatal("no matching cell on screen")
	return geom.Point{}
}

func target(tg layout.Target) func(layout.Hit) bool {
	return func(hit layout.Hit) bool { return hit.Target == tg }
}

func menuItem(action string) func(layout.Hit) bool {
	return func(hit layout.Hit) bool {
		return (hit.Target == layout.TargetMenuItem || hit.Target == layout.TargetSubmenuItem) && hit.Action == action
	}
}

func icon(kind string) func(layout.Hit) bool {
	return func(hit layout.Hit) bool { return hit.Target == layout.TargetIcon && hit.Kind == kind }
}

func (h *harness) toasts() []string {
	var out []string
	for _, t := range h.app.Desktop().Toasts().Active() {
		out = append(out, t.Message)
	}
	return out
}

// msgs runs cmd and flattens batches. Only call it on commands that do
// not wait on timers.
func msgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, msgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestView_BeforeSize(t *testing.T) {
	a := New(Options{Config: config.Default(), Scheduler: sched.NewManual(time.Unix(0, 0))})
	t.Cleanup(a.Cleanup)
	assert.Equal(t, "Loading...", a.View())
}

func TestView_ShowsClock(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.app.View(), "3:04 PM")

	h.send(clock.TickMsg(time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)))
	assert.Contains(t, h.app.View(), "9:30 AM")
}

func TestDoubleClickIcon_OpensWindow(t *testing.T) {
	h := newHarness(t)
	at := h.find(t, icon("my-computer"))

	h.click(at)
	h.clock.Advance(100 * time.Millisecond)
	h.click(at)

	windows := h.app.Desktop().Windows()
	require.Equal(t, 1, windows.Len())
	id, ok := windows.Active()
	require.True(t, ok)
	assert.Contains(t, h.app.lists, id)
	assert.Contains(t, h.app.View(), "My Computer")
}

func TestSlowClicks_OnlySelect(t *testing.T) {
	h := newHarness(t)
	at := h.find(t, icon("my-computer"))

	h.click(at)
	h.clock.Advance(time.Second)
	h.click(at)

	assert.Equal(t, 0, h.app.Desktop().Windows().Len())
	assert.Equal(t, []string{"my-computer"}, h.app.Desktop().Icons().Selected())
}

func TestStartButton_TogglesMenu(t *testing.T) {
	h := newHarness(t)
	start := h.find(t, target(layout.TargetStartButton))
	menu := h.app.Desktop().Menu()

	h.click(start)
	assert.Equal(t, startmenu.Open, menu.State())
	h.click(start)
	assert.Equal(t, startmenu.Closed, menu.State())

	h.key("s")
	assert.Equal(t, startmenu.Open, menu.State())
	h.key("esc")
	assert.Equal(t, startmenu.Closed, menu.State())
}

func TestClickOutside_ClosesMenu(t *testing.T) {
	h := newHarness(t)
	h.key("s")
	h.click(geom.Point{X: 70, Y: 10})
	assert.Equal(t, startmenu.Closed, h.app.Desktop().Menu().State())
}

func TestHover_SubmenuHidesAfterDelay(t *testing.T) {
	h := newHarness(t)
	menu := h.app.Desktop().Menu()
	h.key("s")

	h.move(h.find(t, menuItem("programs")))
	sub, open := menu.Submenu()
	require.True(t, open)
	assert.Equal(t, "programs", sub)

	// into the submenu and back out to the desktop
	h.move(h.find(t, menuItem("msdos")))
	assert.False(t, menu.HidePending())
	h.move(geom.Point{X: 70, Y: 10})
	assert.True(t, menu.HidePending())

	h.clock.Advance(startmenu.DefaultHideDelay - time.Millisecond)
	assert.Equal(t, startmenu.SubmenuOpen, menu.State())
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, startmenu.Open, menu.State())
}

func TestMenuSelect_ByClick(t *testing.T) {
	h := newHarness(t)
	h.key("s")
	h.click(h.find(t, menuItem("find")))

	assert.Equal(t, []string{"Find dialog would open here"}, h.toasts())
	assert.Equal(t, startmenu.Closed, h.app.Desktop().Menu().State())
}

func TestDelete_ConfirmWithEnter(t *testing.T) {
	h := newHarness(t)
	h.click(h.find(t, icon("recycle-bin")))

	h.key("delete")
	d, ok := h.app.Desktop().Dialogs().Current()
	require.True(t, ok)
	assert.Equal(t, []string{"Are you sure you want to delete Recycle Bin?"}, d.Body)

	h.key("enter")
	_, ok = h.app.Desktop().Dialogs().Current()
	assert.False(t, ok)
	assert.Len(t, h.app.Desktop().Icons().Icons(), 2)
	assert.Equal(t, []string{"Items moved to Recycle Bin"}, h.toasts())
}

func TestDelete_EscapeKeepsIcons(t *testing.T) {
	h := newHarness(t)
	h.click(h.find(t, icon("recycle-bin")))
	h.key("delete")
	h.key("esc")

	assert.Len(t, h.app.Desktop().Icons().Icons(), 3)
	assert.Empty(t, h.toasts())
}

func TestRunDialog_TypesAndLaunches(t *testing.T) {
	h := newHarness(t)
	h.key("s")
	h.click(h.find(t, menuItem("run")))

	d, ok := h.app.Desktop().Dialogs().Current()
	require.True(t, ok)
	require.True(t, d.HasInput)

	// q and s go to the input line, not the global bindings
	for _, k := range []string{"l", "s", " ", "-", "q"} {
		h.key(k)
	}
	assert.Equal(t, "ls -q", d.Input)
	assert.Contains(t, h.app.View(), "ls -q")

	cmd := h.key("enter")
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"Run command executed"}, h.toasts())
	_, ok = h.app.Desktop().Dialogs().Current()
	assert.False(t, ok)
}

func TestRunDialog_ExecFailureNotifies(t *testing.T) {
	h := newHarness(t)
	h.send(ExecFinishedMsg{Cmd: "nope", Err: assert.AnError})
	assert.Equal(t, []string{`Cannot run "nope"`}, h.toasts())
}

func TestShutDown_Quits(t *testing.T) {
	h := newHarness(t)
	h.key("s")
	h.click(h.find(t, menuItem("shutdown")))

	_, ok := h.app.Desktop().Dialogs().Current()
	require.True(t, ok)

	out := msgs(h.key("enter"))
	assert.Contains(t, out, tea.Quit())
	assert.Equal(t, []string{"System would shut down"}, h.toasts())
}

func TestShutDown_RestartByChoiceClick(t *testing.T) {
	h := newHarness(t)
	h.app.Desktop().Open("my-computer")
	h.key("s")
	h.click(h.find(t, menuItem("shutdown")))

	h.click(h.find(t, func(hit layout.Hit) bool {
		return hit.Target == layout.TargetDialogChoice && hit.Index == 1
	}))
	h.click(h.find(t, func(hit layout.Hit) bool {
		return hit.Target == layout.TargetDialogButton && hit.Index == 0
	}))

	assert.Equal(t, 0, h.app.Desktop().Windows().Len())
}

func TestDialog_ArrowKeysMoveChoiceAndFocus(t *testing.T) {
	h := newHarness(t)
	h.key("s")
	h.click(h.find(t, menuItem("shutdown")))
	d, _ := h.app.Desktop().Dialogs().Current()

	h.key("down")
	assert.Equal(t, 1, d.Choice)
	h.key("tab")
	assert.Equal(t, 1, d.Focus)
	h.send(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, d.Focus)
}

func TestWindowControls_ByMouse(t *testing.T) {
	h := newHarness(t)
	h.app.Desktop().Open("my-computer")
	windows := h.app.Desktop().Windows()
	id, _ := windows.Active()

	h.click(h.find(t, target(layout.TargetMaximize)))
	w, _ := windows.Get(id)
	assert.True(t, w.Maximized)
	assert.Contains(t, h.app.View(), "[=]")

	h.click(h.find(t, target(layout.TargetMaximize)))
	w, _ = windows.Get(id)
	assert.False(t, w.Maximized)

	h.click(h.find(t, target(layout.TargetMinimize)))
	w, _ = windows.Get(id)
	assert.True(t, w.Minimized)

	// taskbar restores it
	h.click(h.find(t, target(layout.TargetTaskbarButton)))
	w, _ = windows.Get(id)
	assert.False(t, w.Minimized)

	h.click(h.find(t, target(layout.TargetClose)))
	assert.Equal(t, 0, windows.Len())
	assert.Empty(t, h.app.lists)
}

func TestTitleDrag_MovesWindow(t *testing.T) {
	h := newHarness(t)
	h.app.Desktop().Open("my-computer")
	id, _ := h.app.Desktop().Windows().Active()
	before, _ := h.app.Desktop().Windows().Get(id)

	at := h.find(t, target(layout.TargetTitle))
	h.click(at)
	h.move(at.Add(geom.Point{X: 5, Y: 2}))
	h.release(at.Add(geom.Point{X: 5, Y: 2}))

	after, _ := h.app.Desktop().Windows().Get(id)
	assert.Equal(t, before.Bounds.X+5, after.Bounds.X)
	assert.Equal(t, before.Bounds.Y+2, after.Bounds.Y)
	assert.False(t, h.app.Desktop().Dragging())
	assert.Equal(t, 0, h.app.Desktop().Bus().Len())
}

func TestRubberBand_SelectsIcons(t *testing.T) {
	h := newHarness(t)
	start := geom.Point{X: 20, Y: 20}

	h.click(start)
	h.move(geom.Point{X: 0, Y: 0})
	assert.Contains(t, h.app.View(), "╌")
	h.release(geom.Point{X: 0, Y: 0})

	assert.ElementsMatch(t, []string{"my-computer", "my-documents", "recycle-bin"}, h.app.Desktop().Icons().Selected())
}

func TestKeys_WindowManagement(t *testing.T) {
	h := newHarness(t)
	h.app.Desktop().Open("my-computer")
	h.app.Desktop().Open("recycle-bin")
	windows := h.app.Desktop().Windows()
	second, _ := windows.Active()

	h.key("tab")
	first, _ := windows.Active()
	assert.NotEqual(t, second, first)
	assert.True(t, h.app.lists[first].Focused())
	assert.False(t, h.app.lists[second].Focused())

	h.key("down")
	assert.Equal(t, 1, h.app.lists[first].Cursor())

	h.key("M")
	w, _ := windows.Get(first)
	assert.True(t, w.Maximized)

	h.key("m")
	_, ok := windows.Active()
	assert.False(t, ok)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, 2, windows.Len())
}

func TestCopy_SelectedIcons(t *testing.T) {
	h := newHarness(t)
	h.click(h.find(t, icon("my-computer")))
	h.key("ctrl+c")

	assert.Equal(t, []string{"My Computer"}, h.copied)
}

func TestHelpModal(t *testing.T) {
	h := newHarness(t)
	h.key("?")
	assert.Contains(t, h.app.View(), "Keybindings")

	// keys other than help and escape are swallowed
	h.key("s")
	assert.Equal(t, startmenu.Closed, h.app.Desktop().Menu().State())

	h.key("esc")
	assert.NotContains(t, h.app.View(), "Keybindings")
}

func TestToast_ClickDismisses(t *testing.T) {
	h := newHarness(t)
	h.app.Desktop().Notify("hello")
	h.click(h.find(t, target(layout.TargetToast)))
	assert.Empty(t, h.toasts())
}

func TestConfigChanged_AppliesDurations(t *testing.T) {
	h := newHarness(t)
	cfg := config.Default()
	cfg.Notifications.Duration = time.Second
	h.send(ConfigChangedMsg{Config: cfg})

	h.app.Desktop().Notify("hello")
	h.clock.Advance(time.Second)
	assert.Empty(t, h.toasts())
}

func TestRunMsg_RunsCallback(t *testing.T) {
	h := newHarness(t)
	ran := false
	h.send(RunMsg{Fn: func() { ran = true }})
	assert.True(t, ran)
}

func TestQuitKey(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, msgs(h.key("q")), tea.Quit())
}
