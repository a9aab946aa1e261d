package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/desk95/internal/config"
	"github.com/kmacinski/desk95/internal/desktop"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/startmenu"
	"github.com/kmacinski/desk95/internal/surface"
	"github.com/kmacinski/desk95/internal/ui"
	"github.com/kmacinski/desk95/internal/window"
	"github.com/kmacinski/desk95/internal/wm"
)

const (
	screenW = 80
	screenH = 24
)

func newDesktop(t *testing.T) (*desktop.Desktop, *Manager, *ui.Styles) {
	t.Helper()
	d := desktop.New(desktop.Deps{
		Scheduler:    sched.NewManual(time.Unix(0, 0)),
		Config:       config.Default(),
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		Clipboard:    func(string) error { return nil },
		Logger:       zerolog.Nop(),
	})
	t.Cleanup(d.Teardown)

	styles := ui.DefaultStyles
	m := NewManager(&styles, 1)
	m.Resize(screenW, screenH)
	return d, m, &styles
}

func viewOf(d *desktop.Desktop, styles *ui.Styles) View {
	v := View{
		Snapshot:   d.Snapshot(),
		Clock:      "3:04 PM",
		Lists:      map[wm.ID]*window.ItemList{},
		DialogView: window.NewDialogView(styles),
	}
	for _, w := range v.Windows {
		v.Lists[w.ID] = window.NewItemList(w.Kind, w.Content, styles)
	}
	v.DialogView.SetDialog(v.Snapshot.Dialog)
	return v
}

func TestRender_EmptySize(t *testing.T) {
	styles := ui.DefaultStyles
	m := NewManager(&styles, 1)
	assert.Equal(t, "", m.Render(View{}))
}

func TestRender_TaskbarAndIcons(t *testing.T) {
	d, m, styles := newDesktop(t)
	c := m.Draw(viewOf(d, styles))
	require.NotNil(t, c)

	bar := c.Row(screenH - 1)
	assert.True(t, strings.HasPrefix(bar, "[Start]"))
	assert.True(t, strings.HasSuffix(bar, " 3:04 PM "))

	plain := c.Plain()
	assert.Contains(t, plain, "[PC]")
	assert.Contains(t, plain, "My Computer")
	assert.Contains(t, plain, "Recycle Bin")
}

func TestRender_WindowsAndTaskbarButtons(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Open("my-computer")
	d.Open("recycle-bin")

	c := m.Draw(viewOf(d, styles))
	plain := c.Plain()
	assert.Contains(t, plain, "[X]")
	assert.Contains(t, c.Row(screenH-1), "Recycle")

	// minimized windows keep their button but are not drawn
	id, ok := d.Windows().Active()
	require.True(t, ok)
	d.Windows().Minimize(id)
	w, _ := d.Windows().Get(id)

	c = m.Draw(viewOf(d, styles))
	title := c.Row(w.Bounds.Y)
	assert.NotContains(t, title, "Recycle Bin")
	assert.Contains(t, c.Row(screenH-1), "Recycle")
}

func TestRender_FollowsSceneClasses(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Open("recycle-bin")
	id, ok := d.Windows().Active()
	require.True(t, ok)
	w, _ := d.Windows().Get(id)
	scene := d.Scene()

	c := m.Draw(viewOf(d, styles))
	require.Contains(t, c.Row(w.Bounds.Y), "Recycle Bin")
	require.Contains(t, c.Row(screenH-1), "Recycle")
	assert.NotContains(t, c.Plain(), "Programs")

	// hiding the window node removes the frame but not its button
	scene.SetClass(id.Node(), surface.ClassHidden, true)
	c = m.Draw(viewOf(d, styles))
	assert.NotContains(t, c.Row(w.Bounds.Y), "Recycle Bin")
	assert.Contains(t, c.Row(screenH-1), "Recycle")

	// an unmounted button leaves the taskbar empty
	scene.Unmount(id.ButtonNode())
	v := viewOf(d, styles)
	c = m.Draw(v)
	assert.NotContains(t, c.Row(screenH-1), "Recycle")
	assert.Equal(t, TargetTaskbar, m.HitTest(v, geom.Point{X: 9, Y: screenH - 1}).Target)

	// a visible menu node draws the menu
	scene.SetClass(startmenu.MenuNode, surface.ClassVisible, true)
	assert.Contains(t, m.Draw(viewOf(d, styles)).Plain(), "Programs")
}

func TestRender_MenuAndSubmenu(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Menu().Open()
	d.Menu().Hover("programs")

	plain := m.Draw(viewOf(d, styles)).Plain()
	assert.Contains(t, plain, "Programs")
	assert.Contains(t, plain, "Shut Down...")
	assert.Contains(t, plain, "MS-DOS Prompt")
	assert.Contains(t, plain, "►")
}

func TestRender_DialogAndToast(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Notify("Hello there")
	d.Menu().Open()
	d.Menu().Select("run")

	plain := m.Draw(viewOf(d, styles)).Plain()
	assert.Contains(t, plain, "Hello there")
	assert.Contains(t, plain, "Run")
	assert.Contains(t, plain, "Open:")
	assert.Contains(t, plain, "[ OK ]")
	assert.Contains(t, plain, "[ Browse... ]")
}

func TestRender_SelectionRectangle(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.PressDesktop(geom.Point{X: 30, Y: 16})
	d.PointerMove(geom.Point{X: 40, Y: 20})

	c := m.Draw(viewOf(d, styles))
	assert.Contains(t, c.Row(16), "┌╌")
	assert.Contains(t, c.Row(20), "╌┘")
}

func TestHitTest(t *testing.T) {
	d, m, styles := newDesktop(t)
	id := func() wm.ID {
		d.Open("my-computer")
		id, _ := d.Windows().Active()
		return id
	}()
	w, _ := d.Windows().Get(id)
	ch := window.ChromeFor(w.Bounds)
	v := viewOf(d, styles)
	m.Draw(v)

	tests := []struct {
		name string
		at   geom.Point
		want Hit
	}{
		{"start button", geom.Point{X: 2, Y: screenH - 1}, Hit{Target: TargetStartButton}},
		{"taskbar button", geom.Point{X: 9, Y: screenH - 1}, Hit{Target: TargetTaskbarButton, Window: id}},
		{"empty taskbar", geom.Point{X: 50, Y: screenH - 1}, Hit{Target: TargetTaskbar}},
		{"icon", geom.Point{X: 3, Y: 1}, Hit{Target: TargetIcon, Kind: "my-computer"}},
		{"desktop", geom.Point{X: 70, Y: 20}, Hit{Target: TargetDesktop}},
		{"close", ch.Close.Origin(), Hit{Target: TargetClose, Window: id, Index: -1}},
		{"maximize", ch.Maximize.Origin(), Hit{Target: TargetMaximize, Window: id, Index: -1}},
		{"minimize", ch.Minimize.Origin(), Hit{Target: TargetMinimize, Window: id, Index: -1}},
		{"title", ch.Title.Origin().Add(geom.Point{X: 2}), Hit{Target: TargetTitle, Window: id, Index: -1}},
		{"resize", ch.Resize.Origin(), Hit{Target: TargetResize, Window: id, Index: -1}},
		{"body first item", ch.Body.Origin(), Hit{Target: TargetBody, Window: id, Index: 0}},
		{"off screen", geom.Point{X: screenW, Y: 0}, Hit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.HitTest(v, tt.at))
		})
	}
}

func TestHitTest_MenuItems(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Menu().Open()
	d.Menu().Hover("settings")
	v := viewOf(d, styles)

	pl := m.plan(v)
	require.NotEmpty(t, pl.items)
	require.NotEmpty(t, pl.subItems)

	for _, slot := range pl.items {
		assert.Equal(t, Hit{Target: TargetMenuItem, Action: slot.item.Action}, m.HitTest(v, slot.rect.Origin()))
	}
	assert.Equal(t,
		Hit{Target: TargetSubmenuItem, Action: "control-panel"},
		m.HitTest(v, pl.subItems[0].rect.Origin()))

	// the menu sits directly above the taskbar
	assert.Equal(t, screenH-1, pl.menu.Bottom())
	assert.Equal(t, startmenu.SubmenuOpen, v.Menu.State)
}

func TestHitTest_DialogIsModal(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Open("my-computer")
	d.Menu().Open()
	d.Menu().Select("shutdown")
	v := viewOf(d, styles)

	g := window.DialogLayout(v.Snapshot.Dialog, geom.Point{X: screenW, Y: screenH})

	assert.Equal(t, Hit{}, m.HitTest(v, geom.Point{X: 2, Y: screenH - 1}))
	assert.Equal(t, Hit{Target: TargetDialogButton, Index: 0}, m.HitTest(v, g.Buttons[0].Origin()))
	assert.Equal(t, Hit{Target: TargetDialogChoice, Index: 2}, m.HitTest(v, g.Choices[2].Origin()))
	assert.Equal(t, Hit{Target: TargetDialogClose}, m.HitTest(v, g.Close.Origin()))
	assert.Equal(t, Hit{Target: TargetDialog}, m.HitTest(v, g.Box.Origin().Add(geom.Point{X: 1, Y: 1})))
}

func TestHitTest_Toast(t *testing.T) {
	d, m, styles := newDesktop(t)
	d.Notify("Items moved to Recycle Bin")
	v := viewOf(d, styles)

	pl := m.plan(v)
	require.Len(t, pl.toasts, 1)
	hit := m.HitTest(v, pl.toasts[0].rect.Origin())
	assert.Equal(t, TargetToast, hit.Target)
	assert.Equal(t, v.Toasts[0].ID, hit.Toast)
}

func TestHitTest_HelpBlocksEverything(t *testing.T) {
	d, m, styles := newDesktop(t)
	v := viewOf(d, styles)
	v.Help = window.NewHelp(styles)

	pl := m.plan(v)
	assert.Equal(t, Hit{Target: TargetHelp}, m.HitTest(v, pl.help.Origin()))
	assert.Equal(t, Hit{}, m.HitTest(v, geom.Point{X: 2, Y: screenH - 1}))
}
