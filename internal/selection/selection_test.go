package selection

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/surface"
)

type mockConfirmer struct {
	mock.Mock
}

func (m *mockConfirmer) Confirm(msg string, result func(bool)) {
	args := m.Called(msg)
	result(args.Bool(0))
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(msg string) {
	m.Called(msg)
}

// A and C sit in the top row, B below them.
var testIcons = []Icon{
	{Kind: "a", Label: "A", Bounds: geom.Rect{X: 0, Y: 0, W: 10, H: 4}},
	{Kind: "b", Label: "B", Bounds: geom.Rect{X: 0, Y: 20, W: 10, H: 4}},
	{Kind: "c", Label: "C", Bounds: geom.Rect{X: 30, Y: 0, W: 10, H: 4}},
}

type fixture struct {
	ctrl      *Controller
	scene     *surface.Scene
	clock     *sched.Manual
	confirmer *mockConfirmer
	notifier  *mockNotifier
	opened    []string
}

func newFixture() *fixture {
	f := &fixture{
		scene:     surface.NewScene(),
		clock:     sched.NewManual(time.Unix(0, 0)),
		confirmer: &mockConfirmer{},
		notifier:  &mockNotifier{},
	}
	f.ctrl = New(testIcons, Options{
		Surface:   f.scene,
		Scheduler: f.clock,
		Opener:    func(kind string) { f.opened = append(f.opened, kind) },
		Confirmer: f.confirmer,
		Notifier:  f.notifier,
		Logger:    zerolog.Nop(),
	})
	return f
}

func TestNew_MountsIcons(t *testing.T) {
	f := newFixture()
	assert.Equal(t, 3, f.scene.Count(surface.KindIcon))
	assert.Len(t, f.ctrl.Icons(), 3)
}

func TestRectangle_SelectsIntersecting(t *testing.T) {
	f := newFixture()

	f.ctrl.PointerDown(geom.Point{X: 45, Y: 8})
	assert.True(t, f.scene.Mounted(RectNode.ID))

	f.ctrl.PointerMove(geom.Point{X: 5, Y: 2})
	rect, ok := f.ctrl.Rect()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 5, Y: 2, W: 40, H: 6}, rect)

	f.ctrl.PointerUp()
	assert.False(t, f.scene.Mounted(RectNode.ID))
	_, ok = f.ctrl.Rect()
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "c"}, f.ctrl.Selected())
	assert.True(t, f.scene.HasClass("icon-a", surface.ClassSelected))
	assert.False(t, f.scene.HasClass("icon-b", surface.ClassSelected))
}

func TestRectangle_ShrinkDeselects(t *testing.T) {
	f := newFixture()

	f.ctrl.PointerDown(geom.Point{X: 5, Y: 2})
	f.ctrl.PointerMove(geom.Point{X: 35, Y: 3})
	assert.Equal(t, []string{"a", "c"}, f.ctrl.Selected())

	f.ctrl.PointerMove(geom.Point{X: 15, Y: 3})
	assert.Equal(t, []string{"a"}, f.ctrl.Selected())
	assert.False(t, f.scene.HasClass("icon-c", surface.ClassSelected))
}

func TestPointerDown_ClearsSelection(t *testing.T) {
	f := newFixture()
	f.ctrl.Click("b", false, time.Unix(1, 0))

	f.ctrl.PointerDown(geom.Point{X: 100, Y: 100})
	assert.Empty(t, f.ctrl.Selected())
}

func TestPointerMove_WithoutSession(t *testing.T) {
	f := newFixture()
	f.ctrl.PointerMove(geom.Point{X: 1, Y: 1})
	f.ctrl.PointerUp()
	assert.Empty(t, f.ctrl.Selected())
}

func TestClick_Exclusive(t *testing.T) {
	f := newFixture()

	f.ctrl.Click("a", false, time.Unix(1, 0))
	f.ctrl.Click("b", false, time.Unix(2, 0))

	assert.Equal(t, []string{"b"}, f.ctrl.Selected())
	assert.False(t, f.scene.HasClass("icon-a", surface.ClassSelected))
}

func TestCtrlClick_Toggles(t *testing.T) {
	f := newFixture()

	f.ctrl.Click("b", false, time.Unix(1, 0))
	f.ctrl.Click("a", true, time.Unix(2, 0))
	assert.Equal(t, []string{"a", "b"}, f.ctrl.Selected())

	f.ctrl.Click("a", true, time.Unix(3, 0))
	assert.Equal(t, []string{"b"}, f.ctrl.Selected())
}

func TestCtrlClickTwice_Empty(t *testing.T) {
	f := newFixture()

	f.ctrl.Click("a", true, time.Unix(1, 0))
	assert.True(t, f.ctrl.IsSelected("a"))

	f.ctrl.Click("a", true, time.Unix(2, 0))
	assert.False(t, f.ctrl.IsSelected("a"))
	assert.Empty(t, f.ctrl.Selected())
}

func TestDoubleClick(t *testing.T) {
	base := time.Unix(10, 0)

	tests := []struct {
		name   string
		first  string
		second string
		gap    time.Duration
		opens  bool
	}{
		{"same icon within threshold", "a", "a", 200 * time.Millisecond, true},
		{"same icon at threshold", "a", "a", 300 * time.Millisecond, true},
		{"same icon too slow", "a", "a", 301 * time.Millisecond, false},
		{"different icons", "a", "c", 100 * time.Millisecond, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			assert.False(t, f.ctrl.Click(tt.first, false, base))
			got := f.ctrl.Click(tt.second, false, base.Add(tt.gap))

			assert.Equal(t, tt.opens, got)
			if tt.opens {
				assert.Equal(t, []string{tt.second}, f.opened)
			} else {
				assert.Empty(t, f.opened)
			}
		})
	}
}

func TestDoubleClick_TripleOpensOnce(t *testing.T) {
	f := newFixture()
	base := time.Unix(10, 0)

	f.ctrl.Click("a", false, base)
	f.ctrl.Click("a", false, base.Add(100*time.Millisecond))
	f.ctrl.Click("a", false, base.Add(200*time.Millisecond))

	assert.Equal(t, []string{"a"}, f.opened)
}

func TestDoubleClick_Animation(t *testing.T) {
	f := newFixture()
	base := time.Unix(10, 0)

	f.ctrl.Click("c", false, base)
	f.ctrl.Click("c", false, base.Add(50*time.Millisecond))

	assert.True(t, f.scene.HasClass("icon-c", surface.ClassDoubleClicked))
	assert.True(t, f.ctrl.Animating("c"))

	f.clock.Advance(DefaultDoubleClick)
	assert.False(t, f.scene.HasClass("icon-c", surface.ClassDoubleClicked))
	assert.False(t, f.ctrl.Animating("c"))
}

func TestClickOutside_Clears(t *testing.T) {
	f := newFixture()
	f.ctrl.Click("a", false, time.Unix(1, 0))
	f.ctrl.Click("c", true, time.Unix(2, 0))

	f.ctrl.ClickOutside()
	assert.Empty(t, f.ctrl.Selected())
}

func TestDelete_Confirmed(t *testing.T) {
	f := newFixture()
	f.confirmer.On("Confirm", "Are you sure you want to delete A, C?").Return(true).Once()
	f.notifier.On("Notify", "Items moved to Recycle Bin").Once()

	f.ctrl.PointerDown(geom.Point{X: 0, Y: 0})
	f.ctrl.PointerMove(geom.Point{X: 40, Y: 5})
	f.ctrl.PointerUp()
	require.Equal(t, []string{"a", "c"}, f.ctrl.Selected())

	f.ctrl.Delete()

	f.confirmer.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	assert.Empty(t, f.ctrl.Selected())
	assert.Len(t, f.ctrl.Icons(), 1)
	assert.False(t, f.scene.Mounted("icon-a"))
	assert.True(t, f.scene.Mounted("icon-b"))

	_, ok := f.ctrl.IconAt(geom.Point{X: 1, Y: 1})
	assert.False(t, ok, "deleted icons are not hit-testable")
	assert.False(t, f.ctrl.Click("a", false, time.Unix(5, 0)))
	assert.Empty(t, f.ctrl.Selected())
}

func TestDelete_Cancelled(t *testing.T) {
	f := newFixture()
	f.confirmer.On("Confirm", "Are you sure you want to delete B?").Return(false).Once()

	f.ctrl.Click("b", false, time.Unix(1, 0))
	f.ctrl.Delete()

	f.confirmer.AssertExpectations(t)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything)
	assert.Equal(t, []string{"b"}, f.ctrl.Selected())
	assert.Len(t, f.ctrl.Icons(), 3)
}

func TestDelete_EmptySelection(t *testing.T) {
	f := newFixture()
	f.ctrl.Delete()
	f.confirmer.AssertNotCalled(t, "Confirm", mock.Anything)
}

func TestEnter(t *testing.T) {
	f := newFixture()

	assert.False(t, f.ctrl.Enter())

	f.ctrl.Click("b", false, time.Unix(1, 0))
	assert.True(t, f.ctrl.Enter())
	assert.Equal(t, []string{"b"}, f.opened)

	f.ctrl.Click("a", true, time.Unix(2, 0))
	assert.False(t, f.ctrl.Enter())
	assert.Len(t, f.opened, 1)
}

func TestIconAt(t *testing.T) {
	f := newFixture()

	icon, ok := f.ctrl.IconAt(geom.Point{X: 31, Y: 2})
	require.True(t, ok)
	assert.Equal(t, "c", icon.Kind)

	_, ok = f.ctrl.IconAt(geom.Point{X: 20, Y: 10})
	assert.False(t, ok)
}

func TestUnknownKind_NoOp(t *testing.T) {
	f := newFixture()
	assert.False(t, f.ctrl.Click("nope", false, time.Unix(1, 0)))
	assert.Empty(t, f.ctrl.Selected())
}
