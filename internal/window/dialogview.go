package window

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/kmacinski/desk95/internal/dialog"
	"github.com/kmacinski/desk95/internal/geom"
	"github.com/kmacinski/desk95/internal/ui"
)

const (
	inputWidth = 24
	buttonGap  = 2
)

// DialogGeometry is where each part of a dialog box sits on screen
type DialogGeometry struct {
	Box     geom.Rect
	Close   geom.Rect
	Body    []geom.Rect
	Choices []geom.Rect
	Input   geom.Rect
	Buttons []geom.Rect
}

func buttonLabel(label string) string {
	return "[ " + label + " ]"
}

// DialogLayout centers d on a screen of the given size
func DialogLayout(d *dialog.Dialog, screen geom.Point) DialogGeometry {
	width := runewidth.StringWidth(d.Title) + 6
	for _, line := range d.Body {
		width = max(width, runewidth.StringWidth(line))
	}
	for _, choice := range d.Choices {
		width = max(width, runewidth.StringWidth(choice)+4)
	}
	if d.HasInput {
		width = max(width, runewidth.StringWidth(d.InputLabel)+1+inputWidth)
	}
	buttons := 0
	for i, b := range d.Buttons {
		if i > 0 {
			buttons += buttonGap
		}
		buttons += runewidth.StringWidth(buttonLabel(b.Label))
	}
	width = min(max(width, buttons)+4, max(screen.X, 10))

	height := 2 + len(d.Body) + 3
	if len(d.Choices) > 0 {
		height += 1 + len(d.Choices)
	}
	if d.HasInput {
		height += 2
	}

	box := geom.Rect{
		X: max(0, (screen.X-width)/2),
		Y: max(0, (screen.Y-height)/2),
		W: width,
		H: height,
	}
	g := DialogGeometry{
		Box:   box,
		Close: geom.Rect{X: box.Right() - 4, Y: box.Y, W: 3, H: 1},
	}

	inner := box.W - 4
	y := box.Y + 2
	for range d.Body {
		g.Body = append(g.Body, geom.Rect{X: box.X + 2, Y: y, W: inner, H: 1})
		y++
	}
	if len(d.Choices) > 0 {
		y++
		for range d.Choices {
			g.Choices = append(g.Choices, geom.Rect{X: box.X + 2, Y: y, W: inner, H: 1})
			y++
		}
	}
	if d.HasInput {
		y++
		labelW := runewidth.StringWidth(d.InputLabel) + 1
		g.Input = geom.Rect{X: box.X + 2 + labelW, Y: y, W: max(1, inner-labelW), H: 1}
		y++
	}

	y++
	x := box.X + max(2, (box.W-buttons)/2)
	for _, b := range d.Buttons {
		w := runewidth.StringWidth(buttonLabel(b.Label))
		g.Buttons = append(g.Buttons, geom.Rect{X: x, Y: y, W: w, H: 1})
		x += w + buttonGap
	}
	return g
}

// DialogView draws the open dialog and edits its input line
type DialogView struct {
	Base
	input  textinput.Model
	dialog *dialog.Dialog
}

// NewDialogView creates a dialog view
func NewDialogView(styles *ui.Styles) *DialogView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	// the cursor cell is drawn by the view itself
	ti.Cursor.SetMode(cursor.CursorHide)

	return &DialogView{
		Base:  NewBase("dialog", styles),
		input: ti,
	}
}

// SetDialog points the view at d. A different dialog resets the input.
func (v *DialogView) SetDialog(d *dialog.Dialog) tea.Cmd {
	if d == v.dialog {
		return nil
	}
	v.dialog = d
	v.input.Reset()
	v.input.Blur()
	v.SetFocus(d != nil)

	if d == nil || !d.HasInput {
		return nil
	}
	v.input.SetValue(d.Input)
	return v.input.Focus()
}

// Dialog returns the dialog being shown
func (v *DialogView) Dialog() *dialog.Dialog {
	return v.dialog
}

// Update feeds keys to the input line and mirrors its value into the dialog
func (v *DialogView) Update(msg tea.Msg) (Window, tea.Cmd) {
	if v.dialog == nil || !v.dialog.HasInput {
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.dialog.Input = v.input.Value()
	return v, cmd
}

// Draw renders the dialog centered in area
func (v *DialogView) Draw(c *ui.Canvas, area geom.Rect) {
	d := v.dialog
	if d == nil {
		return
	}
	g := DialogLayout(d, geom.Point{X: area.W, Y: area.H})
	s := v.styles

	c.Fill(g.Box, ' ', &s.Modal)
	c.Box(g.Box, ui.SingleBorder, &s.Modal)

	title := geom.Rect{X: g.Box.X, Y: g.Box.Y, W: g.Box.W, H: 1}
	c.Fill(title, ' ', &s.ModalTitle)
	c.PutClipped(title.X+1, title.Y, g.Close.X-title.X-2, d.Title, &s.ModalTitle)
	c.Put(g.Close.X, g.Close.Y, "[X]", &s.TitleButton)

	for i, r := range g.Body {
		c.PutClipped(r.X, r.Y, r.W, d.Body[i], &s.Modal)
	}

	for i, r := range g.Choices {
		mark := "( ) "
		if i == d.Choice {
			mark = "(•) "
		}
		c.PutClipped(r.X, r.Y, r.W, mark+d.Choices[i], &s.Modal)
	}

	if d.HasInput {
		c.Put(g.Box.X+2, g.Input.Y, d.InputLabel, &s.Modal)
		v.drawInput(c, g.Input)
	}

	for i, r := range g.Buttons {
		style := &s.Button
		if i == d.Focus {
			style = &s.ButtonFocused
		}
		c.Put(r.X, r.Y, buttonLabel(d.Buttons[i].Label), style)
	}
}

func (v *DialogView) drawInput(c *ui.Canvas, r geom.Rect) {
	s := v.styles
	c.Fill(r, ' ', &s.Input)

	value := []rune(v.input.Value())
	pos := min(v.input.Position(), len(value))
	start := max(0, pos-r.W+1)

	x := r.X
	for i := start; i <= len(value) && x < r.Right(); i++ {
		ch := ' '
		if i < len(value) {
			ch = value[i]
		}
		style := &s.Input
		if i == pos && v.input.Focused() {
			style = &s.InputCursor
		}
		c.Set(x, r.Y, ch, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
}
