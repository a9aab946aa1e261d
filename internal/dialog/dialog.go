// Package dialog tracks the single modal dialog of the desktop.
package dialog

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/surface"
)

// Button is a dialog button
type Button struct {
	Label  string
	Action func()
}

// Dialog is a modal box with text, optional radio choices, an optional
// single-line input and a row of buttons.
type Dialog struct {
	ID      string
	Title   string
	Body    []string
	Buttons []Button

	Choices []string
	Choice  int

	InputLabel string
	HasInput   bool
	Input      string

	// Focus is the index of the keyboard-focused button
	Focus int

	onDismiss func()
}

// Node returns the dialog's surface node
func (d *Dialog) Node() surface.Node {
	return surface.Node{ID: d.ID, Kind: surface.KindDialog}
}

// MoveChoice moves the radio selection, wrapping around
func (d *Dialog) MoveChoice(delta int) {
	if len(d.Choices) == 0 {
		return
	}
	n := len(d.Choices)
	d.Choice = ((d.Choice+delta)%n + n) % n
}

// MoveFocus moves keyboard focus across the buttons, wrapping around
func (d *Dialog) MoveFocus(delta int) {
	if len(d.Buttons) == 0 {
		return
	}
	n := len(d.Buttons)
	d.Focus = ((d.Focus+delta)%n + n) % n
}

// Manager keeps at most one dialog mounted. Showing a new dialog replaces
// the tracked one instead of stacking nodes.
type Manager struct {
	surface surface.Surface
	log     zerolog.Logger
	current *Dialog
	seq     int
}

// NewManager creates a dialog manager
func NewManager(s surface.Surface, logger zerolog.Logger) *Manager {
	return &Manager{surface: s, log: logger}
}

// Show mounts d, dismissing any dialog that is already open
func (m *Manager) Show(d *Dialog) {
	if m.current != nil {
		m.Close()
	}

	m.seq++
	d.ID = fmt.Sprintf("dialog-%d", m.seq)
	m.current = d
	m.surface.Mount(d.Node())
	m.surface.SetClass(d.Node(), surface.ClassVisible, true)

	m.log.Debug().Str("dialog", d.ID).Str("title", d.Title).Msg("dialog shown")
}

// Close dismisses the current dialog as if its title-bar close button was
// pressed
func (m *Manager) Close() {
	d := m.finish()
	if d != nil && d.onDismiss != nil {
		d.onDismiss()
	}
}

// finish unmounts the current dialog without running its dismiss hook
func (m *Manager) finish() *Dialog {
	d := m.current
	if d == nil {
		return nil
	}
	m.current = nil
	m.surface.Unmount(d.Node())
	m.log.Debug().Str("dialog", d.ID).Msg("dialog closed")
	return d
}

// Current returns the open dialog
func (m *Manager) Current() (*Dialog, bool) {
	return m.current, m.current != nil
}

// Press runs the action of the button with label. It returns false when
// no dialog is open or no such button exists.
func (m *Manager) Press(label string) bool {
	if m.current == nil {
		return false
	}
	for _, b := range m.current.Buttons {
		if b.Label == label {
			if b.Action != nil {
				b.Action()
			}
			return true
		}
	}
	return false
}

// PressFocused runs the keyboard-focused button
func (m *Manager) PressFocused() bool {
	d := m.current
	if d == nil || d.Focus < 0 || d.Focus >= len(d.Buttons) {
		return false
	}
	return m.Press(d.Buttons[d.Focus].Label)
}
