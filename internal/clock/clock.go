// Package clock formats the taskbar clock.
package clock

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Layout is the 12-hour taskbar format
const Layout = "3:04 PM"

// Format renders t for the taskbar
func Format(t time.Time) string {
	return t.Format(Layout)
}

// TickMsg carries the time of a clock tick
type TickMsg time.Time

// Tick fires a TickMsg on the next whole second
func Tick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
