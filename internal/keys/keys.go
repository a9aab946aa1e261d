package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	GotoTop  key.Binding
	GotoBot  key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Escape   key.Binding

	// Desktop
	Delete      key.Binding
	Copy        key.Binding
	Start       key.Binding
	Minimize    key.Binding
	Maximize    key.Binding
	CloseWindow key.Binding

	// Dialogs
	ChoiceUp   key.Binding
	ChoiceDown key.Binding
	ButtonNext key.Binding
	ButtonPrev key.Binding

	// Actions
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the default keybindings
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	GotoTop: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/G", "top/bottom"),
	),
	GotoBot: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("g/G", "top/bottom"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next window"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev window"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close menu/dialog"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "delete icons"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "copy icon names"),
	),
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start menu"),
	),
	Minimize: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "minimize"),
	),
	Maximize: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "maximize/restore"),
	),
	CloseWindow: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("C-w", "close window"),
	),
	ChoiceUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous option"),
	),
	ChoiceDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next option"),
	),
	ButtonNext: key.NewBinding(
		key.WithKeys("tab", "right"),
		key.WithHelp("tab", "next button"),
	),
	ButtonPrev: key.NewBinding(
		key.WithKeys("shift+tab", "left"),
		key.WithHelp("S-tab", "previous button"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?/F1", "help"),
	),
}

// HelpBindings returns the keybindings to display in help
func HelpBindings() []key.Binding {
	return []key.Binding{
		DefaultKeyMap.Up,
		DefaultKeyMap.GotoTop,
		DefaultKeyMap.Tab,
		DefaultKeyMap.Enter,
		DefaultKeyMap.Delete,
		DefaultKeyMap.Copy,
		DefaultKeyMap.Start,
		DefaultKeyMap.Minimize,
		DefaultKeyMap.Maximize,
		DefaultKeyMap.CloseWindow,
		DefaultKeyMap.Escape,
		DefaultKeyMap.Help,
		DefaultKeyMap.Quit,
	}
}
