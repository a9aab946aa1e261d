package app

import "time"

// State holds the UI state that lives outside the desktop controller
type State struct {
	// UI
	ActiveModal string // empty if no modal
	// MenuHover is the Start menu item under the pointer
	MenuHover string
	// InMenu is true while the pointer is over the menu or a submenu
	InMenu bool

	// Now is the time of the last clock tick
	Now time.Time
}

// NewState creates a new state with defaults
func NewState(now time.Time) *State {
	return &State{Now: now}
}

// ToggleModal toggles a modal on/off
func (s *State) ToggleModal(name string) {
	if s.ActiveModal == name {
		s.ActiveModal = ""
	} else {
		s.ActiveModal = name
	}
}

// CloseModal closes any open modal
func (s *State) CloseModal() {
	s.ActiveModal = ""
}

// SetHover records the menu item under the pointer and whether the
// pointer is inside the menu. It returns true when the pointer just left.
func (s *State) SetHover(action string, inMenu bool) bool {
	left := s.InMenu && !inMenu
	s.MenuHover = action
	s.InMenu = inMenu
	return left
}
