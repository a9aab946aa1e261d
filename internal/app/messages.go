package app

import "github.com/kmacinski/desk95/internal/config"

// RunMsg carries a scheduled callback onto the event loop
type RunMsg struct {
	Fn func()
}

// ConfigChangedMsg is sent when the config file is edited on disk
type ConfigChangedMsg struct {
	Config config.Config
}

// ExecFinishedMsg is sent when a command started from the Run dialog exits
type ExecFinishedMsg struct {
	Cmd string
	Err error
}
