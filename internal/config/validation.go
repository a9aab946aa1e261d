package config

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/kmacinski/desk95/internal/logging"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks value ranges and returns all problems at once
func Validate(c Config) error {
	var problems []string

	positive := func(name string, d time.Duration) {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive (got: %s)", name, d))
		}
	}
	positive("desktop.double_click", c.Desktop.DoubleClick)
	positive("start_menu.hide_delay", c.StartMenu.HideDelay)
	positive("notifications.duration", c.Notifications.Duration)

	if c.Desktop.TaskbarHeight < 1 {
		problems = append(problems, "desktop.taskbar_height must be at least 1")
	}
	if c.Desktop.Cascade.OriginX < 0 || c.Desktop.Cascade.OriginY < 0 {
		problems = append(problems, "desktop.cascade origin must be non-negative")
	}
	if c.Desktop.Cascade.StepX < 0 || c.Desktop.Cascade.StepY < 0 {
		problems = append(problems, "desktop.cascade step must be non-negative")
	}

	w := c.Desktop.Window
	if w.MinWidth < 1 || w.MinHeight < 1 {
		problems = append(problems, "desktop.window minimum size must be at least 1x1")
	}
	if w.Width < w.MinWidth || w.Height < w.MinHeight {
		problems = append(problems, fmt.Sprintf("desktop.window size %dx%d is below the minimum %dx%d",
			w.Width, w.Height, w.MinWidth, w.MinHeight))
	}

	colors := map[string]string{
		"theme.desktop":        c.Theme.Desktop,
		"theme.face":           c.Theme.Face,
		"theme.text":           c.Theme.Text,
		"theme.title_active":   c.Theme.TitleActive,
		"theme.title_inactive": c.Theme.TitleInactive,
		"theme.title_text":     c.Theme.TitleText,
		"theme.highlight":      c.Theme.Highlight,
		"theme.shadow":         c.Theme.Shadow,
		"theme.disabled":       c.Theme.Disabled,
	}
	for _, key := range slices.Sorted(maps.Keys(colors)) {
		if !hexColor.MatchString(colors[key]) {
			problems = append(problems, fmt.Sprintf("%s must be a #rrggbb color (got: %q)", key, colors[key]))
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level: %v", err))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("logging.format must be json or console (got: %q)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
