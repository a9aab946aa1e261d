package config

import (
	"time"

	"github.com/kmacinski/desk95/internal/logging"
)

// Config holds all application configuration. Sizes are terminal cells.
type Config struct {
	Desktop       DesktopConfig       `mapstructure:"desktop" yaml:"desktop"`
	StartMenu     StartMenuConfig     `mapstructure:"start_menu" yaml:"start_menu"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	// CatalogFile is an optional YAML file layered over the built-in icons
	CatalogFile string         `mapstructure:"catalog_file" yaml:"catalog_file"`
	Theme       ThemeConfig    `mapstructure:"theme" yaml:"theme"`
	Logging     logging.Config `mapstructure:"logging" yaml:"logging"`
}

// DesktopConfig holds desktop and window placement settings
type DesktopConfig struct {
	DoubleClick   time.Duration `mapstructure:"double_click" yaml:"double_click"`
	TaskbarHeight int           `mapstructure:"taskbar_height" yaml:"taskbar_height"`
	Cascade       CascadeConfig `mapstructure:"cascade" yaml:"cascade"`
	Window        WindowConfig  `mapstructure:"window" yaml:"window"`
}

// CascadeConfig places each new window offset from the previous one
type CascadeConfig struct {
	OriginX int `mapstructure:"origin_x" yaml:"origin_x"`
	OriginY int `mapstructure:"origin_y" yaml:"origin_y"`
	StepX   int `mapstructure:"step_x" yaml:"step_x"`
	StepY   int `mapstructure:"step_y" yaml:"step_y"`
}

// WindowConfig holds default and minimum window sizes
type WindowConfig struct {
	Width     int `mapstructure:"width" yaml:"width"`
	Height    int `mapstructure:"height" yaml:"height"`
	MinWidth  int `mapstructure:"min_width" yaml:"min_width"`
	MinHeight int `mapstructure:"min_height" yaml:"min_height"`
}

// StartMenuConfig holds Start menu settings
type StartMenuConfig struct {
	HideDelay time.Duration `mapstructure:"hide_delay" yaml:"hide_delay"`
}

// NotificationsConfig holds toast settings
type NotificationsConfig struct {
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`
}

// ThemeConfig holds color definitions
type ThemeConfig struct {
	Desktop       string `mapstructure:"desktop" yaml:"desktop"`
	Face          string `mapstructure:"face" yaml:"face"`
	Text          string `mapstructure:"text" yaml:"text"`
	TitleActive   string `mapstructure:"title_active" yaml:"title_active"`
	TitleInactive string `mapstructure:"title_inactive" yaml:"title_inactive"`
	TitleText     string `mapstructure:"title_text" yaml:"title_text"`
	Highlight     string `mapstructure:"highlight" yaml:"highlight"`
	Shadow        string `mapstructure:"shadow" yaml:"shadow"`
	Disabled      string `mapstructure:"disabled" yaml:"disabled"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Desktop: DesktopConfig{
			DoubleClick:   300 * time.Millisecond,
			TaskbarHeight: 1,
			Cascade: CascadeConfig{
				OriginX: 14,
				OriginY: 1,
				StepX:   3,
				StepY:   2,
			},
			Window: WindowConfig{
				Width:     44,
				Height:    14,
				MinWidth:  20,
				MinHeight: 5,
			},
		},
		StartMenu: StartMenuConfig{
			HideDelay: 200 * time.Millisecond,
		},
		Notifications: NotificationsConfig{
			Duration: 3 * time.Second,
		},
		Theme: ThemeConfig{
			Desktop:       "#008080",
			Face:          "#c0c0c0",
			Text:          "#000000",
			TitleActive:   "#000080",
			TitleInactive: "#808080",
			TitleText:     "#ffffff",
			Highlight:     "#000080",
			Shadow:        "#808080",
			Disabled:      "#808080",
		},
		Logging: logging.DefaultConfig(),
	}
}
