// Package config loads desk95 settings with viper and watches them for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	appName = "desk95"
	// EnvPrefix prefixes environment overrides, e.g. DESK95_START_MENU_HIDE_DELAY
	EnvPrefix = "DESK95"
)

// Dir returns $XDG_CONFIG_HOME/desk95
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName), nil
}

// Manager handles configuration loading, watching, and reloading
type Manager struct {
	viper     *viper.Viper
	explicit  bool
	log       zerolog.Logger
	mu        sync.RWMutex
	config    Config
	callbacks []func(Config)
	watching  bool
}

// NewManager creates a manager. An empty path searches the XDG config
// directory for config.yaml; a missing file there is not an error.
func NewManager(path string, logger zerolog.Logger) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{
		viper:    v,
		explicit: path != "",
		log:      logger,
		config:   Default(),
	}
	m.setDefaults()
	return m, nil
}

// Load reads the file and environment and validates the result
func (m *Manager) Load() error {
	cfg, err := m.read()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
	return nil
}

func (m *Manager) read() (Config, error) {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if m.explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Get returns the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// File returns the config file in use, or "" when running on defaults
func (m *Manager) File() string {
	return m.viper.ConfigFileUsed()
}

// SetLogger replaces the logger used for reload events. Call it before
// Watch; a running watch keeps the logger it started with.
func (m *Manager) SetLogger(logger zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = logger
}

// OnChange registers a callback run after every successful reload
func (m *Manager) OnChange(fn func(Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch reloads the config file whenever it changes. Invalid edits are
// logged and the previous configuration stays in effect.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	if m.viper.ConfigFileUsed() == "" {
		m.log.Debug().Msg("no config file, not watching")
		return nil
	}

	log := m.log
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := m.read()
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("failed to reload config")
			return
		}

		m.mu.Lock()
		m.config = cfg
		callbacks := make([]func(Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		log.Info().Str("file", e.Name).Msg("config reloaded")
		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

// setDefaults registers every key so env overrides and partial files work
func (m *Manager) setDefaults() {
	d := Default()

	m.viper.SetDefault("desktop.double_click", d.Desktop.DoubleClick)
	m.viper.SetDefault("desktop.taskbar_height", d.Desktop.TaskbarHeight)
	m.viper.SetDefault("desktop.cascade.origin_x", d.Desktop.Cascade.OriginX)
	m.viper.SetDefault("desktop.cascade.origin_y", d.Desktop.Cascade.OriginY)
	m.viper.SetDefault("desktop.cascade.step_x", d.Desktop.Cascade.StepX)
	m.viper.SetDefault("desktop.cascade.step_y", d.Desktop.Cascade.StepY)
	m.viper.SetDefault("desktop.window.width", d.Desktop.Window.Width)
	m.viper.SetDefault("desktop.window.height", d.Desktop.Window.Height)
	m.viper.SetDefault("desktop.window.min_width", d.Desktop.Window.MinWidth)
	m.viper.SetDefault("desktop.window.min_height", d.Desktop.Window.MinHeight)

	m.viper.SetDefault("start_menu.hide_delay", d.StartMenu.HideDelay)
	m.viper.SetDefault("notifications.duration", d.Notifications.Duration)
	m.viper.SetDefault("catalog_file", d.CatalogFile)

	m.viper.SetDefault("theme.desktop", d.Theme.Desktop)
	m.viper.SetDefault("theme.face", d.Theme.Face)
	m.viper.SetDefault("theme.text", d.Theme.Text)
	m.viper.SetDefault("theme.title_active", d.Theme.TitleActive)
	m.viper.SetDefault("theme.title_inactive", d.Theme.TitleInactive)
	m.viper.SetDefault("theme.title_text", d.Theme.TitleText)
	m.viper.SetDefault("theme.highlight", d.Theme.Highlight)
	m.viper.SetDefault("theme.shadow", d.Theme.Shadow)
	m.viper.SetDefault("theme.disabled", d.Theme.Disabled)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
	m.viper.SetDefault("logging.file", d.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}
