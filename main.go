package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kmacinski/desk95/internal/app"
	"github.com/kmacinski/desk95/internal/catalog"
	"github.com/kmacinski/desk95/internal/config"
	"github.com/kmacinski/desk95/internal/logging"
)

var (
	version = "dev"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "desk95",
	Short: "A Windows 95 style desktop in your terminal",
	Long: `desk95 - a Windows 95 style desktop shell for the terminal.

Double-click icons to open windows, drag title bars to move them and use
the Start menu in the bottom-left corner. Press ? inside for keybindings.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/desk95/config.yaml)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file (default $XDG_STATE_HOME/desk95/desk95.log)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("desk95 needs an interactive terminal")
	}

	cfgManager, err := config.NewManager(configPath, zerolog.Nop())
	if err != nil {
		return err
	}
	if err := cfgManager.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cfgManager.Get()

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()
	cfgManager.SetLogger(logging.Component(logger, "config"))

	logger.Info().
		Str("version", version).
		Str("config", cfgManager.File()).
		Msg("starting")

	ctx := logging.WithContext(cmd.Context(), logger)
	return runDesktop(ctx, cfgManager, cfg)
}

func runDesktop(ctx context.Context, cfgManager *config.Manager, cfg config.Config) error {
	log := logging.FromContext(ctx)

	icons := catalog.Default()
	if cfg.CatalogFile != "" {
		loaded, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return err
		}
		icons = loaded
	}

	application := app.New(app.Options{
		Config:  cfg,
		Catalog: icons,
		Logger:  *log,
	})
	defer application.Cleanup()

	p := tea.NewProgram(
		application,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		// hover over the Start menu needs motion without a button held
		tea.WithMouseAllMotion(),
	)
	application.SetProgram(p)

	cfgManager.OnChange(func(c config.Config) {
		p.Send(app.ConfigChangedMsg{Config: c})
	})
	if err := cfgManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch disabled")
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
