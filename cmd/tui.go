package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/logging"
	"github.com/theirongolddev/tally/internal/tui"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget screen",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	logger, closer, err := tuiLogger(s.cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := budget.NewStore(s.budget, budget.WithLogger(logger))
	app := tui.NewApp(tui.Options{
		Store:    store,
		WarnMode: s.warn,
		Logger:   logger,
	})
	defer app.Close()

	logger.Info("starting tui", "budget", s.budget.StringFixed(2), "warn", s.warn, "theme", theme.Active.Name)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// tuiLogger returns a file logger when --debug is set. The TUI owns the
// terminal, so without it logs are dropped.
func tuiLogger(cfg config.Config) (*log.Logger, io.Closer, error) {
	if !flagDebug {
		return logging.Discard(), io.NopCloser(nil), nil
	}

	path := cfg.Log.File
	if path == "" {
		path = filepath.Join(config.CacheDir(), "tally.log")
	}
	return logging.OpenFile(path, cfg.Log.Level)
}
