// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/config"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagBudget  string
	flagWarn    string
	flagTheme   string
	flagDebug   bool
	flagLogFile string
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Track expenses against a budget",
	Long:  "Add expenses, remove them, and watch what is left of your budget.",
	RunE:  runTUI,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagBudget, "budget", "b", "", "Starting budget (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagWarn, "warn", "", "Over-budget warning: every or crossing")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "TUI log file (default $XDG_CACHE_HOME/tally/tally.log)")
}

// session is the configuration a command runs with once flags are applied.
type session struct {
	cfg    config.Config
	budget decimal.Decimal
	warn   budget.WarnMode
}

// loadSession layers flags over the environment, the config file and the
// defaults, in that order of precedence.
func loadSession() (session, error) {
	cfg, err := config.Load()
	if err != nil {
		return session{}, err
	}
	return applyFlags(cfg)
}

func applyFlags(cfg config.Config) (session, error) {
	if flagTheme != "" {
		cfg.Appearance.Theme = flagTheme
	}
	if flagWarn != "" {
		cfg.Alerts.Mode = flagWarn
	}
	if flagDebug {
		cfg.Log.Level = "debug"
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		return session{}, err
	}

	s := session{
		cfg:    cfg,
		budget: cfg.StartingBudget(),
		warn:   cfg.WarnMode(),
	}
	if flagBudget != "" {
		v, err := budget.ParseAmount(flagBudget)
		if err != nil {
			return session{}, fmt.Errorf("--budget: %w", err)
		}
		s.budget = v
	}
	return s, nil
}
