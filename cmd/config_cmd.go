package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	cfg := s.cfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Budget:     %s%s\n", cli.FormatMoney(s.budget), source("TALLY_BUDGET", flagBudget))
	fmt.Println()

	fmt.Println("  [Alerts]")
	fmt.Printf("    Mode:       %s%s\n", s.warn, source("TALLY_WARN_MODE", flagWarn))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:      %s%s\n", cfg.Appearance.Theme, source("TALLY_THEME", flagTheme))
	if !theme.Known(cfg.Appearance.Theme) {
		fmt.Printf("                unknown theme, using %s (available: %s)\n",
			theme.ByName(cfg.Appearance.Theme).Name, strings.Join(theme.Names(), ", "))
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:      %s%s\n", cfg.Log.Level, source("TALLY_LOG_LEVEL", ""))
	if cfg.Log.File != "" {
		fmt.Printf("    File:       %s\n", cfg.Log.File)
	}
	fmt.Println()

	fmt.Println("  Run `tally setup` to reconfigure.")
	return nil
}

// source annotates a value that did not come from the config file.
func source(envKey, flagValue string) string {
	if flagValue != "" {
		return "  (flag)"
	}
	if _, ok := os.LookupEnv(envKey); ok {
		return "  (env " + envKey + ")"
	}
	return ""
}
