package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set the default budget, warning mode and theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues backs the setup form fields.
type setupValues struct {
	budget string
	mode   string
	theme  string
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	vals := setupValues{
		budget: cfg.StartingBudget().StringFixed(2),
		mode:   cfg.WarnMode().String(),
		theme:  theme.ByName(cfg.Appearance.Theme).Name,
	}

	if err := newSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup: %w", err)
	}

	if err := applySetup(&cfg, vals); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `tally setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func newSetupForm(vals *setupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tally").
				Description("Defaults for new sessions. Expenses themselves are never saved."),
			huh.NewInput().
				Title("Starting budget").
				Prompt("$ ").
				Value(&vals.budget).
				Validate(func(s string) error {
					_, err := budget.ParseAmount(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Over-budget warning").
				Options(
					huh.NewOption("After every change while over budget", budget.WarnEvery.String()),
					huh.NewOption("Only when first going over", budget.WarnOnCrossing.String()),
				).
				Value(&vals.mode),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.theme),
		),
	)
}

// applySetup copies the wizard answers into cfg.
func applySetup(cfg *config.Config, vals setupValues) error {
	v, err := budget.ParseAmount(vals.budget)
	if err != nil {
		return err
	}
	if _, err := budget.ParseWarnMode(vals.mode); err != nil {
		return err
	}

	cfg.General.Budget = config.Amount(v.String())
	cfg.Alerts.Mode = vals.mode
	cfg.Appearance.Theme = theme.ByName(vals.theme).Name
	return nil
}
