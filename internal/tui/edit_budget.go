package tui

import (
	"errors"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func newBudgetForm(current decimal.Decimal, value *string) *huh.Form {
	*value = current.StringFixed(2)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Budget").
				Description("Total available to spend. Currently " + cli.FormatMoney(current) + ".").
				Prompt("$ ").
				Value(value).
				Validate(validateBudget),
		),
	).WithShowHelp(false)
}

func validateBudget(s string) error {
	if _, err := budget.ParseAmount(s); err != nil {
		return errors.New("enter an amount such as 1500 or 1500.00")
	}
	return nil
}

func (a App) openBudgetForm() (tea.Model, tea.Cmd) {
	a.budgetForm = newBudgetForm(a.store.Budget(), a.budgetVal).
		WithWidth(a.budgetFormWidth())
	return a, a.budgetForm.Init()
}

func (a App) updateBudgetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.budgetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.budgetForm = f
	}

	switch a.budgetForm.State {
	case huh.StateCompleted:
		a.applyBudget(*a.budgetVal)
		a.budgetForm = nil
		return a, nil
	case huh.StateAborted:
		a.budgetForm = nil
		return a, nil
	}

	return a, cmd
}

// applyBudget stores the edited budget. Unparseable input is ignored;
// the form validates before it can complete.
func (a App) applyBudget(s string) {
	v, err := budget.ParseAmount(s)
	if err != nil {
		a.logger.Warn("budget edit ignored", "input", s, "err", err)
		return
	}
	a.store.SetBudget(v)
}

func (a App) budgetFormWidth() int {
	w := a.width - 12
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a App) viewBudgetForm() string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	body := a.budgetForm.View() + "\n" + hintStyle.Render("enter to save · esc to cancel")
	card := components.FocusedCard("Set budget", body, a.budgetFormWidth()+6, true)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}
