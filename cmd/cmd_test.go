package cmd

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/config"
)

type recorder struct{ messages []string }

func (r *recorder) Notify(m string) { r.messages = append(r.messages, m) }

func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() {
		flagBudget, flagWarn, flagTheme, flagLogFile = "", "", "", ""
		flagDebug = false
		flagCalcDelete = nil
	})
}

func names(s *budget.Store) []string {
	var out []string
	for _, e := range s.Expenses() {
		out = append(out, e.Name())
	}
	return out
}

func TestAddExpenses(t *testing.T) {
	store := budget.NewStore(budget.DefaultBudget)
	rec := &recorder{}

	err := addExpenses(budget.NewForm(store, rec), rec, []string{
		"Hotel=600",
		"Flight=abc",
		"Taxi=0",
		"a=b=12.5",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Hotel", "a=b"}, names(store))
	require.Equal(t, []string{budget.MsgInvalidCost, budget.MsgInvalidCost}, rec.messages)
}

func TestAddExpenses_Errors(t *testing.T) {
	store := budget.NewStore(budget.DefaultBudget)
	rec := &recorder{}
	form := budget.NewForm(store, rec)

	require.ErrorContains(t, addExpenses(form, rec, []string{"Hotel"}), "NAME=COST")
	require.ErrorContains(t, addExpenses(form, rec, []string{"=5"}), "required")
	require.ErrorContains(t, addExpenses(form, rec, []string{"Hotel="}), "required")
	require.Equal(t, 0, store.Len())
	require.Empty(t, rec.messages)
}

func TestRemoveByName_FirstMatch(t *testing.T) {
	store := budget.NewStore(budget.DefaultBudget)
	rec := &recorder{}
	require.NoError(t, addExpenses(budget.NewForm(store, rec), rec, []string{"Taxi=10", "Food=5", "Taxi=20"}))

	require.True(t, removeByName(store, "Taxi"))
	require.Equal(t, []string{"Food", "Taxi"}, names(store))
	require.Equal(t, "20", store.Expenses()[1].Cost().String())

	require.False(t, removeByName(store, "Rent"))
	require.Equal(t, 2, store.Len())
}

func TestPrintBalance(t *testing.T) {
	store := budget.NewStore(budget.DefaultBudget)
	rec := &recorder{}
	require.NoError(t, addExpenses(budget.NewForm(store, rec), rec, []string{"Hotel=600", "Flight=600"}))

	var buf bytes.Buffer
	printBalance(&buf, store)
	out := buf.String()

	require.Contains(t, out, "1. Hotel")
	require.Contains(t, out, "2. Flight")
	require.Contains(t, out, "$1200.00")
	require.Contains(t, out, "Remaining: $-200.00")

	buf.Reset()
	printBalance(&buf, budget.NewStore(budget.DefaultBudget))
	require.Contains(t, buf.String(), "No expenses.")
	require.Contains(t, buf.String(), "Remaining: $1000.00")
}

func TestApplyFlags(t *testing.T) {
	resetFlags(t)

	s, err := applyFlags(config.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, "1000.00", s.budget.StringFixed(2))
	require.Equal(t, budget.WarnEvery, s.warn)

	flagBudget = "$250.5"
	flagWarn = "crossing"
	flagTheme = "terminal"
	flagDebug = true
	s, err = applyFlags(config.DefaultConfig())
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("250.5").Equal(s.budget))
	require.Equal(t, budget.WarnOnCrossing, s.warn)
	require.Equal(t, "terminal", s.cfg.Appearance.Theme)
	require.Equal(t, "debug", s.cfg.Log.Level)

	flagBudget = "lots"
	_, err = applyFlags(config.DefaultConfig())
	require.ErrorContains(t, err, "--budget")

	flagBudget = ""
	flagWarn = "sometimes"
	_, err = applyFlags(config.DefaultConfig())
	require.ErrorContains(t, err, "alerts.mode")
}

func TestCalcCommand(t *testing.T) {
	resetFlags(t)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"calc", "-b", "1000", "Hotel=600", "Flight=600", "Book=.", "--delete", "Flight"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, stdout.String(), "1. Hotel")
	require.NotContains(t, stdout.String(), "Flight")
	require.Contains(t, stdout.String(), "Remaining: $400.00")

	require.Contains(t, stderr.String(), budget.MsgBudgetExceeded)
	require.Contains(t, stderr.String(), budget.MsgInvalidCost)
}

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, applySetup(&cfg, setupValues{budget: "2500", mode: "crossing", theme: "tokyo-night"}))
	require.Equal(t, config.Amount("2500"), cfg.General.Budget)
	require.Equal(t, "crossing", cfg.Alerts.Mode)
	require.Equal(t, "tokyo-night", cfg.Appearance.Theme)

	require.NoError(t, applySetup(&cfg, setupValues{budget: "$19.99", mode: "every", theme: "nope"}))
	require.Equal(t, config.Amount("19.99"), cfg.General.Budget)
	require.Equal(t, "flexoki-dark", cfg.Appearance.Theme)

	require.Error(t, applySetup(&cfg, setupValues{budget: "x", mode: "every"}))
	require.NotNil(t, newSetupForm(&setupValues{}))
}
