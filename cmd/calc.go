package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/logging"

	"github.com/spf13/cobra"
)

var flagCalcDelete []string

var calcCmd = &cobra.Command{
	Use:   "calc [NAME=COST ...]",
	Short: "Add expenses from arguments and print the balance",
	Example: `  tally calc Hotel=600 Flight=600
  tally calc -b 500 Rent=450 Food=80 --delete Food`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringArrayVar(&flagCalcDelete, "delete", nil, "Remove the first expense with this name (repeatable)")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, s.cfg.Log.Level)

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	alerts := budget.NotifierFunc(func(msg string) {
		fmt.Fprintln(stderr, "  "+cli.RenderAlert(msg))
	})

	store := budget.NewStore(s.budget, budget.WithLogger(logger))
	stop := budget.Watch(store, alerts, s.warn)
	defer stop()

	if err := addExpenses(budget.NewForm(store, alerts), alerts, args); err != nil {
		return err
	}

	for _, name := range flagCalcDelete {
		if !removeByName(store, name) {
			logger.Warn("nothing to delete", "name", name)
		}
	}

	printBalance(stdout, store)
	return nil
}

// addExpenses submits each NAME=COST argument through the form, the same
// path the interactive screen uses. Invalid costs raise an alert and are
// skipped.
func addExpenses(form *budget.Form, alerts budget.Notifier, args []string) error {
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return fmt.Errorf("expected NAME=COST, got %q", arg)
		}
		name, cost := arg[:i], arg[i+1:]

		form.Reset()
		form.SetName(name)
		if !form.SetCost(cost) {
			// Not something the cost field would accept at all.
			alerts.Notify(budget.MsgInvalidCost)
			continue
		}

		_, err := form.Submit()
		switch {
		case errors.Is(err, budget.ErrRequiredField):
			return fmt.Errorf("%q: name and cost are both required", arg)
		case errors.Is(err, budget.ErrInvalidCost):
			continue
		case err != nil:
			return err
		}
	}
	form.Reset()
	return nil
}

// removeByName deletes the first expense named name, in list order.
func removeByName(store *budget.Store, name string) bool {
	for _, e := range store.Expenses() {
		if e.Name() == name {
			return store.Remove(e.ID())
		}
	}
	return false
}

func printBalance(w io.Writer, store *budget.Store) {
	sum := budget.Summarize(store.Snapshot())

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle("TALLY  Budget "+cli.FormatMoney(sum.Budget)))
	fmt.Fprintln(w)

	if sum.Count == 0 {
		fmt.Fprintln(w, "  No expenses.")
	} else {
		rows := make([]cli.LedgerRow, 0, sum.Count)
		for i, e := range store.Expenses() {
			rows = append(rows, cli.LedgerRow{Label: strconv.Itoa(i+1) + ". " + e.Name(), Amount: cli.FormatMoney(e.Cost())})
		}
		fmt.Fprint(w, cli.RenderLedger(
			cli.LedgerRow{Label: "Expense", Amount: "Cost"},
			rows,
			cli.LedgerRow{Label: "Spent", Amount: cli.FormatMoney(sum.Spent)},
		))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+cli.RenderRemaining(sum))
	if sum.Budget.IsPositive() {
		fmt.Fprintln(w, "  "+cli.RenderHint(cli.FormatPercent(sum.UsedRatio)+" of budget used"))
	}
	fmt.Fprintln(w)
}
