package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/budget"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1200", "$1200.00"},
		{"-200", "$-200.00"},
		{"0", "$0.00"},
		{"12.345", "$12.35"},
		{"0.1", "$0.10"},
		{"1000000", "$1000000.00"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, FormatMoney(decimal.RequireFromString(tc.in)), "input %s", tc.in)
	}
}

func TestFormatRemainingAndRow(t *testing.T) {
	require.Equal(t, "Remaining: $-100.00", FormatRemaining(decimal.NewFromInt(-100)))
	require.Equal(t, "Hotel  $600.00  [Delete]", FormatExpenseRow("Hotel", decimal.NewFromInt(600)))
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "0", FormatNumber(0))
	require.Equal(t, "999", FormatNumber(999))
	require.Equal(t, "1,000", FormatNumber(1000))
	require.Equal(t, "1,234,567", FormatNumber(1234567))
	require.Equal(t, "-12,345", FormatNumber(-12345))
}

func TestFormatPercent(t *testing.T) {
	require.Equal(t, "25.0%", FormatPercent(0.25))
	require.Equal(t, "110.0%", FormatPercent(1.1))
}

func TestRenderRemaining_KeepsText(t *testing.T) {
	over := budget.Summary{Remaining: decimal.NewFromInt(-200), Level: budget.OverBudget}
	within := budget.Summary{Remaining: decimal.NewFromInt(950), Level: budget.WithinBudget}

	require.Contains(t, RenderRemaining(over), "Remaining: $-200.00")
	require.Contains(t, RenderRemaining(within), "Remaining: $950.00")
}

func TestRenderLedger_AlignsUnicodeNames(t *testing.T) {
	rows := []LedgerRow{
		{Label: "1. Café", Amount: "$4.50"},
		{Label: "2. Groceries", Amount: "$50.00"},
	}
	out := RenderLedger(LedgerRow{Label: "Expense", Amount: "Cost"}, rows, LedgerRow{Label: "Spent", Amount: "$54.50"})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8) // top, header, rule, 2 rows, rule, total, bottom

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		require.Equal(t, width, lipgloss.Width(line), "line %d: %q", i, line)
	}
	require.Contains(t, lines[3], "1. Café")
	require.Contains(t, lines[6], "Spent")
	require.Contains(t, lines[6], "$54.50")
}

func TestRenderLedger_WidensForTotal(t *testing.T) {
	out := RenderLedger(LedgerRow{Label: "Expense", Amount: "Cost"}, nil, LedgerRow{Label: "Spent", Amount: "$1000000.00"})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[4]))
	require.Contains(t, lines[4], "$1000000.00")
}
