package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/budget"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	withinStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// RenderRemaining renders the "Remaining: $X.XX" line, green while within
// budget and red once spending is over it.
func RenderRemaining(sum budget.Summary) string {
	style := withinStyle
	if sum.Level == budget.OverBudget {
		style = overStyle
	}
	return style.Render(FormatRemaining(sum.Remaining))
}

// RenderAlert renders a user notification for plain terminal output.
func RenderAlert(message string) string {
	return warnStyle.Render("! " + message)
}

// RenderHint renders secondary text.
func RenderHint(s string) string {
	return mutedStyle.Render(s)
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// LedgerRow is one line of a ledger table: a label and a formatted amount.
type LedgerRow struct {
	Label  string
	Amount string
}

// RenderLedger renders a bordered two-column table: the header row, the
// item rows, then total under a rule. Amounts are right-aligned.
func RenderLedger(header LedgerRow, rows []LedgerRow, total LedgerRow) string {
	// fmt pads by rune count, so measure the same way.
	labelW, amountW := 0, 0
	measure := func(r LedgerRow) {
		labelW = max(labelW, utf8.RuneCountInString(r.Label))
		amountW = max(amountW, utf8.RuneCountInString(r.Amount))
	}
	measure(header)
	measure(total)
	for _, r := range rows {
		measure(r)
	}

	rule := func(left, mid, right string) string {
		return dimStyle.Render(left+strings.Repeat("─", labelW+2)+mid+strings.Repeat("─", amountW+2)+right) + "\n"
	}
	line := func(r LedgerRow, style lipgloss.Style) string {
		bar := dimStyle.Render("│")
		return bar + style.Render(fmt.Sprintf(" %-*s ", labelW, r.Label)) +
			bar + style.Render(fmt.Sprintf(" %*s ", amountW, r.Amount)) + bar + "\n"
	}

	var b strings.Builder
	b.WriteString(rule("╭", "┬", "╮"))
	b.WriteString(line(header, headerStyle))
	b.WriteString(rule("├", "┼", "┤"))
	for _, r := range rows {
		b.WriteString(line(r, valueStyle))
	}
	b.WriteString(rule("├", "┼", "┤"))
	b.WriteString(line(total, valueStyle))
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}
