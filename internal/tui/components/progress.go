package components

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPct returns green/yellow/orange/red based on how much of the
// budget is used.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct > 1:
		return string(t.Red)
	case pct >= 0.9:
		return string(t.Orange)
	case pct >= 0.7:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// BudgetBar renders a labeled bar showing the share of the budget spent.
// pct may exceed 1 when over budget; the bar clamps but the label does not.
func BudgetBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	fill := pct
	if fill > 1 {
		fill = 1
	}
	if barWidth < 4 {
		barWidth = 4
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(pct))).Bold(true)

	out := ""
	if label != "" {
		out = labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " "
	}
	return out + bar.ViewAs(fill) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
