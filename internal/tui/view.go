package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/budget"
	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if msg, ok := a.alerts.current(); ok {
		return a.viewAlert(msg)
	}

	if a.budgetForm != nil {
		return a.viewBudgetForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tally needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewAlert(msg string) string {
	t := theme.Active

	border := t.Orange
	if msg == budget.MsgBudgetExceeded {
		border = t.Red
	}

	hint := "enter to dismiss"
	if n := a.alerts.queued(); n > 0 {
		hint += fmt.Sprintf(" (%d more)", n)
	}

	card := components.ModalCard("◈ Alert", msg, hint, border)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Form", []struct{ key, desc string }{
			{"tab ↓", "Next field"},
			{"S-tab ↑", "Previous field"},
			{"enter", "Save expense"},
			{"esc", "Go to list"},
		}},
		{"List", []struct{ key, desc string }{
			{"j k", "Move selection"},
			{"g G", "First / Last"},
			{"d enter", "Delete expense"},
			{"a", "Add expense"},
		}},
		{"General", []struct{ key, desc string }{
			{"b", "Set budget"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()
	h := a.height

	sum := budget.Summarize(a.store.Snapshot())

	// 1. Header: title, remaining banner, metrics
	header := a.renderHeader(sum, cw)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), fmt.Sprintf("%d expenses", sum.Count))

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Form and list, side by side or stacked
	var content string
	if a.isCompactLayout() {
		formCard := a.renderFormCard(cw)
		listCard := a.renderListCard(cw, contentH-lipgloss.Height(formCard))
		content = lipgloss.JoinVertical(lipgloss.Left, formCard, listCard)
	} else {
		formW := cw * 2 / 5
		listW := cw - formW
		content = components.CardRow([]string{
			a.renderFormCard(formW),
			a.renderListCard(listW, contentH),
		})
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	output := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(w, lipgloss.Center, header),
		lipgloss.PlaceHorizontal(w, lipgloss.Center, content),
		statusBar,
	)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output)
}

func (a App) renderHeader(sum budget.Summary, cw int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	remainingStyle := lipgloss.NewStyle().Foreground(t.ForLevel(sum.Level)).Bold(true)

	title := titleStyle.Render("◈ tally") + "  " + remainingStyle.Render(cli.FormatRemaining(sum.Remaining))

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Budget", Value: cli.FormatMoney(sum.Budget)},
		{Label: "Spent", Value: cli.FormatMoney(sum.Spent)},
		{Label: "Remaining", Value: cli.FormatMoney(sum.Remaining), Color: t.ForLevel(sum.Level)},
		{Label: "Expenses", Value: cli.FormatNumber(int64(sum.Count))},
	}, cw)

	barW := cw - 14
	bar := components.BudgetBar("Used", sum.UsedRatio, 6, barW)

	return lipgloss.JoinVertical(lipgloss.Left, " "+title, metrics, " "+bar, "")
}

func (a App) renderFormCard(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(6)
	focusLabelStyle := labelStyle.Foreground(t.Accent).Bold(true)

	label := func(text string, focused bool) string {
		if focused {
			return focusLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}

	nameIn := a.nameIn
	costIn := a.costIn
	nameIn.Width = max(innerW-8, 4)
	costIn.Width = max(innerW-8, 4)

	button := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
	if a.focus == focusSave {
		button = button.Foreground(t.Background).Background(t.Accent).Bold(true)
	}

	var b strings.Builder
	b.WriteString(label("Name", a.focus == focusName) + nameIn.View())
	b.WriteString("\n")
	b.WriteString(label("Cost", a.focus == focusCost) + "$ " + costIn.View())
	b.WriteString("\n\n")
	b.WriteString(button.Render("[ Save ]"))
	if a.hint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Render(a.hint))
	}

	focused := a.focus == focusName || a.focus == focusCost || a.focus == focusSave
	return components.FocusedCard("Add expense", b.String(), outerW, focused)
}

func (a App) renderListCard(outerW, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)
	expenses := a.store.Expenses()
	focused := a.focus == focusList

	if len(expenses) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses yet.")
		return components.FocusedCard("Expenses", empty, outerW, focused)
	}

	// Border (2) + title (1)
	visible := h - 3
	if visible < 1 {
		visible = 1
	}
	cursor := min(a.cursor, len(expenses)-1)
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(expenses))

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)

	var b strings.Builder
	for i := start; i < end; i++ {
		e := expenses[i]
		// Marker (2) + row; long names are cut so the row fits on one line.
		full := cli.FormatExpenseRow(e.Name(), e.Cost())
		nameW := innerW - 2 - (lipgloss.Width(full) - lipgloss.Width(e.Name()))
		row := cli.FormatExpenseRow(truncStr(e.Name(), max(nameW, 4)), e.Cost())

		if focused && i == cursor {
			b.WriteString(markerStyle.Render("▸ "))
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString("  ")
			b.WriteString(rowStyle.Render(row))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	title := "Expenses"
	if end-start < len(expenses) {
		title = fmt.Sprintf("Expenses %d-%d of %d", start+1, end, len(expenses))
	}
	return components.FocusedCard(title, b.String(), outerW, focused)
}

func (a App) statusHints() string {
	switch a.focus {
	case focusName, focusCost:
		return "[tab]next  [enter]save  [esc]list  [^c]quit"
	case focusSave:
		return "[enter]save  [tab]next  [b]udget  [?]help  [q]uit"
	default:
		return "[j/k]move  [d]elete  [a]dd  [b]udget  [?]help  [q]uit"
	}
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
