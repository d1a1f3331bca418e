package components

import (
	"strings"

	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// an optional status string on the right.
func RenderStatusBar(width int, hints, status string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := ""
	if status != "" {
		right = status + " "
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Hints lose to status when the terminal is tight.
		left = truncate(left, width-lipgloss.Width(right)-1)
		padding = width - lipgloss.Width(left) - lipgloss.Width(right)
		if padding < 0 {
			padding = 0
		}
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
