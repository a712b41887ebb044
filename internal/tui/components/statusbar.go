package components

import (
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key help on the left,
// right-aligned info (e.g. the overshoot policy) on the right.
func RenderStatusBar(width int, helpView, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + helpView
	if right != "" {
		right += " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		return style.Render(left)
	}

	return style.Render(left + lipgloss.NewStyle().Width(padding).Render("") + right)
}
