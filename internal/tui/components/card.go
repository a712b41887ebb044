// Package components provides reusable TUI widgets for the tally dashboard.
package components

import (
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Tile is one figure in the totals row.
type Tile struct {
	Label string
	Value string
	Bg    lipgloss.Color // empty means the neutral surface
	Fg    lipgloss.Color // empty means primary text
}

// RenderTile renders a single bordered, filled tile.
// outerWidth is the total rendered width including border.
func RenderTile(tile Tile, outerWidth int) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	bg := tile.Bg
	if bg == "" {
		bg = t.SurfaceBright
	}
	fg := tile.Fg
	if fg == "" {
		fg = t.TextPrimary
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(bg).
		Foreground(fg).
		Bold(true).
		Width(contentWidth).
		Align(lipgloss.Center)

	return style.Render(tile.Label + ": " + tile.Value)
}

// TileRow renders tiles side by side, summing to exactly totalWidth.
func TileRow(tiles []Tile, totalWidth int) string {
	if len(tiles) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(tiles))
	rendered := make([]string, len(tiles))
	for i, tile := range tiles {
		rendered[i] = RenderTile(tile, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int, focused bool) string {
	t := theme.Active

	contentWidth := outerWidth - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	border := t.Border
	if focused {
		border = t.BorderAccent
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(contentWidth).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Bold(true)
	if focused {
		titleStyle = titleStyle.Foreground(t.Accent)
	}

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}
