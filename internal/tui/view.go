package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
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
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	msg := lipgloss.NewStyle().Foreground(t.TextMuted).
		Render(fmt.Sprintf("Terminal too narrow (%d cols, need %d)", a.width, minTerminalWidth))
	return lipgloss.Place(a.width, max(a.height, 3), lipgloss.Center, lipgloss.Center, msg)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()
	totals := a.tracker.State().Totals

	titleStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center)

	sections := []string{
		titleStyle.Render("Your Expenses"),
		components.TileRow(a.tiles(totals), cw),
		" " + components.UsageBar("Used", totals.UsedFraction(), cw-2),
	}

	if a.editingBudget {
		sections = append(sections, components.ContentCard("Edit Budget", a.budgetIn.View(), cw, a.focus == focusBudget))
	}

	sections = append(sections,
		components.ContentCard(a.listTitle(), a.list.View(), cw, a.focus == focusList),
		components.ContentCard("Add Expense", a.nameIn.View()+"\n"+a.costIn.View(), cw,
			a.focus == focusName || a.focus == focusCost),
	)

	if a.notice != nil {
		sections = append(sections, a.renderNotice(*a.notice, cw))
	}

	sections = append(sections, components.RenderStatusBar(cw, a.helpView(), "overshoot: "+a.tracker.Policy().String()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) tiles(bs model.BudgetState) []components.Tile {
	t := theme.Active

	budget := components.Tile{Label: "Budget", Value: cli.FormatMoney(bs.Budget)}
	if bs.Negative() {
		budget.Bg = t.Red
	}
	remaining := components.Tile{Label: "Remaining", Value: cli.FormatMoney(bs.Remaining), Fg: t.Green}
	if bs.Overspent {
		remaining.Fg = t.Orange
	}
	spent := components.Tile{Label: "Spent", Value: cli.FormatMoney(bs.Spent), Fg: t.Red}

	return []components.Tile{budget, remaining, spent}
}

func (a App) listTitle() string {
	n := len(a.tracker.State().Expenses)
	if n == 0 {
		return "Expenses List"
	}
	return fmt.Sprintf("Expenses List (%d)", n)
}

// renderRows renders one line per expense: name, (date), cost.
func (a App) renderRows() string {
	t := theme.Active
	list := a.tracker.State().Expenses
	if len(list) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses added")
	}

	w := a.list.Width
	if w <= 0 {
		w = maxContentWidth - 4
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	costStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selected := lipgloss.NewStyle().Background(t.SurfaceBright).Bold(true)

	rows := make([]string, len(list))
	for i, e := range list {
		marker := "  "
		if i == a.cursor {
			marker = "▸ "
		}
		left := marker + nameStyle.Render(e.Name) + " " + dateStyle.Render("("+e.Date+")")
		right := costStyle.Render(cli.FormatMoney(e.Cost))
		gap := w - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
		row := left + strings.Repeat(" ", gap) + right
		if i == a.cursor && a.focus == focusList {
			row = selected.Render(row)
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

func (a App) renderNotice(n model.Notice, cw int) string {
	t := theme.Active
	color := t.TextMuted
	switch n.Level {
	case model.NoticeError:
		color = t.Red
	case model.NoticeWarn:
		color = t.Orange
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Bold(true).
		Width(cw-2).
		Padding(0, 1)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Bold(false).Render("  (press any key)")
	return style.Render(n.Message + hint)
}

func (a App) helpView() string {
	var km help.KeyMap = listHelp{a.keys}
	if a.focus != focusList {
		km = formHelp{a.keys}
	}
	return a.help.View(km)
}
