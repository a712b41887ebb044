// Package tui provides the interactive Bubble Tea expense tracker for tally.
package tui

import (
	"fmt"

	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tracker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusList focus = iota
	focusName
	focusCost
	focusBudget
)

const (
	minTerminalWidth = 40
	maxContentWidth  = 100
	listHeight       = 8 // visible expense rows
	costCharLimit    = 18
)

// App is the root Bubble Tea model. It is the view over a tracker: every
// user action becomes a tracker call, and the view re-renders from the
// tracker's state.
type App struct {
	tracker *tracker.Tracker

	// UI state
	width    int
	height   int
	focus    focus
	cursor   int
	showHelp bool

	// Form buffers
	editingBudget bool
	budgetIn      textinput.Model
	nameIn        textinput.Model
	costIn        textinput.Model

	list viewport.Model
	keys keyMap
	help help.Model

	// Dismissible notice from the last transition or a persistence failure.
	notice *model.Notice
}

// NewApp creates a new TUI app model over tr. report, if non-nil, is shown
// as the first notice.
func NewApp(tr *tracker.Tracker, report *store.LoadReport) App {
	a := App{
		tracker:  tr,
		budgetIn: newInput("Enter new budget", 0),
		nameIn:   newInput("Name:", 0),
		costIn:   newInput("Cost:", costCharLimit),
		list:     viewport.New(maxContentWidth, listHeight),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	if report != nil {
		n := report.Notice()
		a.notice = &n
	}
	a.syncList()
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Width = 40
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(tea.EnableMouseCellMotion, textinput.Blink)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.MouseMsg:
		if a.notice != nil || a.focus != focusList {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// A notice behaves like an alert: the next key dismisses it.
		if a.notice != nil {
			a.notice = nil
			return a, nil
		}

		switch a.focus {
		case focusName, focusCost:
			return a.updateAddForm(msg)
		case focusBudget:
			return a.updateBudgetForm(msg)
		default:
			return a.updateList(msg)
		}
	}

	// Forward everything else (cursor blink) to the focused input.
	return a.forwardToInput(msg)
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Delete):
		a.deleteSelected()
	case key.Matches(msg, a.keys.EditBudget):
		a.editingBudget = true
		return a, a.setFocus(focusBudget)
	case key.Matches(msg, a.keys.Add), key.Matches(msg, a.keys.NextField):
		return a, a.setFocus(focusName)
	}
	return a, nil
}

func (a App) updateAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		return a, a.setFocus(focusList)
	case key.Matches(msg, a.keys.PrevField):
		if a.focus == focusCost {
			return a, a.setFocus(focusName)
		}
		return a, a.setFocus(focusList)
	case key.Matches(msg, a.keys.NextField):
		if a.focus == focusName {
			return a, a.setFocus(focusCost)
		}
		return a, a.setFocus(focusList)
	case key.Matches(msg, a.keys.Submit):
		if a.focus == focusName && a.costIn.Value() == "" {
			return a, a.setFocus(focusCost)
		}
		return a.submitExpense()
	}

	if a.focus == focusName {
		var cmd tea.Cmd
		a.nameIn, cmd = a.nameIn.Update(msg)
		return a, cmd
	}

	prev := a.costIn.Value()
	var cmd tea.Cmd
	a.costIn, cmd = a.costIn.Update(msg)
	if next := a.costIn.Value(); ledger.FilterCost(prev, next) != next {
		a.costIn.SetValue(prev)
	}
	return a, cmd
}

func (a App) updateBudgetForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.editingBudget = false
		a.budgetIn.Reset()
		return a, a.setFocus(focusList)
	case key.Matches(msg, a.keys.Submit):
		return a.submitBudget()
	}

	var cmd tea.Cmd
	a.budgetIn, cmd = a.budgetIn.Update(msg)
	return a, cmd
}

func (a App) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focus {
	case focusName:
		a.nameIn, cmd = a.nameIn.Update(msg)
	case focusCost:
		a.costIn, cmd = a.costIn.Update(msg)
	case focusBudget:
		a.budgetIn, cmd = a.budgetIn.Update(msg)
	}
	return a, cmd
}

func (a App) submitExpense() (tea.Model, tea.Cmd) {
	res, err := a.tracker.Add(a.nameIn.Value(), a.costIn.Value())
	a.absorb(res, err)
	if !res.Ok() {
		// Incomplete form: stay put.
		return a, nil
	}
	a.nameIn.Reset()
	a.costIn.Reset()
	a.cursor = len(a.tracker.State().Expenses) - 1
	return a, a.setFocus(focusName)
}

func (a App) submitBudget() (tea.Model, tea.Cmd) {
	res, err := a.tracker.EditBudget(a.budgetIn.Value())
	a.absorb(res, err)
	if !res.Ok() {
		return a, nil
	}
	a.editingBudget = false
	a.budgetIn.Reset()
	return a, a.setFocus(focusList)
}

func (a *App) deleteSelected() {
	if len(a.tracker.State().Expenses) == 0 {
		return
	}
	res, err := a.tracker.Delete(a.cursor)
	a.absorb(res, err)
	if n := len(a.tracker.State().Expenses); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.syncList()
}

// absorb turns a transition result into the notice shown to the user.
// Persistence failures take precedence over validation notices.
func (a *App) absorb(res ledger.Result, err error) {
	if err != nil {
		a.notice = &model.Notice{Level: model.NoticeError, Message: fmt.Sprintf("Save failed: %v", err)}
		return
	}
	if res.Notice != nil {
		n := *res.Notice
		a.notice = &n
	}
}

// setFocus moves keyboard focus, re-renders the list so the selection
// highlight follows focus, and returns the blink command for the newly
// focused input, if any.
func (a *App) setFocus(f focus) tea.Cmd {
	a.focus = f
	a.nameIn.Blur()
	a.costIn.Blur()
	a.budgetIn.Blur()
	a.syncList()

	switch f {
	case focusName:
		return a.nameIn.Focus()
	case focusCost:
		return a.costIn.Focus()
	case focusBudget:
		return a.budgetIn.Focus()
	}
	return nil
}

func (a *App) moveCursor(delta int) {
	n := len(a.tracker.State().Expenses)
	if n == 0 {
		return
	}
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	a.syncList()
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a *App) resize() {
	cw := a.contentWidth()
	a.list.Width = cw - 4
	a.help.Width = cw
	inputW := cw - 8
	if inputW < 10 {
		inputW = 10
	}
	a.nameIn.Width = inputW
	a.costIn.Width = inputW
	a.budgetIn.Width = inputW
	a.syncList()
}

// syncList re-renders the expense rows into the viewport and scrolls so
// the cursor row is visible.
func (a *App) syncList() {
	a.list.SetContent(a.renderRows())

	h := a.list.Height
	if h <= 0 {
		return
	}
	switch {
	case a.cursor < a.list.YOffset:
		a.list.SetYOffset(a.cursor)
	case a.cursor >= a.list.YOffset+h:
		a.list.SetYOffset(a.cursor - h + 1)
	}
}
