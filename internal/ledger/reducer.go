package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tally/internal/model"
)

// State is everything the tracker knows at a point in time.
type State struct {
	Totals   model.BudgetState
	Expenses model.ExpenseList
}

// Action is a user or lifecycle event fed to Reduce.
type Action interface {
	isAction()
}

// Load replaces the expense list with persisted data at startup.
type Load struct {
	Expenses model.ExpenseList
	Budget   int64
}

// AddExpense records a new expense from the raw form buffers.
type AddExpense struct {
	Name string
	Cost string
	Date string
}

// DeleteExpense removes the expense at Index.
type DeleteExpense struct {
	Index int
}

// EditBudget sets a new budget from the raw form buffer.
type EditBudget struct {
	Input string
}

func (Load) isAction()          {}
func (AddExpense) isAction()    {}
func (DeleteExpense) isAction() {}
func (EditBudget) isAction()    {}

// Result describes the side effects a transition asks the caller to perform.
type Result struct {
	Err             error
	Notice          *model.Notice
	ExpensesChanged bool // expense list must be written back to the store
	BudgetChanged   bool // budget must be written back to the store
}

// Ok reports whether the action was applied.
func (r Result) Ok() bool {
	return r.Err == nil
}

// Reducer applies actions under a fixed overshoot policy.
type Reducer struct {
	Policy Policy
}

// Reduce returns the state that results from applying a to s.
// s is never modified; on failure the returned state equals s.
func (r Reducer) Reduce(s State, a Action) (State, Result) {
	switch a := a.(type) {
	case Load:
		return r.load(a), Result{}
	case AddExpense:
		return r.addExpense(s, a)
	case DeleteExpense:
		return r.deleteExpense(s, a)
	case EditBudget:
		return r.editBudget(s, a)
	}
	return s, Result{Err: fmt.Errorf("%w: %T", ErrUnknownAction, a)}
}

func (r Reducer) load(a Load) State {
	list := make(model.ExpenseList, len(a.Expenses))
	copy(list, a.Expenses)
	return State{Totals: r.recompute(list, a.Budget), Expenses: list}
}

// recompute derives spent and remaining from scratch.
func (r Reducer) recompute(list model.ExpenseList, budget int64) model.BudgetState {
	spent, remaining := Calculate(list, budget)
	bs := model.BudgetState{Budget: budget, Spent: spent, Remaining: remaining}
	if r.Policy == PolicyCeiling {
		bs.Overspent = spent > budget
	}
	return bs
}

func (r Reducer) addExpense(s State, a AddExpense) (State, Result) {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return s, Result{Err: ErrEmptyName}
	}
	if a.Cost == "" {
		return s, Result{Err: ErrEmptyCost}
	}
	if !digitsOnly.MatchString(a.Cost) {
		return s, Result{Err: ErrInvalidCost}
	}
	cost, err := strconv.ParseInt(a.Cost, 10, 64)
	if err != nil {
		return s, Result{Err: fmt.Errorf("%w: %v", ErrInvalidCost, err)}
	}

	next := s
	res := Result{ExpensesChanged: true}
	totals := s.Totals
	newSpent, ok := addAmounts(totals.Spent, cost)
	if !ok {
		return s, overflow(cost)
	}

	if newSpent > totals.Budget {
		budget, ok := subAmounts(totals.Budget, newSpent)
		if !ok {
			return s, overflow(cost)
		}
		switch r.Policy {
		case PolicyCeiling:
			totals.Remaining = budget
			totals.Overspent = true
		default:
			totals.Remaining = 0
			totals.Budget = budget
			res.BudgetChanged = true
		}
		res.Notice = &model.Notice{Level: model.NoticeWarn, Message: model.MsgNegativeBudget}
	} else {
		totals.Remaining = totals.Budget - newSpent
	}
	totals.Spent = newSpent

	next.Totals = totals
	next.Expenses = s.Expenses.With(model.Expense{Name: name, Cost: cost, Date: a.Date})
	return next, res
}

func overflow(cost int64) Result {
	return Result{
		Err:    fmt.Errorf("%w: %d", ErrOverflow, cost),
		Notice: &model.Notice{Level: model.NoticeError, Message: model.MsgAmountTooLarge},
	}
}

func (r Reducer) deleteExpense(s State, a DeleteExpense) (State, Result) {
	if a.Index < 0 || a.Index >= len(s.Expenses) {
		err := fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, a.Index, len(s.Expenses))
		return s, Result{
			Err:    err,
			Notice: &model.Notice{Level: model.NoticeError, Message: err.Error()},
		}
	}
	list := s.Expenses.Without(a.Index)
	return State{Totals: r.recompute(list, s.Totals.Budget), Expenses: list},
		Result{ExpensesChanged: true}
}

func (r Reducer) editBudget(s State, a EditBudget) (State, Result) {
	amount, err := strconv.ParseInt(strings.TrimSpace(a.Input), 10, 64)
	if err != nil || amount < s.Totals.Spent {
		if err == nil {
			err = errors.New("below spent")
		}
		return s, Result{
			Err:    fmt.Errorf("%w: %v", ErrInvalidBudget, err),
			Notice: &model.Notice{Level: model.NoticeError, Message: model.MsgInvalidBudget},
		}
	}
	next := s
	next.Totals.Budget = amount
	next.Totals.Remaining = amount - s.Totals.Spent
	next.Totals.Overspent = false
	return next, Result{BudgetChanged: true}
}
