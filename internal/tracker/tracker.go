// Package tracker ties the ledger reducer to the persistent store: every
// action is reduced, and whatever the transition changed is written back.
package tracker

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
)

// Persister is the write side of the store used after each transition.
type Persister interface {
	SaveExpenses(model.ExpenseList) error
	SaveBudget(int64) error
}

// Tracker owns the current ledger state for one session.
type Tracker struct {
	reducer ledger.Reducer
	state   ledger.State
	sink    Persister
	now     func() time.Time
}

// LoadResult is what Open found in the store.
type LoadResult struct {
	Report      *store.LoadReport // non-nil when stored expenses needed repair
	BudgetFound bool              // false when the default budget was used
}

// Open loads persisted expenses and budget from st and runs the initial
// recompute. A budget missing from the store falls back to defaultBudget.
func Open(st *store.Store, policy ledger.Policy, defaultBudget int64) (*Tracker, *LoadResult, error) {
	list, report, err := st.LoadExpenses()
	if err != nil {
		return nil, nil, fmt.Errorf("loading expenses: %w", err)
	}
	budget, found, err := st.LoadBudget()
	if err != nil {
		return nil, nil, fmt.Errorf("loading budget: %w", err)
	}
	if !found {
		budget = defaultBudget
	}
	if report != nil {
		log.Printf("tracker: %s", report)
	}

	t := New(st, policy)
	t.state, _ = t.reducer.Reduce(ledger.State{}, ledger.Load{Expenses: list, Budget: budget})

	// Keep the raw value, then rewrite repaired data so the next load is clean.
	if report != nil {
		if err := st.BackupExpenses(); err != nil {
			return nil, nil, err
		}
		if err := st.SaveExpenses(list); err != nil {
			return nil, nil, err
		}
	}

	return t, &LoadResult{Report: report, BudgetFound: found}, nil
}

// New returns a tracker with an empty state writing to sink.
func New(sink Persister, policy ledger.Policy) *Tracker {
	return &Tracker{
		reducer: ledger.Reducer{Policy: policy},
		sink:    sink,
		now:     time.Now,
	}
}

// SetClock overrides the time source used to date new expenses.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// State returns the current state.
func (t *Tracker) State() ledger.State {
	return t.state
}

// Policy returns the overshoot policy in effect.
func (t *Tracker) Policy() ledger.Policy {
	return t.reducer.Policy
}

// Dispatch reduces a and persists whatever changed. The returned error is a
// persistence failure; validation failures are reported in the Result.
// When persistence fails the in-memory state is still advanced so the view
// reflects what the user did.
func (t *Tracker) Dispatch(a ledger.Action) (ledger.Result, error) {
	next, res := t.reducer.Reduce(t.state, a)
	if !res.Ok() {
		log.Printf("tracker: %T rejected: %v", a, res.Err)
		return res, nil
	}
	t.state = next

	var errs []error
	if res.ExpensesChanged {
		if err := t.sink.SaveExpenses(next.Expenses); err != nil {
			errs = append(errs, fmt.Errorf("saving expenses: %w", err))
		}
	}
	if res.BudgetChanged {
		if err := t.sink.SaveBudget(next.Totals.Budget); err != nil {
			errs = append(errs, fmt.Errorf("saving budget: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		log.Printf("tracker: %T persist failed: %v", a, err)
		return res, err
	}
	log.Printf("tracker: %T applied: budget=%d spent=%d remaining=%d n=%d",
		a, next.Totals.Budget, next.Totals.Spent, next.Totals.Remaining, len(next.Expenses))
	return res, nil
}

// Add records an expense dated now.
func (t *Tracker) Add(name, cost string) (ledger.Result, error) {
	return t.Dispatch(ledger.AddExpense{Name: name, Cost: cost, Date: model.FormatDate(t.now())})
}

// Delete removes the expense at index.
func (t *Tracker) Delete(index int) (ledger.Result, error) {
	return t.Dispatch(ledger.DeleteExpense{Index: index})
}

// EditBudget sets the budget from raw input.
func (t *Tracker) EditBudget(input string) (ledger.Result, error) {
	return t.Dispatch(ledger.EditBudget{Input: input})
}
