package ledger

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/tally/internal/model"
)

func loaded(t *testing.T, r Reducer, budget int64, list ...model.Expense) State {
	t.Helper()
	s, res := r.Reduce(State{}, Load{Expenses: list, Budget: budget})
	if !res.Ok() {
		t.Fatalf("Load: %v", res.Err)
	}
	return s
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		list          model.ExpenseList
		budget        int64
		wantSpent     int64
		wantRemaining int64
	}{
		{"empty", nil, 2000, 0, 2000},
		{"under", model.ExpenseList{{Name: "a", Cost: 300}, {Name: "b", Cost: 200}}, 2000, 500, 1500},
		{"over not clamped", model.ExpenseList{{Name: "a", Cost: 2500}}, 2000, 2500, -500},
		{"negative budget", model.ExpenseList{{Name: "Car", Cost: 700}}, -200, 700, -900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spent, remaining := Calculate(tt.list, tt.budget)
			if spent != tt.wantSpent || remaining != tt.wantRemaining {
				t.Fatalf("Calculate = (%d, %d), want (%d, %d)", spent, remaining, tt.wantSpent, tt.wantRemaining)
			}
		})
	}
}

func TestAddExpenseWithinBudget(t *testing.T) {
	r := Reducer{}
	s := loaded(t, r, 2000)

	s, res := r.Reduce(s, AddExpense{Name: "Rent", Cost: "1500", Date: "3/4/2025"})
	if !res.Ok() {
		t.Fatalf("AddExpense: %v", res.Err)
	}
	if !res.ExpensesChanged || res.BudgetChanged {
		t.Fatalf("result = %+v, want expenses changed only", res)
	}
	if res.Notice != nil {
		t.Fatalf("unexpected notice %q", res.Notice.Message)
	}
	if s.Totals.Budget != 2000 || s.Totals.Spent != 1500 || s.Totals.Remaining != 500 {
		t.Fatalf("totals = %+v, want budget=2000 spent=1500 remaining=500", s.Totals)
	}
	if len(s.Expenses) != 1 || s.Expenses[0] != (model.Expense{Name: "Rent", Cost: 1500, Date: "3/4/2025"}) {
		t.Fatalf("expenses = %+v", s.Expenses)
	}
}

func TestAddExpenseExactlyAtBudget(t *testing.T) {
	r := Reducer{}
	s := loaded(t, r, 100)
	s, res := r.Reduce(s, AddExpense{Name: "x", Cost: "100"})
	if res.Notice != nil {
		t.Fatal("spending the whole budget should not warn")
	}
	if s.Totals.Remaining != 0 || s.Totals.Budget != 100 {
		t.Fatalf("totals = %+v", s.Totals)
	}
}

// Budget 2000: Rent 1500, then Car 700 overshoots, then Rent is deleted.
func TestOvershootScenarioAdjust(t *testing.T) {
	r := Reducer{Policy: PolicyAdjust}
	s := loaded(t, r, 2000)

	s, _ = r.Reduce(s, AddExpense{Name: "Rent", Cost: "1500"})
	s, res := r.Reduce(s, AddExpense{Name: "Car", Cost: "700"})
	if res.Notice == nil || res.Notice.Message != model.MsgNegativeBudget {
		t.Fatalf("notice = %+v, want %q", res.Notice, model.MsgNegativeBudget)
	}
	if res.Notice.Level != model.NoticeWarn {
		t.Fatalf("notice level = %v, want warn", res.Notice.Level)
	}
	if !res.BudgetChanged || !res.ExpensesChanged {
		t.Fatalf("result = %+v, want budget and expenses changed", res)
	}
	if s.Totals.Remaining != 0 || s.Totals.Budget != -200 || s.Totals.Spent != 2200 {
		t.Fatalf("after overshoot totals = %+v, want remaining=0 budget=-200 spent=2200", s.Totals)
	}
	if !s.Totals.Negative() {
		t.Fatal("Negative() = false after overshoot")
	}

	s, res = r.Reduce(s, DeleteExpense{Index: 0})
	if !res.Ok() {
		t.Fatalf("DeleteExpense: %v", res.Err)
	}
	if len(s.Expenses) != 1 || s.Expenses[0].Name != "Car" {
		t.Fatalf("expenses = %+v, want [Car]", s.Expenses)
	}
	if s.Totals.Spent != 700 || s.Totals.Remaining != -900 || s.Totals.Budget != -200 {
		t.Fatalf("after delete totals = %+v, want spent=700 remaining=-900 budget=-200", s.Totals)
	}
}

func TestOvershootCeiling(t *testing.T) {
	r := Reducer{Policy: PolicyCeiling}
	s := loaded(t, r, 2000)

	s, _ = r.Reduce(s, AddExpense{Name: "Rent", Cost: "1500"})
	s, res := r.Reduce(s, AddExpense{Name: "Car", Cost: "700"})
	if res.Notice == nil || res.Notice.Message != model.MsgNegativeBudget {
		t.Fatalf("notice = %+v", res.Notice)
	}
	if res.BudgetChanged {
		t.Fatal("ceiling policy must not change the budget")
	}
	if s.Totals.Budget != 2000 || s.Totals.Remaining != -200 || !s.Totals.Overspent {
		t.Fatalf("totals = %+v, want budget=2000 remaining=-200 overspent", s.Totals)
	}

	s, _ = r.Reduce(s, DeleteExpense{Index: 1})
	if s.Totals.Overspent || s.Totals.Remaining != 500 {
		t.Fatalf("after delete totals = %+v, want remaining=500 not overspent", s.Totals)
	}
}

func TestAddExpenseRejectsIncompleteInput(t *testing.T) {
	r := Reducer{}
	base := loaded(t, r, 2000, model.Expense{Name: "a", Cost: 10})

	tests := []struct {
		name string
		act  AddExpense
		want error
	}{
		{"empty name", AddExpense{Cost: "10"}, ErrEmptyName},
		{"blank name", AddExpense{Name: "   ", Cost: "10"}, ErrEmptyName},
		{"empty cost", AddExpense{Name: "x"}, ErrEmptyCost},
		{"non-digit cost", AddExpense{Name: "x", Cost: "1e3"}, ErrInvalidCost},
		{"negative cost", AddExpense{Name: "x", Cost: "-5"}, ErrInvalidCost},
		{"overflow", AddExpense{Name: "x", Cost: "99999999999999999999"}, ErrInvalidCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, res := r.Reduce(base, tt.act)
			if !errors.Is(res.Err, tt.want) {
				t.Fatalf("err = %v, want %v", res.Err, tt.want)
			}
			if res.ExpensesChanged || res.BudgetChanged {
				t.Fatalf("rejected action reported changes: %+v", res)
			}
			if len(s.Expenses) != 1 || s.Totals != base.Totals {
				t.Fatalf("state changed: %+v", s)
			}
		})
	}
}

func TestAddExpenseDoesNotAliasPreviousList(t *testing.T) {
	r := Reducer{}
	s0 := loaded(t, r, 2000, model.Expense{Name: "a", Cost: 1})
	s1, _ := r.Reduce(s0, AddExpense{Name: "b", Cost: "2"})
	if len(s0.Expenses) != 1 {
		t.Fatalf("previous state mutated: %+v", s0.Expenses)
	}
	if len(s1.Expenses) != 2 {
		t.Fatalf("next state = %+v", s1.Expenses)
	}
}

func TestDeleteExpenseKeepsOrder(t *testing.T) {
	r := Reducer{}
	s := loaded(t, r, 1000,
		model.Expense{Name: "a", Cost: 1},
		model.Expense{Name: "b", Cost: 2},
		model.Expense{Name: "c", Cost: 3},
		model.Expense{Name: "d", Cost: 4},
	)

	next, res := r.Reduce(s, DeleteExpense{Index: 1})
	if !res.Ok() || !res.ExpensesChanged {
		t.Fatalf("result = %+v", res)
	}
	if len(next.Expenses) != len(s.Expenses)-1 {
		t.Fatalf("len = %d, want %d", len(next.Expenses), len(s.Expenses)-1)
	}
	want := []string{"a", "c", "d"}
	for i, e := range next.Expenses {
		if e.Name != want[i] {
			t.Fatalf("expenses[%d] = %q, want %q", i, e.Name, want[i])
		}
	}
	if next.Totals.Spent != 8 || next.Totals.Remaining != 992 {
		t.Fatalf("totals = %+v", next.Totals)
	}
	if s.Expenses[1].Name != "b" {
		t.Fatal("delete mutated the previous state")
	}
}

func TestDeleteExpenseOutOfRange(t *testing.T) {
	r := Reducer{}
	s := loaded(t, r, 1000, model.Expense{Name: "a", Cost: 1})
	for _, idx := range []int{-1, 1, 5} {
		next, res := r.Reduce(s, DeleteExpense{Index: idx})
		if !errors.Is(res.Err, ErrIndexOutOfRange) {
			t.Fatalf("index %d: err = %v", idx, res.Err)
		}
		if res.Notice == nil || res.Notice.Level != model.NoticeError {
			t.Fatalf("index %d: notice = %+v", idx, res.Notice)
		}
		if len(next.Expenses) != 1 {
			t.Fatalf("index %d: list changed", idx)
		}
	}
}

func TestEditBudget(t *testing.T) {
	r := Reducer{}
	s := loaded(t, r, 2000, model.Expense{Name: "Rent", Cost: 1500})

	tests := []struct {
		input         string
		ok            bool
		wantBudget    int64
		wantRemaining int64
	}{
		{"3000", true, 3000, 1500},
		{" 1500 ", true, 1500, 0},
		{"1499", false, 2000, 500},
		{"", false, 2000, 500},
		{"abc", false, 2000, 500},
		{"12abc", false, 2000, 500},
		{"-10", false, 2000, 500},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			next, res := r.Reduce(s, EditBudget{Input: tt.input})
			if res.Ok() != tt.ok {
				t.Fatalf("ok = %v, want %v (err=%v)", res.Ok(), tt.ok, res.Err)
			}
			if next.Totals.Budget != tt.wantBudget || next.Totals.Remaining != tt.wantRemaining {
				t.Fatalf("totals = %+v, want budget=%d remaining=%d", next.Totals, tt.wantBudget, tt.wantRemaining)
			}
			if tt.ok {
				if !res.BudgetChanged || res.Notice != nil {
					t.Fatalf("result = %+v", res)
				}
				return
			}
			if !errors.Is(res.Err, ErrInvalidBudget) {
				t.Fatalf("err = %v, want ErrInvalidBudget", res.Err)
			}
			if res.Notice == nil || res.Notice.Message != model.MsgInvalidBudget {
				t.Fatalf("notice = %+v", res.Notice)
			}
		})
	}
}

func TestEditBudgetClearsOverspent(t *testing.T) {
	r := Reducer{Policy: PolicyCeiling}
	s := loaded(t, r, 100, model.Expense{Name: "a", Cost: 150})
	if !s.Totals.Overspent {
		t.Fatal("load should flag overspent under ceiling policy")
	}
	s, _ = r.Reduce(s, EditBudget{Input: "200"})
	if s.Totals.Overspent || s.Totals.Remaining != 50 {
		t.Fatalf("totals = %+v", s.Totals)
	}
}

func TestAddExpenseRejectsOverflow(t *testing.T) {
	for _, policy := range []Policy{PolicyAdjust, PolicyCeiling} {
		t.Run(policy.String(), func(t *testing.T) {
			r := Reducer{Policy: policy}
			s := loaded(t, r, 2000)

			rejected := 0
			for i := 0; i < 10; i++ {
				prev := s
				var res Result
				s, res = r.Reduce(s, AddExpense{Name: "big", Cost: "999999999999999999", Date: "1/1/2025"})
				if s.Totals.Spent < prev.Totals.Spent || s.Totals.Spent < 0 {
					t.Fatalf("add %d: spent went from %d to %d", i, prev.Totals.Spent, s.Totals.Spent)
				}
				if s.Totals.Budget > prev.Totals.Budget {
					t.Fatalf("add %d: budget went from %d to %d", i, prev.Totals.Budget, s.Totals.Budget)
				}
				if res.Ok() {
					continue
				}
				if !errors.Is(res.Err, ErrOverflow) {
					t.Fatalf("add %d: err = %v, want ErrOverflow", i, res.Err)
				}
				if res.Notice == nil || res.Notice.Level != model.NoticeError || res.Notice.Message != model.MsgAmountTooLarge {
					t.Fatalf("add %d: notice = %+v", i, res.Notice)
				}
				if res.ExpensesChanged || res.BudgetChanged || len(s.Expenses) != len(prev.Expenses) {
					t.Fatalf("add %d: rejected add changed state", i)
				}
				rejected++
			}
			if rejected == 0 {
				t.Fatal("expected at least one add to be rejected")
			}
			if spent := s.Expenses.Total(); spent != s.Totals.Spent {
				t.Fatalf("list total %d != spent %d", spent, s.Totals.Spent)
			}
		})
	}
}

func TestCalculateSaturatesRemaining(t *testing.T) {
	_, remaining := Calculate(model.ExpenseList{{Name: "a", Cost: math.MaxInt64}}, -10)
	if remaining != math.MinInt64 {
		t.Fatalf("remaining = %d, want MinInt64", remaining)
	}
}

type bogus struct{}

func (bogus) isAction() {}

func TestReduceUnknownAction(t *testing.T) {
	s, res := Reducer{}.Reduce(State{}, bogus{})
	if !errors.Is(res.Err, ErrUnknownAction) {
		t.Fatalf("err = %v", res.Err)
	}
	if len(s.Expenses) != 0 {
		t.Fatal("state changed")
	}
}
