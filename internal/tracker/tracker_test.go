package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func TestOpenEmptyStoreUsesDefaultBudget(t *testing.T) {
	st := openStore(t)
	tr, lr, err := Open(st, ledger.PolicyAdjust, 2000)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if lr.BudgetFound || lr.Report != nil {
		t.Fatalf("load result = %+v", lr)
	}
	s := tr.State()
	if s.Totals.Budget != 2000 || s.Totals.Remaining != 2000 || len(s.Expenses) != 0 {
		t.Fatalf("state = %+v", s)
	}
}

func TestAddPersistsAndReloads(t *testing.T) {
	st := openStore(t)
	tr, _, err := Open(st, ledger.PolicyAdjust, 2000)
	if err != nil {
		t.Fatal(err)
	}
	tr.SetClock(fixedClock)

	if res, err := tr.Add("Rent", "1500"); err != nil || !res.Ok() {
		t.Fatalf("Add: res=%+v err=%v", res, err)
	}
	if res, err := tr.Add("Car", "700"); err != nil || res.Notice == nil {
		t.Fatalf("Add overshoot: res=%+v err=%v", res, err)
	}

	reopened, lr, err := Open(st, ledger.PolicyAdjust, 2000)
	if err != nil {
		t.Fatal(err)
	}
	if !lr.BudgetFound {
		t.Fatal("budget written by overshoot was not found")
	}
	s := reopened.State()
	if len(s.Expenses) != 2 || s.Expenses[0].Date != "3/4/2025" || s.Expenses[1].Name != "Car" {
		t.Fatalf("expenses = %+v", s.Expenses)
	}
	// Reload recomputes from scratch: budget -200, spent 2200.
	if s.Totals.Budget != -200 || s.Totals.Spent != 2200 || s.Totals.Remaining != -2400 {
		t.Fatalf("totals = %+v", s.Totals)
	}
}

func TestRejectedActionDoesNotPersist(t *testing.T) {
	rec := &recorder{}
	tr := New(rec, ledger.PolicyAdjust)
	res, err := tr.EditBudget("nope")
	if err != nil {
		t.Fatalf("EditBudget err = %v", err)
	}
	if res.Ok() || res.Notice == nil {
		t.Fatalf("res = %+v", res)
	}
	if rec.expenseWrites+rec.budgetWrites != 0 {
		t.Fatalf("rejected action wrote to store: %+v", rec)
	}
}

func TestDeletePersistsFullList(t *testing.T) {
	rec := &recorder{}
	tr := New(rec, ledger.PolicyAdjust)
	tr.SetClock(fixedClock)
	_, _ = tr.EditBudget("100")
	_, _ = tr.Add("a", "10")
	_, _ = tr.Add("b", "20")

	if _, err := tr.Delete(0); err != nil {
		t.Fatal(err)
	}
	if len(rec.lastExpenses) != 1 || rec.lastExpenses[0].Name != "b" {
		t.Fatalf("persisted = %+v", rec.lastExpenses)
	}
	if rec.expenseWrites != 3 {
		t.Fatalf("expense writes = %d, want 3", rec.expenseWrites)
	}
}

func TestPersistenceFailureStillAdvancesState(t *testing.T) {
	rec := &recorder{fail: errors.New("disk full")}
	tr := New(rec, ledger.PolicyAdjust)
	_, err := tr.Add("a", "1")
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if len(tr.State().Expenses) != 1 {
		t.Fatal("state not advanced")
	}
}

func TestOpenRepairsMalformedData(t *testing.T) {
	st := openStore(t)
	if err := st.Set(store.KeyExpenses, "not json"); err != nil {
		t.Fatal(err)
	}
	tr, lr, err := Open(st, ledger.PolicyAdjust, 2000)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if lr.Report == nil || lr.Report.Malformed == nil {
		t.Fatalf("report = %+v", lr.Report)
	}
	if len(tr.State().Expenses) != 0 {
		t.Fatal("expected empty fallback")
	}
	raw, _, _ := st.Get(store.KeyExpenses)
	if raw != "[]" {
		t.Fatalf("stored value = %q, want repaired []", raw)
	}
	backup, ok, err := st.Get(store.KeyExpensesBackup)
	if err != nil || !ok || backup != "not json" {
		t.Fatalf("backup = %q ok=%v err=%v, want original value", backup, ok, err)
	}
}

func TestOpenCleanDataWritesNoBackup(t *testing.T) {
	st := openStore(t)
	if err := st.SaveExpenses(model.ExpenseList{{Name: "a", Cost: 1, Date: "1/1/2025"}}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Open(st, ledger.PolicyAdjust, 2000); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok, _ := st.Get(store.KeyExpensesBackup); ok {
		t.Fatal("backup written for clean data")
	}
}

func TestPersistenceFailureStillSavesBudget(t *testing.T) {
	disk := errors.New("disk full")
	rec := &recorder{failExpenses: disk}
	tr := New(rec, ledger.PolicyAdjust)
	if _, err := tr.EditBudget("100"); err != nil {
		t.Fatalf("EditBudget: %v", err)
	}

	// Overshoot under adjust changes both the list and the budget.
	res, err := tr.Add("a", "150")
	if !errors.Is(err, disk) {
		t.Fatalf("err = %v, want disk full", err)
	}
	if !res.ExpensesChanged || !res.BudgetChanged {
		t.Fatalf("result = %+v, want both changed", res)
	}
	if rec.budgetWrites != 2 || rec.lastBudget != -50 {
		t.Fatalf("budget writes = %d last = %d, want 2 and -50", rec.budgetWrites, rec.lastBudget)
	}
}

type recorder struct {
	fail          error
	failExpenses  error
	expenseWrites int
	budgetWrites  int
	lastExpenses  model.ExpenseList
	lastBudget    int64
}

func (r *recorder) SaveExpenses(l model.ExpenseList) error {
	if r.fail != nil {
		return r.fail
	}
	if r.failExpenses != nil {
		return r.failExpenses
	}
	r.expenseWrites++
	r.lastExpenses = l
	return nil
}

func (r *recorder) SaveBudget(b int64) error {
	if r.fail != nil {
		return r.fail
	}
	r.budgetWrites++
	r.lastBudget = b
	return nil
}
