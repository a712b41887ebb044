package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/theirongolddev/tally/internal/model"
)

// LoadReport describes problems found while reading persisted expenses.
// A nil report means the data was read cleanly.
type LoadReport struct {
	Malformed error // set when the stored value was not a JSON array of expenses
	Dropped   int   // entries discarded for failing shape validation or overflowing the total
}

func (r *LoadReport) String() string {
	if r == nil {
		return ""
	}
	if r.Malformed != nil {
		return fmt.Sprintf("stored expenses were unreadable and have been ignored (%v); the raw value is kept under %q",
			r.Malformed, KeyExpensesBackup)
	}
	return fmt.Sprintf("ignored %d invalid stored expense(s)", r.Dropped)
}

// Notice converts the report for display. Unreadable data is a warning;
// dropped entries alone are informational.
func (r *LoadReport) Notice() model.Notice {
	level := model.NoticeInfo
	if r.Malformed != nil {
		level = model.NoticeWarn
	}
	return model.Notice{Level: level, Message: r.String()}
}

// LoadExpenses reads the persisted expense list. A missing key yields an
// empty list. Unparseable data also yields an empty list, described by the
// returned report rather than an error; err is reserved for database failures.
func (s *Store) LoadExpenses() (model.ExpenseList, *LoadReport, error) {
	raw, ok, err := s.Get(KeyExpenses)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return model.ExpenseList{}, nil, nil
	}
	list, report := DecodeExpenses(raw)
	return list, report, nil
}

// DecodeExpenses parses the JSON form of an expense list, dropping entries
// that do not have a non-empty name and non-negative cost, and entries that
// would push the running total past math.MaxInt64.
func DecodeExpenses(raw string) (model.ExpenseList, *LoadReport) {
	var decoded []model.Expense
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return model.ExpenseList{}, &LoadReport{Malformed: err}
	}

	list := make(model.ExpenseList, 0, len(decoded))
	dropped := 0
	var total int64
	for _, e := range decoded {
		if !e.Valid() || e.Cost > math.MaxInt64-total {
			dropped++
			continue
		}
		total += e.Cost
		list = append(list, e)
	}
	if dropped > 0 {
		return list, &LoadReport{Dropped: dropped}
	}
	return list, nil
}

// SaveExpenses rewrites the full expense list.
func (s *Store) SaveExpenses(list model.ExpenseList) error {
	if list == nil {
		list = model.ExpenseList{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}
	return s.Set(KeyExpenses, string(data))
}

// LoadBudget returns the persisted budget. ok is false when none is stored
// or the stored value is not an integer.
func (s *Store) LoadBudget() (budget int64, ok bool, err error) {
	raw, found, err := s.Get(KeyBudget)
	if err != nil || !found {
		return 0, false, err
	}
	budget, perr := strconv.ParseInt(raw, 10, 64)
	if perr != nil {
		return 0, false, nil
	}
	return budget, true, nil
}

// SaveBudget persists the budget.
func (s *Store) SaveBudget(budget int64) error {
	return s.Set(KeyBudget, strconv.FormatInt(budget, 10))
}
