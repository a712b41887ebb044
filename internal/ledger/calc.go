// Package ledger holds the budget arithmetic and the state transition
// function that every user action flows through.
package ledger

import (
	"fmt"
	"math"
	"regexp"

	"github.com/theirongolddev/tally/internal/model"
)

// Calculate returns the total spent over list and what remains of budget.
// No clamping is applied; remaining goes negative when spent exceeds budget.
// Only a result below the int64 range saturates at math.MinInt64.
func Calculate(list model.ExpenseList, budget int64) (spent, remaining int64) {
	spent = list.Total()
	remaining, ok := subAmounts(budget, spent)
	if !ok {
		remaining = math.MinInt64
	}
	return spent, remaining
}

// addAmounts returns a+b, or false if the sum leaves the int64 range.
func addAmounts(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// subAmounts returns a-b, or false if the difference leaves the int64 range.
func subAmounts(a, b int64) (int64, bool) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

// Policy selects how an expense that pushes spending past the budget is
// recorded.
type Policy int

const (
	// PolicyAdjust lowers the budget by the overshoot and zeroes remaining.
	PolicyAdjust Policy = iota
	// PolicyCeiling keeps the budget fixed and flags the state as overspent.
	PolicyCeiling
)

// ParsePolicy maps a config value onto a Policy. An empty string selects
// PolicyAdjust.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "adjust":
		return PolicyAdjust, nil
	case "ceiling":
		return PolicyCeiling, nil
	}
	return PolicyAdjust, fmt.Errorf("unknown overshoot policy %q (want adjust or ceiling)", s)
}

func (p Policy) String() string {
	if p == PolicyCeiling {
		return "ceiling"
	}
	return "adjust"
}

var digitsOnly = regexp.MustCompile(`^\d*$`)

// FilterCost returns next if it contains only digits, otherwise prev.
// Applied on every keystroke so the cost buffer never holds a non-digit.
func FilterCost(prev, next string) string {
	if digitsOnly.MatchString(next) {
		return next
	}
	return prev
}
