// Package model defines the core data types for tally.
package model

import (
	"math"
	"time"
)

// DateLayout matches the short month/day/year form used when an expense is
// stamped at creation time.
const DateLayout = "1/2/2006"

// Expense is a named, dated, costed spending record.
type Expense struct {
	Name string `json:"name"`
	Cost int64  `json:"cost"`
	Date string `json:"date"`
}

// ExpenseList is an ordered sequence of expenses; insertion order is display order.
type ExpenseList []Expense

// FormatDate renders t the way expense dates are stored.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Valid reports whether the expense has the shape the store accepts.
func (e Expense) Valid() bool {
	return e.Name != "" && e.Cost >= 0
}

// Total returns the sum of all costs in the list, saturating at
// math.MaxInt64.
func (l ExpenseList) Total() int64 {
	var sum int64
	for _, e := range l {
		if e.Cost > 0 && sum > math.MaxInt64-e.Cost {
			return math.MaxInt64
		}
		sum += e.Cost
	}
	return sum
}

// Without returns a copy of the list with the entry at i removed.
// The remaining entries keep their relative order.
func (l ExpenseList) Without(i int) ExpenseList {
	out := make(ExpenseList, 0, len(l))
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}

// With returns a copy of the list with e appended.
func (l ExpenseList) With(e Expense) ExpenseList {
	out := make(ExpenseList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, e)
}
