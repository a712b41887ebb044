package model

// BudgetState holds the running totals shown above the expense list.
// Spent is always derived from the expense list; Budget is the only field a
// user edits directly.
type BudgetState struct {
	Budget    int64
	Spent     int64
	Remaining int64
	Overspent bool // set by the ceiling overshoot policy only
}

// Negative reports whether the budget has been pushed below zero.
func (b BudgetState) Negative() bool {
	return b.Budget < 0
}

// UsedFraction returns spent/budget clamped to [0, 1].
func (b BudgetState) UsedFraction() float64 {
	if b.Budget <= 0 {
		if b.Spent > 0 {
			return 1
		}
		return 0
	}
	f := float64(b.Spent) / float64(b.Budget)
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	return f
}
