package ledger

import "errors"

var (
	// ErrEmptyName is returned when an expense is submitted without a name.
	ErrEmptyName = errors.New("expense name is empty")

	// ErrEmptyCost is returned when an expense is submitted without a cost.
	ErrEmptyCost = errors.New("expense cost is empty")

	// ErrInvalidCost is returned when the cost is not a non-negative integer.
	ErrInvalidCost = errors.New("expense cost must be a non-negative whole number")

	// ErrOverflow is returned when an amount would push a total past the
	// int64 range.
	ErrOverflow = errors.New("amount too large to track")

	// ErrInvalidBudget is returned when a budget edit does not parse or is
	// below the amount already spent.
	ErrInvalidBudget = errors.New("budget must be a whole number >= spent")

	// ErrIndexOutOfRange is returned when deleting an expense that does not exist.
	ErrIndexOutOfRange = errors.New("expense index out of range")

	// ErrUnknownAction is returned for action types the reducer does not handle.
	ErrUnknownAction = errors.New("unknown action")
)
