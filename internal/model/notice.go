package model

// NoticeLevel classifies a Notice for rendering.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// Fixed user-facing messages.
const (
	MsgNegativeBudget = "Your budget is negative"
	MsgInvalidBudget  = "Please enter a valid budget amount greater than or equal to spent amount."
	MsgAmountTooLarge = "That amount is too large to track."
)

// Notice is a dismissible message produced by a state transition.
type Notice struct {
	Level   NoticeLevel
	Message string
}

func (n NoticeLevel) String() string {
	switch n {
	case NoticeWarn:
		return "warn"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}
