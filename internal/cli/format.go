// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats a whole-dollar amount with a sign and comma separators.
// e.g., 1500 -> "$1,500", -200 -> "-$200"
func FormatMoney(n int64) string {
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatIndex renders a 0-based list index the way users type it (1-based).
func FormatIndex(i int) string {
	return strconv.Itoa(i + 1)
}

// FormatPercent formats a 0-1 float as a whole percentage string.
func FormatPercent(f float64) string {
	return strconv.Itoa(int(f*100+0.5)) + "%"
}
