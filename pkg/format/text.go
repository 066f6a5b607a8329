package format

import (
	"fmt"
	"strings"
)

// Plural renders "1 month" / "3 months".
func Plural(n int, singular, plural string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Months renders a month count as years and months, e.g. "2 years 3 months".
func Months(n int) string {
	if n < 12 {
		return Plural(n, "month", "months")
	}
	parts := []string{Plural(n/12, "year", "years")}
	if rem := n % 12; rem > 0 {
		parts = append(parts, Plural(rem, "month", "months"))
	}
	return strings.Join(parts, " ")
}

// YesNo renders a boolean for display.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
