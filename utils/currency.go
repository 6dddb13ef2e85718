package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrencyTHB formats an amount as Thai Baht for receipts and reports.
// Example: 1250.50 -> "฿1,250.50"
func FormatCurrencyTHB(amount float64) string {
	formatted := fmt.Sprintf("%.2f", math.Abs(amount))

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + "฿" + strings.Join(groups, ",") + "." + decimalPart
}
