package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIDR formats an amount as Indonesian rupiah with dot thousand
// separators, e.g. "Rp 6.800.000". Fractional digits are dropped because
// rupiah amounts are whole numbers in practice.
func FormatIDR(amount decimal.Decimal) string {
	whole := amount.Truncate(0).String()

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
