package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retirement-projector/internal/domain"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatMoney formats whole dollars with thousands separators, e.g. $1,234,568.
func FormatMoney(amount decimal.Decimal) string {
	s := amount.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + "$" + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + "$" + b.String()
}

// FormatRate renders a fraction as a percentage, e.g. 0.035 -> 3.50%.
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatLongevity renders depletion years with a unit when numeric.
func FormatLongevity(l domain.Longevity) string {
	if l.Status == domain.LongevityDepleted {
		return l.String() + " years"
	}
	return l.String()
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
