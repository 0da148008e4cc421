package format

import "github.com/shopspring/decimal"

// Fixed renders d with exactly places fractional digits, rounding half to even.
func Fixed(d decimal.Decimal, places int32) string {
	return d.StringFixedBank(places)
}

// Percent renders d with two fractional digits and a trailing "%".
func Percent(d decimal.Decimal) string {
	return Fixed(d, 2) + "%"
}
