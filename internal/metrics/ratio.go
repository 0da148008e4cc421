// Package metrics derives percentages and pro-rata shares from normalized
// vault values.
//
// Every ratio treats a zero denominator as a zero result rather than an
// error, so a vault with nothing staked reports 0% instead of failing.
package metrics

import "github.com/shopspring/decimal"

// DivisionPrecision is the number of fractional digits kept by divisions.
const DivisionPrecision = 28

var hundred = decimal.NewFromInt(100)

// Ratio returns part / whole, or zero when whole is zero.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, DivisionPrecision)
}

// Percent returns part / whole * 100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	return Ratio(part, whole).Mul(hundred)
}

// StakePercent is the share of a vault's total supply held by one depositor.
func StakePercent(held, total decimal.Decimal) decimal.Decimal {
	return Percent(held, total)
}

// ProRata is the part of rate earned by a depositor holding held of total.
func ProRata(rate, held, total decimal.Decimal) decimal.Decimal {
	return rate.Mul(Ratio(held, total))
}

// MigrationProgress is the share of funds already moved to the new vault:
// newBalance / (oldBalance + newBalance) * 100.
func MigrationProgress(oldBalance, newBalance decimal.Decimal) decimal.Decimal {
	return Percent(newBalance, oldBalance.Add(newBalance))
}
