// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return WithinTolerance(val, 0, constants.CurrencyTolerance)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentToMonthlyRate converts an annual percentage (6.0 meaning 6%) into a
// monthly decimal rate.
func PercentToMonthlyRate(annualPercent float64) float64 {
	return annualPercent / constants.MonthsPerYear / constants.PercentageMultiplier
}

// RoundToNearest rounds value to the closest multiple of increment. Ties on
// the quotient go to the even multiple. Intended for display only.
func RoundToNearest(value, increment float64) float64 {
	if increment == 0 {
		return value
	}
	steps := decimal.NewFromFloat(value / increment).RoundBank(0)
	rounded, _ := steps.Mul(decimal.NewFromFloat(increment)).Float64()
	return rounded
}
