// Package format renders numbers the way the mortgage reports display them.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency returns a currency string with a dollar sign, thousands separators
// and cents (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return signed(amount, groupDigits(fmt.Sprintf("%.2f", math.Abs(amount))))
}

// Percent renders a rate as entered, always keeping one decimal place for
// whole numbers (6 -> "6.0%", 5.99 -> "5.99%").
func Percent(rate float64) string {
	return Decimal(rate) + "%"
}

// Decimal renders a float with the shortest exact representation, keeping a
// trailing ".0" on whole numbers. Magnitudes below 1e-4 or from 1e16 up switch
// to exponent notation (1e-05, 1.5e+16).
func Decimal(value float64) string {
	if abs := math.Abs(value); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Years renders a loan term (e.g., "15 years").
func Years(term int) string {
	return fmt.Sprintf("%d years", term)
}

func signed(amount float64, formatted string) string {
	if amount < 0 && strings.Trim(formatted, "0.,") != "" {
		return "-$" + formatted
	}
	return "$" + formatted
}

func groupDigits(formatted string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
