package mathutil

import (
	"math"
	"testing"
)

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      float64
		tolerance float64
		expected  bool
	}{
		{"Equal values", 10, 10, 0.01, true},
		{"Inside tolerance", 10, 10.005, 0.01, true},
		{"Outside tolerance", 10, 10.5, 0.01, false},
		{"Order does not matter", 10.5, 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tolerance); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tolerance, got, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	if Max(0, -3.5) != 0 {
		t.Errorf("Max(0, -3.5) should be 0")
	}
	if Max(2, 7) != 7 {
		t.Errorf("Max(2, 7) should be 7")
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Realtor three percent", 500000, 3, 15000},
		{"Fractional percent", 1000000, 2.5, 25000},
		{"Zero percent", 750000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestPercentToMonthlyRate(t *testing.T) {
	if got := PercentToMonthlyRate(6.0); math.Abs(got-0.005) > 1e-15 {
		t.Errorf("PercentToMonthlyRate(6.0) = %v, expected 0.005", got)
	}
	if got := PercentToMonthlyRate(0); got != 0 {
		t.Errorf("PercentToMonthlyRate(0) = %v, expected exactly 0", got)
	}
}

func TestRoundToNearest(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		increment float64
		expected  float64
	}{
		{"Already a multiple", 500000, 50, 500000},
		{"Rounds down", 4218.36, 50, 4200},
		{"Rounds up", 4230, 50, 4250},
		{"Tie goes to even step below", 25, 50, 0},
		{"Tie goes to even step above", 75, 50, 100},
		{"Tie at 125 goes to 100", 125, 50, 100},
		{"Zero", 0, 50, 0},
		{"Negative rounds symmetrically", -4230, 50, -4250},
		{"Zero increment leaves value alone", 12.34, 0, 12.34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundToNearest(tt.value, tt.increment)
			if result != tt.expected {
				t.Errorf("RoundToNearest(%v, %v) = %v, expected %v", tt.value, tt.increment, result, tt.expected)
			}
		})
	}
}
