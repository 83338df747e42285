package report

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite is wrapped when a calculated value overflows or is undefined.
var ErrNonFinite = errors.New("calculation produced a non-finite value")

// CheckFinite verifies every figure in the summary is a finite number. Inputs
// that are individually valid can still overflow once compounded, e.g. a very
// large price grown at a high APR over a long term.
func (s *Summary) CheckFinite() error {
	check := func(name string, value float64) error {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: %s", ErrNonFinite, name)
		}
		return nil
	}

	scalars := []struct {
		name  string
		value float64
	}{
		{"realtor cost", s.RealtorCost},
		{"loan amount", s.LoanAmount},
		{"monthly total", s.Monthly.Total},
		{"monthly mortgage", s.Monthly.Mortgage},
		{"annual total", s.Annual.Total},
		{"annual mortgage", s.Annual.Mortgage},
		{"annual property tax", s.Annual.PropertyTax},
		{"total initial investment", s.TotalInitialInvestment},
		{"total interest paid", s.TotalInterestPaid},
		{"total amount paid", s.TotalAmountPaid},
	}
	for _, sc := range scalars {
		if err := check(sc.name, sc.value); err != nil {
			return err
		}
	}

	for _, rec := range s.Amortization {
		for _, v := range []float64{rec.PrincipalPaid, rec.InterestPaid, rec.UnclampedBalance, rec.CumulativePrincipalPaid} {
			if err := check(fmt.Sprintf("amortization year %d", rec.Year), v); err != nil {
				return err
			}
		}
	}
	for _, row := range s.Rows {
		for _, v := range []float64{row.TotalEquity, row.RemainingBalance, row.InvestmentValue} {
			if err := check(fmt.Sprintf("year %d", row.Year), v); err != nil {
				return err
			}
		}
	}
	return nil
}
