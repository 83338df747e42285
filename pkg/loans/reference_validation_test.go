package loans

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

// ReferenceYear represents a year-end checkpoint from the reference schedule
type ReferenceYear struct {
	Year        int
	LoanBalance float64
}

// getReferenceSchedule returns year-end balances from an authoritative schedule.
// Based on: Loan amount $175,000, Interest rate 4.5%, Term 360 months
// Calculator: https://www.fidelitygroup.com/amortizing-loan-calculator
func getReferenceSchedule() []ReferenceYear {
	return []ReferenceYear{
		{1, 172176.85},
		{2, 169224.01},
		{3, 166135.52},
		{5, 159526.36},
		{10, 140156.51},
		{15, 115909.42},
		{20, 85557.02},
		{25, 47562.00},
		{30, 0.00},
	}
}

func TestLoanCalculationsAgainstReferenceSchedule(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(zap.NewNop())

	loan := LoanParameters{
		Principal:         175000,
		AnnualRatePercent: 4.5,
		TermYears:         30,
	}

	payment := CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, loan.TermYears)
	if math.Abs(payment-886.70) > 0.01 {
		t.Errorf("monthly payment = %.2f, reference 886.70", payment)
	}

	schedule := generator.GenerateSchedule(loan)
	tolerance := 0.50 // Allow $0.50 difference due to rounding

	for _, ref := range getReferenceSchedule() {
		record := schedule[ref.Year-1]
		if math.Abs(record.RemainingBalance-ref.LoanBalance) > tolerance {
			t.Errorf("year %d balance = %.2f, reference %.2f", ref.Year, record.RemainingBalance, ref.LoanBalance)
		}
	}

	// First-year split: twelve payments of 886.70 with 2,823.15 going to principal.
	first := schedule[0]
	if math.Abs(first.PrincipalPaid-2823.15) > tolerance {
		t.Errorf("year 1 principal = %.2f, reference 2823.15", first.PrincipalPaid)
	}
	if math.Abs(first.InterestPaid-7817.24) > tolerance {
		t.Errorf("year 1 interest = %.2f, reference 7817.24", first.InterestPaid)
	}
}
