// Package loans provides fixed-rate mortgage payment and amortization utilities.
package loans

import (
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// LoanParameters describes a fully amortizing fixed-rate loan.
type LoanParameters struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
}

// NumPayments returns the number of monthly payments over the term.
func (p LoanParameters) NumPayments() int {
	return p.TermYears * constants.MonthsPerYear
}

// YearlyRecord aggregates one year of the amortization schedule.
//
// RemainingBalance is floored at zero while UnclampedBalance keeps the true
// running balance. CumulativePrincipalPaid is derived from the unclamped value.
type YearlyRecord struct {
	Year                    int     `json:"year"`
	PrincipalPaid           float64 `json:"principalPaid"`
	InterestPaid            float64 `json:"interestPaid"`
	RemainingBalance        float64 `json:"remainingBalance"`
	UnclampedBalance        float64 `json:"unclampedBalance"`
	CumulativePrincipalPaid float64 `json:"cumulativePrincipalPaid"`
	MonthsPaid              int     `json:"monthsPaid"`
}

// CalculateMonthlyPayment calculates the monthly principal and interest
// payment for a loan using the standard amortization formula. No rounding is
// applied.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termYears int) float64 {
	monthlyRate := mathutil.PercentToMonthlyRate(annualRatePercent)
	numPayments := float64(termYears * constants.MonthsPerYear)

	if monthlyRate == 0 {
		// Straight-line repayment, no interest.
		return principal / numPayments
	}

	power := math.Pow(1+monthlyRate, numPayments)
	return principal * (monthlyRate * power) / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * mathutil.PercentToMonthlyRate(annualRatePercent)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// yearAccumulator carries the running state of the month-by-month simulation.
type yearAccumulator struct {
	principal float64
	interest  float64
	months    int
}

// GenerateSchedule simulates the loan month by month and returns one record
// per year of the term, ordered by year.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan LoanParameters) []YearlyRecord {
	monthlyPayment := CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, loan.TermYears)

	g.logger.Debug("generating amortization schedule",
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("principal", loan.Principal),
		zap.Float64("rate", loan.AnnualRatePercent),
		zap.Int("termYears", loan.TermYears),
		zap.Int("payments", loan.NumPayments()),
		zap.Float64("monthlyPayment", monthlyPayment),
	)

	schedule := make([]YearlyRecord, 0, loan.TermYears)
	balance := loan.Principal
	paidOff := false

	for year := 1; year <= loan.TermYears; year++ {
		var acc yearAccumulator
		acc, balance = amortizeYear(balance, monthlyPayment, loan.AnnualRatePercent)

		if !paidOff && balance <= 0 {
			paidOff = true
			g.logger.Debug("loan balance exhausted",
				zap.String("op", "loans.GenerateSchedule"),
				zap.Int("year", year),
				zap.Int("monthsPaid", acc.months),
				zap.Float64("balance", balance),
			)
		}

		schedule = append(schedule, newYearlyRecord(year, acc, loan.Principal, balance))
	}

	return schedule
}

func newYearlyRecord(year int, acc yearAccumulator, principal, balance float64) YearlyRecord {
	return YearlyRecord{
		Year:                    year,
		PrincipalPaid:           acc.principal,
		InterestPaid:            acc.interest,
		RemainingBalance:        mathutil.Max(0, balance),
		UnclampedBalance:        balance,
		CumulativePrincipalPaid: principal - balance,
		MonthsPaid:              acc.months,
	}
}

// amortizeYear applies up to twelve monthly payments to balance. It stops as
// soon as the balance is exhausted and returns the partial-year totals along
// with the new running balance.
func amortizeYear(balance, monthlyPayment, annualRatePercent float64) (yearAccumulator, float64) {
	var acc yearAccumulator
	for month := 0; month < constants.MonthsPerYear; month++ {
		if balance <= 0 {
			break
		}
		interest := CalculateInterestPayment(balance, annualRatePercent)
		principal := monthlyPayment - interest

		acc.principal += principal
		acc.interest += interest
		acc.months++
		balance -= principal
	}
	return acc, balance
}

// ScheduleTotals sums interest and total payments (principal plus interest)
// across every year of a schedule.
func ScheduleTotals(schedule []YearlyRecord) (totalInterest, totalPaid float64) {
	for _, record := range schedule {
		totalInterest += record.InterestPaid
		totalPaid += record.PrincipalPaid + record.InterestPaid
	}
	return totalInterest, totalPaid
}
