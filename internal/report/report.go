// Package report combines loan economics, the amortization schedule and the
// alternative-investment projection into a single reportable summary.
package report

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/finance"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// Inputs holds the already-parsed scalar inputs of a mortgage calculation.
type Inputs struct {
	HousePrice           float64 `json:"housePrice"`
	DownPayment          float64 `json:"downPayment"`
	ClosingCosts         float64 `json:"closingCosts"`
	RealtorPercent       float64 `json:"realtorPercent"`
	MortgageRatePercent  float64 `json:"mortgageRatePercent"`
	LoanTermYears        int     `json:"loanTermYears"`
	MonthlyHOA           float64 `json:"monthlyHOA"`
	InvestmentAPRPercent float64 `json:"investmentAPRPercent"`
}

// DefaultInputs returns inputs populated with the built-in defaults and no
// house price.
func DefaultInputs() Inputs {
	return Inputs{
		DownPayment:          constants.DefaultDownPayment,
		ClosingCosts:         constants.DefaultClosingCosts,
		RealtorPercent:       constants.DefaultRealtorPercent,
		MortgageRatePercent:  constants.DefaultMortgageRate,
		LoanTermYears:        constants.DefaultLoanTermYears,
		MonthlyHOA:           constants.DefaultMonthlyHOA,
		InvestmentAPRPercent: constants.DefaultInvestmentAPR,
	}
}

// LoanAmount is the house price less the down payment.
func (in Inputs) LoanAmount() float64 {
	return in.HousePrice - in.DownPayment
}

// LoanParameters returns the loan implied by the inputs.
func (in Inputs) LoanParameters() loans.LoanParameters {
	return loans.LoanParameters{
		Principal:         in.LoanAmount(),
		AnnualRatePercent: in.MortgageRatePercent,
		TermYears:         in.LoanTermYears,
	}
}

// Costs breaks a recurring housing cost down by component.
type Costs struct {
	Mortgage    float64 `json:"mortgage"`
	PropertyTax float64 `json:"propertyTax"`
	Insurance   float64 `json:"insurance"`
	HOA         float64 `json:"hoa"`
	Total       float64 `json:"total"`
}

// YearRow is one line of the equity-versus-investment comparison. Year 0 is
// the state at purchase.
type YearRow struct {
	Year             int     `json:"year"`
	PrincipalPaid    float64 `json:"principalPaid"`
	InterestPaid     float64 `json:"interestPaid"`
	NewEquity        float64 `json:"newEquity"`
	TotalEquity      float64 `json:"totalEquity"`
	RemainingBalance float64 `json:"remainingBalance"`
	InvestmentValue  float64 `json:"investmentValue"`
}

// Summary is the complete, full-precision result of a calculation. Rounding
// for display happens only in the renderers.
type Summary struct {
	Inputs                 Inputs                 `json:"inputs"`
	RealtorCost            float64                `json:"realtorCost"`
	LoanAmount             float64                `json:"loanAmount"`
	Monthly                Costs                  `json:"monthly"`
	Annual                 Costs                  `json:"annual"`
	TotalInitialInvestment float64                `json:"totalInitialInvestment"`
	Amortization           []loans.YearlyRecord   `json:"amortization"`
	InvestmentGrowth       []finance.GrowthRecord `json:"investmentGrowth"`
	Rows                   []YearRow              `json:"rows"`
	TotalInterestPaid      float64                `json:"totalInterestPaid"`
	TotalAmountPaid        float64                `json:"totalAmountPaid"`
}

// Builder assembles Summaries.
type Builder struct {
	logger    *zap.Logger
	amortizer *loans.AmortizationScheduleGenerator
	projector *finance.GrowthProjector
}

// NewBuilder creates a Builder. A nil logger disables logging.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		logger:    logger,
		amortizer: loans.NewAmortizationScheduleGenerator(logger),
		projector: finance.NewGrowthProjector(logger),
	}
}

// Build runs the full calculation. Inputs are expected to be validated.
func (b *Builder) Build(in Inputs) *Summary {
	loan := in.LoanParameters()

	s := &Summary{
		Inputs:      in,
		RealtorCost: mathutil.ApplyPercentage(in.HousePrice, in.RealtorPercent),
		LoanAmount:  loan.Principal,
	}

	s.Monthly, s.Annual = housingCosts(in, loans.CalculateMonthlyPayment(loan.Principal, loan.AnnualRatePercent, loan.TermYears))

	// Capital that would have been invested instead of buying.
	s.TotalInitialInvestment = in.DownPayment + in.ClosingCosts + s.RealtorCost

	s.Amortization = b.amortizer.GenerateSchedule(loan)
	s.InvestmentGrowth = b.projector.Project(s.TotalInitialInvestment, in.InvestmentAPRPercent, in.LoanTermYears)
	s.Rows = comparisonRows(in.DownPayment, s.LoanAmount, s.Amortization, s.InvestmentGrowth)
	s.TotalInterestPaid, s.TotalAmountPaid = loans.ScheduleTotals(s.Amortization)

	b.logger.Debug("built mortgage summary",
		zap.String("op", "report.Build"),
		zap.Float64("loanAmount", s.LoanAmount),
		zap.Float64("monthlyTotal", s.Monthly.Total),
		zap.Float64("totalInterest", s.TotalInterestPaid),
		zap.Int("rows", len(s.Rows)),
	)

	return s
}

func housingCosts(in Inputs, monthlyMortgage float64) (monthly, annual Costs) {
	annualPropertyTax := in.HousePrice * constants.PropertyTaxRate
	annualInsurance := in.HousePrice * constants.InsuranceRate

	monthly = Costs{
		Mortgage:    monthlyMortgage,
		PropertyTax: annualPropertyTax / constants.MonthsPerYear,
		Insurance:   annualInsurance / constants.MonthsPerYear,
		HOA:         in.MonthlyHOA,
	}
	monthly.Total = monthly.Mortgage + monthly.PropertyTax + monthly.Insurance + monthly.HOA

	annual = Costs{
		Mortgage:    monthlyMortgage * constants.MonthsPerYear,
		PropertyTax: annualPropertyTax,
		Insurance:   annualInsurance,
		HOA:         in.MonthlyHOA * constants.MonthsPerYear,
		Total:       monthly.Total * constants.MonthsPerYear,
	}
	return monthly, annual
}

func comparisonRows(downPayment, loanAmount float64, schedule []loans.YearlyRecord, growth []finance.GrowthRecord) []YearRow {
	rows := make([]YearRow, 0, len(schedule)+1)
	rows = append(rows, YearRow{
		Year:             0,
		TotalEquity:      downPayment,
		RemainingBalance: loanAmount,
		InvestmentValue:  finance.ValueAt(growth, 0),
	})

	for _, record := range schedule {
		rows = append(rows, YearRow{
			Year:             record.Year,
			PrincipalPaid:    record.PrincipalPaid,
			InterestPaid:     record.InterestPaid,
			NewEquity:        record.PrincipalPaid,
			TotalEquity:      downPayment + record.CumulativePrincipalPaid,
			RemainingBalance: record.RemainingBalance,
			InvestmentValue:  finance.ValueAt(growth, record.Year),
		})
	}
	return rows
}
