package integration

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/amount"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/testutil"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

const jumboPrice = "$1.5M"

// loadJumbo loads the test configuration and resolves it exactly as main() does.
func loadJumbo(t *testing.T) (*config.Configuration, report.Inputs) {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	in, err := conf.Defaults.Inputs()
	if err != nil {
		t.Fatalf("Defaults.Inputs() error = %v", err)
	}
	in.HousePrice = amount.MustParse(jumboPrice)

	warnings, err := validation.ValidateInputs(in)
	if err != nil {
		t.Fatalf("ValidateInputs() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return conf, in
}

// TestMainIntegrationBaseline tests that the application produces the same
// results as the baseline captured from the reference calculator.
func TestMainIntegrationBaseline(t *testing.T) {
	_, in := loadJumbo(t)

	summary := report.NewBuilder(zap.NewNop()).Build(in)

	if summary.LoanAmount != 1200000 {
		t.Errorf("Expected loan amount 1200000, got %.2f", summary.LoanAmount)
	}
	if len(summary.Amortization) != 30 {
		t.Errorf("Expected 30 amortization years, got %d", len(summary.Amortization))
	}
	if len(summary.Rows) != 31 {
		t.Errorf("Expected 31 comparison rows, got %d", len(summary.Rows))
	}

	validateBaselineValues(t, summary)
}

// validateBaselineValues checks specific key values against the baseline CSV.
func validateBaselineValues(t *testing.T, summary *report.Summary) {
	baselineChecks := []struct {
		name        string
		got         float64
		expectedVal float64
		tolerance   float64
	}{
		{"monthly mortgage", summary.Monthly.Mortgage, 7186.89, 0.01},
		{"monthly total", summary.Monthly.Total, 9436.89, 0.01},
		{"initial investment", summary.TotalInitialInvestment, 357500.00, 0.01},
		{"year 1 investment", summary.InvestmentGrowth[1].Value, 370012.50, 0.01},
		{"total interest", summary.TotalInterestPaid, 1387281.51, 0.01},
	}

	for _, check := range baselineChecks {
		if math.Abs(check.got-check.expectedVal) > check.tolerance {
			t.Errorf("%s: expected %.2f, got %.2f", check.name, check.expectedVal, check.got)
		}
	}

	year1 := testutil.FindRow(summary.Rows, 1)
	if year1 == nil {
		t.Fatal("Missing comparison row for year 1")
	}
	if year1.NewEquity != year1.PrincipalPaid {
		t.Errorf("Expected new equity to equal principal paid, got %.2f vs %.2f", year1.NewEquity, year1.PrincipalPaid)
	}

	last := testutil.FindScheduleYear(summary.Amortization, 30)
	if last == nil {
		t.Fatal("Missing amortization record for year 30")
	}
	if last.RemainingBalance != 0 {
		t.Errorf("Expected loan to be paid off in year 30, got balance %.2f", last.RemainingBalance)
	}
}

// TestCSVOutputFormat checks the exported CSV against the reference output.
func TestCSVOutputFormat(t *testing.T) {
	conf, in := loadJumbo(t)
	if conf.Output.Format != "csv" {
		t.Fatalf("Expected csv output format from config, got %q", conf.Output.Format)
	}

	summary := report.NewBuilder(zap.NewNop()).Build(in)

	got, err := output.CsvString(summary)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}

	want, err := os.ReadFile("../../pkg/output/testdata/jumbo_30y.csv")
	if err != nil {
		t.Fatalf("failed to read baseline: %v", err)
	}
	if got != string(want) {
		t.Errorf("CSV output does not match baseline")
	}

	records, err := csv.NewReader(strings.NewReader(got)).ReadAll()
	if err != nil {
		t.Fatalf("CSV output is not parseable: %v", err)
	}
	if records[0][0] != "MORTGAGE SUMMARY" {
		t.Errorf("Expected MORTGAGE SUMMARY header, got %q", records[0][0])
	}
}

// TestPrettyOutputFormat checks the console report against the reference output.
func TestPrettyOutputFormat(t *testing.T) {
	_, in := loadJumbo(t)

	summary := report.NewBuilder(zap.NewNop()).Build(in)

	var buf bytes.Buffer
	output.PrettyFormat(&buf, summary)

	want, err := os.ReadFile("../../pkg/output/testdata/jumbo_30y.txt")
	if err != nil {
		t.Fatalf("failed to read baseline: %v", err)
	}
	if buf.String() != string(want) {
		t.Errorf("Pretty output does not match baseline")
	}
}

// TestConfigurationValidation runs configured defaults through validation.
func TestConfigurationValidation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		price       float64
		expectError bool
		expectWarn  bool
	}{
		{"Valid defaults", "defaults:\n  term: 30\n", 400000, false, false},
		{"Cash purchase", "defaults:\n  down: 400K\n", 400000, false, true},
		{"Zero rate", "defaults:\n  rate: 0\n", 400000, false, true},
		{"Down above price", "defaults:\n  down: 1M\n", 400000, true, false},
		{"Negative closing", "defaults:\n  closing: -5000\n", 400000, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := config.LoadConfigurationFromReader(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("LoadConfigurationFromReader() error = %v", err)
			}
			in, err := conf.Defaults.Inputs()
			if err != nil {
				t.Fatalf("Defaults.Inputs() error = %v", err)
			}
			in.HousePrice = tt.price

			warnings, err := validation.ValidateInputs(in)
			if tt.expectError != (err != nil) {
				t.Fatalf("expectError=%v, got err=%v", tt.expectError, err)
			}
			if !tt.expectError && tt.expectWarn != (len(warnings) > 0) {
				t.Errorf("expectWarn=%v, got warnings=%v", tt.expectWarn, warnings)
			}
		})
	}
}

// TestDataConsistency checks the cross-module invariants over a range of loans.
func TestDataConsistency(t *testing.T) {
	builder := report.NewBuilder(zap.NewNop())

	variations := []report.Inputs{
		{HousePrice: 500000, MortgageRatePercent: 6.0, LoanTermYears: 15, RealtorPercent: 3, InvestmentAPRPercent: 3.75},
		{HousePrice: 250000, DownPayment: 50000, MortgageRatePercent: 3.25, LoanTermYears: 30, InvestmentAPRPercent: 5},
		{HousePrice: 800000, DownPayment: 160000, ClosingCosts: 12000, MortgageRatePercent: 7.5, LoanTermYears: 20, MonthlyHOA: 400},
		{HousePrice: 300000, DownPayment: 100000, MortgageRatePercent: 0, LoanTermYears: 10, InvestmentAPRPercent: 0},
		{HousePrice: 120000, MortgageRatePercent: 12, LoanTermYears: 1, RealtorPercent: 6, InvestmentAPRPercent: 8},
	}

	for _, in := range variations {
		summary := builder.Build(in)
		principal := summary.LoanAmount

		var paid float64
		prevBalance := principal
		for _, rec := range summary.Amortization {
			paid += rec.PrincipalPaid
			if math.Abs(rec.CumulativePrincipalPaid+rec.UnclampedBalance-principal) > 1e-6 {
				t.Errorf("price %.0f year %d: cumulative principal and balance do not sum to principal", in.HousePrice, rec.Year)
			}
			if rec.RemainingBalance > prevBalance+1e-9 {
				t.Errorf("price %.0f year %d: balance increased from %.2f to %.2f", in.HousePrice, rec.Year, prevBalance, rec.RemainingBalance)
			}
			prevBalance = rec.RemainingBalance
		}
		if math.Abs(paid-principal) > 0.01 {
			t.Errorf("price %.0f: principal paid %.2f does not match loan %.2f", in.HousePrice, paid, principal)
		}
		if prevBalance > 0.01 {
			t.Errorf("price %.0f: final balance %.2f not settled", in.HousePrice, prevBalance)
		}

		payment := loans.CalculateMonthlyPayment(principal, in.MortgageRatePercent, in.LoanTermYears)
		expectedTotal := payment * float64(in.LoanTermYears*12)
		if math.Abs(summary.TotalAmountPaid-expectedTotal) > 0.01 {
			t.Errorf("price %.0f: total paid %.2f, expected %.2f", in.HousePrice, summary.TotalAmountPaid, expectedTotal)
		}

		for _, growth := range summary.InvestmentGrowth {
			expected := summary.TotalInitialInvestment * math.Pow(1+in.InvestmentAPRPercent/100, float64(growth.Year))
			if math.Abs(growth.Value-expected) > 1e-6 {
				t.Errorf("price %.0f year %d: investment %.2f, expected %.2f", in.HousePrice, growth.Year, growth.Value, expected)
			}
		}
	}
}
