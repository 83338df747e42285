package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
)

// ValidateInputs rejects inputs the calculation cannot handle and returns
// warnings for inputs that are legal but likely unintended.
func ValidateInputs(in report.Inputs) ([]string, error) {
	var errs []error

	for _, field := range []struct {
		name  string
		value float64
	}{
		{"house price", in.HousePrice},
		{"down payment", in.DownPayment},
		{"closing costs", in.ClosingCosts},
		{"realtor percentage", in.RealtorPercent},
		{"mortgage rate", in.MortgageRatePercent},
		{"monthly HOA", in.MonthlyHOA},
		{"investment APR", in.InvestmentAPRPercent},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be a finite number, got %v", field.name, field.value))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if in.HousePrice <= 0 {
		errs = append(errs, fmt.Errorf("house price must be positive, got %.2f", in.HousePrice))
	}
	if in.LoanTermYears < 1 {
		errs = append(errs, fmt.Errorf("loan term must be at least 1 year, got %d", in.LoanTermYears))
	}
	if in.LoanTermYears > constants.MaxTermYears {
		errs = append(errs, fmt.Errorf("loan term must be at most %d years, got %d", constants.MaxTermYears, in.LoanTermYears))
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"down payment", in.DownPayment},
		{"closing costs", in.ClosingCosts},
		{"realtor percentage", in.RealtorPercent},
		{"mortgage rate", in.MortgageRatePercent},
		{"monthly HOA", in.MonthlyHOA},
		{"investment APR", in.InvestmentAPRPercent},
	}
	for _, field := range nonNegative {
		if field.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %.2f", field.name, field.value))
		}
	}

	if in.HousePrice > 0 && in.DownPayment > in.HousePrice {
		errs = append(errs, fmt.Errorf("down payment %.2f exceeds house price %.2f", in.DownPayment, in.HousePrice))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	var warnings []string
	if mathutil.IsZero(in.LoanAmount()) {
		warnings = append(warnings, "down payment covers the full house price; no loan will be amortized")
	}
	if in.MortgageRatePercent == 0 {
		warnings = append(warnings, "mortgage rate is 0%; payments are straight-line principal")
	}
	if in.LoanTermYears > constants.MaxReasonableTermYears {
		warnings = append(warnings, fmt.Sprintf("loan term of %d years exceeds %d years",
			in.LoanTermYears, constants.MaxReasonableTermYears))
	}
	return warnings, nil
}
