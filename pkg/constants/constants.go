// Package constants provides shared constants for the mortgage-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// PropertyTaxRate is the annual property tax as a fraction of house price
	PropertyTaxRate = 0.012

	// InsuranceRate is the annual home insurance as a fraction of house price
	InsuranceRate = 0.004

	// DisplayRoundingIncrement is the currency step used by the console renderer
	DisplayRoundingIncrement = 50.0

	// MaxReasonableTermYears is the term above which a warning is emitted
	MaxReasonableTermYears = 50

	// MaxTermYears is the longest loan term accepted
	MaxTermYears = 100
)

// Input defaults, applied when neither a flag nor the config file sets a value.
const (
	DefaultMortgageRate   = 6.0
	DefaultLoanTermYears  = 15
	DefaultDownPayment    = 0.0
	DefaultClosingCosts   = 0.0
	DefaultRealtorPercent = 3.0
	DefaultMonthlyHOA     = 0.0
	DefaultInvestmentAPR  = 3.75
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// CSVExtension is appended to export file names lacking it
	CSVExtension = ".csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
