package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/amount"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

const usageExamples = `
Examples:
  mortgage-calculator --price=500000
  mortgage-calculator --price=500K --rate=5.99 --term=30
  mortgage-calculator --price=1M --rate=6.5 --down=200K --closing=15K --realtor=3 --hoa=250 --apr=4.0
  mortgage-calculator --price=$1.5M --rate=5.99 --down=$300K --closing=$20K --realtor=2.5 --apr=3.5 --csv=results.csv
`

var errMissingPrice = errors.New("missing required flag: --price")

type cliFlags struct {
	configLocation string
	outputFormat   string
	logLevel       string
	csvFile        string

	price   *amount.Value
	down    *amount.Value
	closing *amount.Value
	hoa     *amount.Value
	rate    float64
	term    int
	realtor float64
	apr     float64

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("mortgage-calculator", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &cliFlags{
		price:   amount.NewValue(0),
		down:    amount.NewValue(constants.DefaultDownPayment),
		closing: amount.NewValue(constants.DefaultClosingCosts),
		hoa:     amount.NewValue(constants.DefaultMonthlyHOA),
		set:     make(map[string]bool),
	}

	fs.Var(f.price, "price", "house price (supports: 1M, 500K, $1.5M, 1,000,000)")
	fs.Float64Var(&f.rate, "rate", constants.DefaultMortgageRate, "mortgage rate in percent")
	fs.IntVar(&f.term, "term", constants.DefaultLoanTermYears, "loan term in years")
	fs.Var(f.down, "down", "down payment amount (supports: 100K, $200K)")
	fs.Var(f.closing, "closing", "closing costs (supports: 10K, $15K)")
	fs.Float64Var(&f.realtor, "realtor", constants.DefaultRealtorPercent, "realtor cost as percentage of house price")
	fs.Var(f.hoa, "hoa", "monthly HOA fee (supports: 250, $250)")
	fs.Float64Var(&f.apr, "apr", constants.DefaultInvestmentAPR, "investment APR for the down payment alternative")
	fs.StringVar(&f.csvFile, "csv", "", "export to CSV file (specify filename)")
	fs.StringVar(&f.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	fs.StringVar(&f.outputFormat, "output-format", "", "type of output override: pretty, csv")
	fs.StringVar(&f.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Calculate mortgage costs and equity buildup")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
		fmt.Fprint(fs.Output(), usageExamples)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	if !f.price.IsSet() {
		return nil, errMissingPrice
	}
	return f, nil
}

// resolveInputs layers command-line values over the configured defaults.
func (f *cliFlags) resolveInputs(defaults config.Defaults) (report.Inputs, error) {
	in, err := defaults.Inputs()
	if err != nil {
		return in, err
	}

	in.HousePrice = f.price.Float()
	if f.down.IsSet() {
		in.DownPayment = f.down.Float()
	}
	if f.closing.IsSet() {
		in.ClosingCosts = f.closing.Float()
	}
	if f.hoa.IsSet() {
		in.MonthlyHOA = f.hoa.Float()
	}
	if f.set["rate"] {
		in.MortgageRatePercent = f.rate
	}
	if f.set["term"] {
		in.LoanTermYears = f.term
	}
	if f.set["realtor"] {
		in.RealtorPercent = f.realtor
	}
	if f.set["apr"] {
		in.InvestmentAPRPercent = f.apr
	}
	return in, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	// Load the config file; only an explicitly requested file must exist.
	conf, err := config.LoadOptional(flags.configLocation, flags.set["config"])
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", flags.configLocation, err)
	}

	logger, err := logging.NewLogger(conf.Logging, flags.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if flags.outputFormat != "" {
		outputFormat = flags.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	csvFile := conf.Output.CSVFile
	if flags.csvFile != "" {
		csvFile = flags.csvFile
	}

	in, err := flags.resolveInputs(conf.Defaults)
	if err != nil {
		return fmt.Errorf("invalid configured defaults: %w", err)
	}

	warnings, err := validation.ValidateInputs(in)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main"),
		)
	}

	summary := report.NewBuilder(logger).Build(in)
	if err := summary.CheckFinite(); err != nil {
		return err
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(stdout, summary)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(stdout, summary); err != nil {
			return err
		}
	}

	if csvFile == "" {
		return nil
	}

	filename, err := output.WriteCSVFile(csvFile, summary)
	if err != nil {
		return err
	}
	if outputFormat == constants.OutputFormatPretty {
		output.ExportNotice(stdout, filename)
	} else {
		logger.Info("exported CSV report",
			zap.String("op", "main"),
			zap.String("file", filename),
		)
	}
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
		return
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q}\n", err.Error())
		os.Exit(1)
	}
}
