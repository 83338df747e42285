// Package output provides utilities for formatting and exporting mortgage reports.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ruleWidth = 60

var (
	heavyRule = strings.Repeat("=", ruleWidth)
	lightRule = strings.Repeat("-", ruleWidth)
)

// displayPrinter renders whole-dollar amounts rounded to the display increment.
type displayPrinter struct {
	p *message.Printer
}

func newDisplayPrinter() displayPrinter {
	return displayPrinter{p: message.NewPrinter(language.English)}
}

// amount rounds value to the nearest display increment and groups thousands.
func (d displayPrinter) amount(value float64) string {
	return d.p.Sprintf("%.0f", mathutil.RoundToNearest(value, constants.DisplayRoundingIncrement))
}

// PrettyFormat outputs a human-readable report. Currency values are rounded
// to the nearest $50; the summary itself is never modified.
func PrettyFormat(w io.Writer, s *report.Summary) {
	d := newDisplayPrinter()
	in := s.Inputs

	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "MORTGAGE CALCULATOR")
	fmt.Fprintln(w, heavyRule)

	fmt.Fprintf(w, "\n%s\n", heavyRule)
	fmt.Fprintln(w, "COST BREAKDOWN")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "\nHouse Price:              $%s\n", d.amount(in.HousePrice))
	fmt.Fprintf(w, "Down Payment:             $%s\n", d.amount(in.DownPayment))
	fmt.Fprintf(w, "Closing Costs:            $%s\n", d.amount(in.ClosingCosts))
	fmt.Fprintf(w, "Realtor Cost (%s):     $%s\n", format.Percent(in.RealtorPercent), d.amount(s.RealtorCost))
	fmt.Fprintf(w, "Loan Amount:              $%s\n", d.amount(s.LoanAmount))
	fmt.Fprintf(w, "Mortgage Rate:            %s\n", format.Percent(in.MortgageRatePercent))
	fmt.Fprintf(w, "Loan Term:                %s\n", format.Years(in.LoanTermYears))
	fmt.Fprintf(w, "Investment APR:           %s\n", format.Percent(in.InvestmentAPRPercent))

	writeCostSection(w, d, "MONTHLY COSTS", s.Monthly, true)
	writeCostSection(w, d, "ANNUAL COSTS", s.Annual, false)

	fmt.Fprintf(w, "\n%s\n", heavyRule)
	fmt.Fprintln(w, "EQUITY BUILDUP BY YEAR")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "%-6s %-14s %-14s %-14s %-14s\n", "Year", "New Equity", "Interest Paid", "Total Equity", "Investment Alt")
	fmt.Fprintln(w, lightRule)
	for _, row := range s.Rows {
		fmt.Fprintf(w, "%-6d $%11s  $%11s  $%11s  $%11s\n",
			row.Year,
			d.amount(row.NewEquity),
			d.amount(row.InterestPaid),
			d.amount(row.TotalEquity),
			d.amount(row.InvestmentValue),
		)
	}
	fmt.Fprintln(w, heavyRule)

	fmt.Fprintf(w, "\nTotal Interest Paid Over %d Years: $%s\n", in.LoanTermYears, d.amount(s.TotalInterestPaid))
	fmt.Fprintf(w, "Total Amount Paid: $%s\n", d.amount(s.TotalAmountPaid))
	fmt.Fprintln(w, heavyRule)
}

func writeCostSection(w io.Writer, d displayPrinter, title string, costs report.Costs, showRates bool) {
	taxLabel, insuranceLabel := "Property Tax:", "Home Insurance:"
	if showRates {
		taxLabel, insuranceLabel = "Property Tax (1.2%):", "Home Insurance (0.4%):"
	}

	fmt.Fprintf(w, "\n%s\n", lightRule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, lightRule)
	fmt.Fprintf(w, "%-26s$%s\n", "Mortgage (P&I):", d.amount(costs.Mortgage))
	fmt.Fprintf(w, "%-26s$%s\n", taxLabel, d.amount(costs.PropertyTax))
	fmt.Fprintf(w, "%-26s$%s\n", insuranceLabel, d.amount(costs.Insurance))
	fmt.Fprintf(w, "%-26s$%s\n", "HOA Fee:", d.amount(costs.HOA))
	fmt.Fprintln(w, lightRule)
	fmt.Fprintf(w, "%-26s$%s\n", "TOTAL "+strings.TrimSuffix(title, " COSTS")+":", d.amount(costs.Total))
}

// CsvFormat writes the report in comma-separated value format with
// full-cent precision.
func CsvFormat(w io.Writer, s *report.Summary) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	for _, record := range csvRecords(s) {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportNotice reports a completed CSV export in the console layout.
func ExportNotice(w io.Writer, filename string) {
	fmt.Fprintf(w, "\nData successfully exported to: %s\n", filename)
	fmt.Fprintln(w, heavyRule)
}

// CsvString returns the CSV rendering of the report.
func CsvString(s *report.Summary) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteCSVFile writes the CSV report to path, appending the .csv extension
// when missing, and returns the name of the file written.
func WriteCSVFile(path string, s *report.Summary) (string, error) {
	filename := path
	if !strings.HasSuffix(filename, constants.CSVExtension) {
		filename += constants.CSVExtension
	}

	f, err := os.Create(filename)
	if err != nil {
		return filename, fmt.Errorf("failed to create CSV file %s: %w", filename, err)
	}

	if err := CsvFormat(f, s); err != nil {
		_ = f.Close()
		return filename, err
	}
	if err := f.Close(); err != nil {
		return filename, fmt.Errorf("failed to close CSV file %s: %w", filename, err)
	}
	return filename, nil
}

func csvRecords(s *report.Summary) [][]string {
	in := s.Inputs
	c := format.Currency

	records := [][]string{
		{"MORTGAGE SUMMARY"},
		{"House Price", c(in.HousePrice)},
		{"Down Payment", c(in.DownPayment)},
		{"Closing Costs", c(in.ClosingCosts)},
		{"Realtor Cost", c(s.RealtorCost)},
		{"Loan Amount", c(s.LoanAmount)},
		{"Mortgage Rate", format.Percent(in.MortgageRatePercent)},
		{"Loan Term", format.Years(in.LoanTermYears)},
		{"Investment APR", format.Percent(in.InvestmentAPRPercent)},
		{},
		{"MONTHLY COSTS"},
		{"Mortgage (P&I)", c(s.Monthly.Mortgage)},
		{"Property Tax (1.2%)", c(s.Monthly.PropertyTax)},
		{"Home Insurance (0.4%)", c(s.Monthly.Insurance)},
		{"HOA Fee", c(s.Monthly.HOA)},
		{"TOTAL MONTHLY", c(s.Monthly.Total)},
		{},
		{"ANNUAL COSTS"},
		{"Mortgage (P&I)", c(s.Annual.Mortgage)},
		{"Property Tax", c(s.Annual.PropertyTax)},
		{"Home Insurance", c(s.Annual.Insurance)},
		{"HOA Fee", c(s.Annual.HOA)},
		{"TOTAL ANNUAL", c(s.Annual.Total)},
		{},
		{"EQUITY BUILDUP BY YEAR"},
		{"Year", "Principal Paid", "Interest Paid", "New Equity", "Total Equity", "Remaining Balance", "Investment Value (Alternative)"},
	}

	for _, row := range s.Rows {
		records = append(records, []string{
			strconv.Itoa(row.Year),
			c(row.PrincipalPaid),
			c(row.InterestPaid),
			c(row.NewEquity),
			c(row.TotalEquity),
			c(row.RemainingBalance),
			c(row.InvestmentValue),
		})
	}

	records = append(records,
		[]string{},
		[]string{"TOTALS"},
		[]string{"Total Interest Paid", c(s.TotalInterestPaid)},
		[]string{"Total Amount Paid", c(s.TotalAmountPaid)},
	)
	return records
}
