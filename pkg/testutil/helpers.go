// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/loans"
)

// FindRow finds the comparison row for year in the summary rows.
// Returns a pointer to the row if found, nil otherwise.
func FindRow(rows []report.YearRow, year int) *report.YearRow {
	for i := range rows {
		if rows[i].Year == year {
			return &rows[i]
		}
	}
	return nil
}

// FindScheduleYear finds the amortization record for year.
// Returns a pointer to the record if found, nil otherwise.
func FindScheduleYear(schedule []loans.YearlyRecord, year int) *loans.YearlyRecord {
	for i := range schedule {
		if schedule[i].Year == year {
			return &schedule[i]
		}
	}
	return nil
}
