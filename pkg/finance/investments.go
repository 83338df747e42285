// Package finance projects the alternative-investment side of the rent-versus-buy
// comparison.
package finance

import (
	"math"

	"go.uber.org/zap"
)

const percentDivisor = 100.0

func percentToDecimal(percent float64) float64 {
	return percent / percentDivisor
}

// GrowthRecord holds the projected value of an investment at the end of a year.
type GrowthRecord struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// GrowthProjector computes compounded investment values.
type GrowthProjector struct {
	logger *zap.Logger
}

// NewGrowthProjector creates a projector for investment growth calculations.
func NewGrowthProjector(logger *zap.Logger) *GrowthProjector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrowthProjector{logger: logger}
}

// Project returns termYears+1 records for years 0 through termYears. Year 0 is
// the initial amount untouched; every later year is computed from the closed
// form initial*(1+apr)^year rather than from the previous record.
func (gp *GrowthProjector) Project(initial, annualRatePercent float64, termYears int) []GrowthRecord {
	if termYears < 0 {
		termYears = 0
	}

	growthFactor := 1 + percentToDecimal(annualRatePercent)
	records := make([]GrowthRecord, 0, termYears+1)
	records = append(records, GrowthRecord{Year: 0, Value: initial})

	for year := 1; year <= termYears; year++ {
		records = append(records, GrowthRecord{
			Year:  year,
			Value: initial * math.Pow(growthFactor, float64(year)),
		})
	}

	gp.logger.Debug("projected investment growth",
		zap.String("op", "finance.Project"),
		zap.Float64("initial", initial),
		zap.Float64("apr", annualRatePercent),
		zap.Int("years", termYears),
		zap.Float64("finalValue", records[len(records)-1].Value),
	)

	return records
}

// ValueAt returns the projected value for the given year, or zero when the
// year falls outside the projection.
func ValueAt(records []GrowthRecord, year int) float64 {
	if year < 0 || year >= len(records) {
		return 0
	}
	return records[year].Value
}
