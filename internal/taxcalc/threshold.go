// Package taxcalc implements the statutory tax-free threshold table
// (Grundfreibetrag) and the progressive income tax estimator. Everything
// in this package is pure and stateless.
package taxcalc

import "github.com/shopspring/decimal"

// taxFreeThresholds maps tax years to the Grundfreibetrag in euros.
var taxFreeThresholds = map[int]int64{
	2017: 8820,
	2018: 9000,
	2019: 9168,
	2020: 9408,
	2021: 9744,
	2022: 10347,
	2023: 10908,
	2024: 11604,
	2025: 12300,
}

const (
	minThresholdYear = 2017
	maxThresholdYear = 2025
)

// Threshold returns the tax-free income threshold for the given year.
// Years outside the table clamp to the nearest listed year, so lookups
// never fail.
func Threshold(year int) decimal.Decimal {
	if year < minThresholdYear {
		year = minThresholdYear
	}
	if year > maxThresholdYear {
		year = maxThresholdYear
	}
	return decimal.NewFromInt(taxFreeThresholds[year])
}

// ThresholdYears returns all years with an explicit threshold entry, in
// ascending order.
func ThresholdYears() []int {
	years := make([]int, 0, len(taxFreeThresholds))
	for y := minThresholdYear; y <= maxThresholdYear; y++ {
		if _, ok := taxFreeThresholds[y]; ok {
			years = append(years, y)
		}
	}
	return years
}

// IsBelowThreshold reports whether the income is at or below the
// tax-free threshold for the year. The boundary is inclusive: income
// exactly at the threshold owes no tax.
func IsBelowThreshold(income decimal.Decimal, year int) bool {
	return income.LessThanOrEqual(Threshold(year))
}
