package taxcalc

import "github.com/shopspring/decimal"

// bracket is one zone of the piecewise-linear schedule: the marginal rate
// applies to income between the previous bracket's upper bound and this
// one's. An upper bound of 0 marks the open-ended top zone.
type bracket struct {
	upper int64
	rate  string
}

// bracketTables holds the per-year schedules. Marginal rates are constant
// within each zone, which makes the total tax continuous at every zone
// boundary by construction.
var bracketTables = map[int][]bracket{
	2020: {
		{9408, "0"},
		{14532, "0.14"},
		{57051, "0.24"},
		{270500, "0.42"},
		{0, "0.45"},
	},
	2021: {
		{9744, "0"},
		{14753, "0.14"},
		{57918, "0.24"},
		{274612, "0.42"},
		{0, "0.45"},
	},
	2022: {
		{10347, "0"},
		{14926, "0.14"},
		{58596, "0.24"},
		{277825, "0.42"},
		{0, "0.45"},
	},
	2023: {
		{10908, "0"},
		{15999, "0.14"},
		{62809, "0.24"},
		{277825, "0.42"},
		{0, "0.45"},
	},
	2024: {
		{11604, "0"},
		{17005, "0.14"},
		{66760, "0.24"},
		{277825, "0.42"},
		{0, "0.45"},
	},
	2025: {
		{12300, "0"},
		{17430, "0.14"},
		{68480, "0.24"},
		{277825, "0.42"},
		{0, "0.45"},
	},
}

// flatFallbackRate approximates the tax for years without an explicit
// bracket table.
var flatFallbackRate = decimal.RequireFromString("0.15")

// BracketYears returns all years with an explicit bracket table, in
// ascending order.
func BracketYears() []int {
	years := make([]int, 0, len(bracketTables))
	for y := 2020; y <= 2025; y++ {
		if _, ok := bracketTables[y]; ok {
			years = append(years, y)
		}
	}
	return years
}

// BracketBounds returns the zone upper bounds for a year with an explicit
// table, excluding the open-ended top zone. The second return value is
// false for years covered only by the flat fallback.
func BracketBounds(year int) ([]int64, bool) {
	table, ok := bracketTables[year]
	if !ok {
		return nil, false
	}
	bounds := make([]int64, 0, len(table)-1)
	for _, b := range table {
		if b.upper > 0 {
			bounds = append(bounds, b.upper)
		}
	}
	return bounds, true
}

// Estimate returns the estimated income tax owed on the taxable income
// for the given year, rounded to cents. Negative taxable income owes
// nothing. Years without bracket data use a flat 15% approximation.
func Estimate(taxableIncome decimal.Decimal, year int) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	table, ok := bracketTables[year]
	if !ok {
		return taxableIncome.Mul(flatFallbackRate).Round(2)
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range table {
		rate := decimal.RequireFromString(b.rate)
		if b.upper == 0 {
			// Open-ended top zone
			tax = tax.Add(taxableIncome.Sub(lower).Mul(rate))
			break
		}
		upper := decimal.NewFromInt(b.upper)
		if taxableIncome.LessThanOrEqual(upper) {
			tax = tax.Add(taxableIncome.Sub(lower).Mul(rate))
			break
		}
		tax = tax.Add(upper.Sub(lower).Mul(rate))
		lower = upper
	}

	return tax.Round(2)
}
