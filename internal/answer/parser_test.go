package answer

import (
	"testing"

	"steuer-chat/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(id string, max int64) models.DeductionQuestion {
	return models.DeductionQuestion{
		ID:        id,
		Prompt:    "Did you have expenses?",
		Category:  models.CategoryWerbungskosten,
		MaxAmount: decimal.NewFromInt(max),
	}
}

func TestParseNegative(t *testing.T) {
	q := question("study_materials", 1500)

	for _, input := range []string{"no", "n", "nein", "false", "0", "none", "n/a", "not applicable", "NA", "  No  "} {
		t.Run(input, func(t *testing.T) {
			ans := Parse(input, q)
			require.NotNil(t, ans)
			assert.False(t, ans.Claimed)
			assert.True(t, ans.Amount.IsZero())
			assert.Equal(t, "No deduction claimed", ans.Details)
		})
	}
}

func TestParseAffirmativeClaimsMaximum(t *testing.T) {
	q := question("tuition_fees", 6000)

	for _, input := range []string{"yes", "y", "ja", "J", "true", "1", " Yes "} {
		t.Run(input, func(t *testing.T) {
			ans := Parse(input, q)
			require.NotNil(t, ans)
			assert.True(t, ans.Claimed)
			assert.True(t, q.MaxAmount.Equal(ans.Amount))
			assert.Contains(t, ans.Details, "Claimed maximum €6000.00")
		})
	}
}

func TestParseCommute(t *testing.T) {
	q := question("commute", 4500)

	tests := []struct {
		name     string
		input    string
		expected decimal.Decimal
		details  string
	}{
		{
			"Distance and days",
			"18km, 210 days",
			decimal.NewFromInt(1134),
			"18 km × 210 days",
		},
		{
			"Distance only assumes working days",
			"30 km",
			decimal.NewFromInt(1980), // 30 * 220 * 0.30
			"assumed 220 working days",
		},
		{
			"Days only assumes distance",
			"200 days",
			decimal.NewFromInt(600), // 10 * 200 * 0.30
			"assumed 10 km distance",
		},
		{
			"German day word",
			"25 km an 180 Tagen",
			decimal.NewFromInt(1350),
			"25 km × 180 days",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ans := Parse(tc.input, q)
			require.NotNil(t, ans)
			assert.True(t, ans.Claimed)
			assert.True(t, tc.expected.Equal(ans.Amount), "Expected %s but got %s", tc.expected, ans.Amount)
			assert.Contains(t, ans.Details, tc.details)
		})
	}
}

func TestParseCommuteCapped(t *testing.T) {
	q := question("commute", 4500)

	// 80 km at 220 days is 5280, above the cap.
	ans := Parse("80km", q)
	require.NotNil(t, ans)
	assert.True(t, decimal.NewFromInt(4500).Equal(ans.Amount))
	assert.Contains(t, ans.Details, "capped from €5280.00 at €4500.00")
}

func TestParseSingleAmount(t *testing.T) {
	q := question("work_equipment", 1500)

	tests := []struct {
		name     string
		input    string
		expected decimal.Decimal
	}{
		{"Bare number", "800", decimal.NewFromInt(800)},
		{"Euro prefix", "I spent about €950", decimal.NewFromInt(950)},
		{"Comma decimal", "123,45", decimal.NewFromFloat(123.45)},
		{"German grouped", "1.200,50 for a laptop", decimal.NewFromFloat(1200.50)},
		{"German dot grouping without decimals", "I paid 1.500 for tuition", decimal.NewFromInt(1500)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ans := Parse(tc.input, q)
			require.NotNil(t, ans)
			assert.True(t, ans.Claimed)
			assert.True(t, tc.expected.Equal(ans.Amount), "Expected %s but got %s", tc.expected, ans.Amount)
		})
	}
}

func TestParseSumsMultipleAmounts(t *testing.T) {
	q := question("study_materials", 1500)

	ans := Parse("1040 for a laptop, 95 for books", q)
	require.NotNil(t, ans)
	assert.True(t, ans.Claimed)
	assert.True(t, decimal.NewFromInt(1135).Equal(ans.Amount))
	assert.Contains(t, ans.Details, "sum of 1040 + 95")
}

func TestParseClampsToMaximum(t *testing.T) {
	q := question("study_materials", 1000)

	ans := Parse("50000", q)
	require.NotNil(t, ans)
	assert.True(t, ans.Claimed)
	assert.True(t, decimal.NewFromInt(1000).Equal(ans.Amount))
	assert.Contains(t, ans.Details, "capped from €50000.00 at €1000.00")
}

func TestParseClampsSingleItem(t *testing.T) {
	q := question("work_equipment", 1000)

	ans := Parse("1040 for laptop", q)
	require.NotNil(t, ans)
	assert.True(t, decimal.NewFromInt(1000).Equal(ans.Amount))
	assert.Contains(t, ans.Details, "capped from €1040.00")
}

func TestParseZeroAmountIsNoClaim(t *testing.T) {
	q := question("training", 4000)

	ans := Parse("I paid 0 euros this year", q)
	require.NotNil(t, ans)
	assert.False(t, ans.Claimed)
	assert.True(t, ans.Amount.IsZero())
	assert.Equal(t, "No deduction claimed", ans.Details)
}

func TestParseUnparseable(t *testing.T) {
	q := question("training", 4000)

	for _, input := range []string{"", "   ", "maybe later", "hmm not sure", "what does this mean?"} {
		t.Run(input, func(t *testing.T) {
			assert.Nil(t, Parse(input, q))
		})
	}
}

func TestParseReplacesNotAccumulates(t *testing.T) {
	// Parsing is stateless: the same input always yields the same claim.
	q := question("commute", 4500)
	first := Parse("18km, 210 days", q)
	second := Parse("18km, 210 days", q)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Amount.Equal(second.Amount))
}
