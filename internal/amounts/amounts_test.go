package amounts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Empty string", "", decimal.Zero, false},
		{"Simple decimal", "123.45", decimal.NewFromFloat(123.45), false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"Comma decimal separator", "123,45", decimal.NewFromFloat(123.45), false},
		{"German format", "1.234,56", decimal.NewFromFloat(1234.56), false},
		{"German dot grouping without decimals", "1.500", decimal.NewFromInt(1500), false},
		{"German dot grouping with millions", "1.234.567", decimal.NewFromInt(1234567), false},
		{"English thousands format", "1,234.56", decimal.NewFromFloat(1234.56), false},
		{"Comma thousands without decimals", "1,234", decimal.NewFromInt(1234), false},
		{"With euro symbol", "€123.45", decimal.NewFromFloat(123.45), false},
		{"With EUR code", "EUR 123.45", decimal.NewFromFloat(123.45), false},
		{"With spaces", "  123.45  ", decimal.NewFromFloat(123.45), false},
		{"German grouped payslip amount", "2.033,00", decimal.NewFromFloat(2033), false},
		{"Malformed decimal", "123.45.67", decimal.Zero, true},
		{"Non-numeric", "abc", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
			}
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple decimal", "123.45", "123.45"},
		{"Comma decimal separator", "123,45", "123.45"},
		{"German format", "1.234,56", "1234.56"},
		{"German dot grouping without decimals", "1.500", "1500"},
		{"Plain decimal stays a decimal", "1.50", "1.50"},
		{"English thousands format", "1,234.56", "1234.56"},
		{"Comma thousands without decimals", "12,345", "12345"},
		{"With euro symbol", "€123.45", "123.45"},
		{"With spaces", "  123.45  ", "123.45"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "€1134.00", FormatEuro(decimal.NewFromInt(1134)))
	assert.Equal(t, "€0.00", FormatEuro(decimal.Zero))
	assert.Equal(t, "€1234.50", FormatEuro(decimal.NewFromFloat(1234.5)))
}
