// Package amounts provides euro amount parsing and formatting used
// throughout the application. It understands both German conventions
// (1.234,56) and plain decimal notation (1234.56).
package amounts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarkers = regexp.MustCompile(`(?i)[€$£]|EUR|\s`)
	// German thousands grouping without a decimal comma, e.g. "1.500".
	groupedDots = regexp.MustCompile(`^-?\d{1,3}(?:\.\d{3})+$`)
)

// ParseAmount parses a string representation of a euro amount into a
// decimal value. It handles formats like "1.234,56", "1234,56", "1234.56"
// and "€1.234,56". Empty strings parse to zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if amountStr == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts German and mixed currency string formats to a
// plain form that decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarkers.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// German format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// English thousands format (1,234.56)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if strings.Contains(amountStr, ",") {
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// Comma as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma as thousands separator (1,234)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	} else if groupedDots.MatchString(amountStr) {
		// Dot-only grouping (1.500) is a thousands separator, not a
		// decimal point.
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	return amountStr
}

// FormatEuro formats a decimal amount for display with two decimal places,
// e.g. "€1134.00".
func FormatEuro(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}
