// Package payslip extracts tax-relevant fields from German wage tax
// statements (Lohnsteuerbescheinigung). It plays the extraction
// collaborator role: the interview core only ever sees the resulting
// ExtractedData.
package payslip

import (
	"regexp"
	"strconv"
	"strings"

	"steuer-chat/internal/amounts"
	"steuer-chat/internal/config"
	"steuer-chat/internal/models"
	"steuer-chat/internal/taxerror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	yearPattern         = regexp.MustCompile(`Veranlagungszeitraum:\s*(\d{4})`)
	fallbackYearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	employerPattern     = regexp.MustCompile(`Arbeitgeber\s+Name des Arbeitgebers\s+([^\n]+)`)
	idNumberPattern     = regexp.MustCompile(`Identifikationsnummer\s+(\d+\s+\d+\s+\d+)`)
	taxClassPattern     = regexp.MustCompile(`Steuerklasse\s+(\d+)`)
	periodPattern       = regexp.MustCompile(`Beschäftigungsjahr\s+\d{4}\s+vom\s+(\d{2}\.\d{2})\s+bis\s+(\d{2}\.\d{2})`)
	grossPattern        = regexp.MustCompile(`Bruttoarbeitslohn\s+([\d.,]+)`)
	taxPaidPattern      = regexp.MustCompile(`einbehaltene Lohnsteuer\s+([\d.,]+)`)
	solidarityPattern   = regexp.MustCompile(`einbehaltener Solidaritätszuschlag\s+([\d.,]+)`)
)

// ParseText extracts ExtractedData from raw statement text. Numeric
// fields default to zero when absent; a document with neither a year nor
// any amount yields a MissingDataError.
func ParseText(text string) (models.ExtractedData, error) {
	data := models.ExtractedData{
		GrossIncome:      decimal.Zero,
		IncomeTaxPaid:    decimal.Zero,
		SolidarityTax:    decimal.Zero,
		LossCarryforward: decimal.Zero,
	}

	if m := yearPattern.FindStringSubmatch(text); m != nil {
		data.Year, _ = strconv.Atoi(m[1])
	}

	if m := employerPattern.FindStringSubmatch(text); m != nil {
		data.Employer = strings.TrimSpace(m[1])
	}

	if m := idNumberPattern.FindStringSubmatch(text); m != nil {
		data.FullName = "User " + m[1]
	}

	if m := taxClassPattern.FindStringSubmatch(text); m != nil {
		data.TaxClass, _ = strconv.Atoi(m[1])
	}

	if m := periodPattern.FindStringSubmatch(text); m != nil {
		data.EmploymentPeriod = m[1] + " - " + m[2]
	}

	foundAmount := false
	if amount, ok := parseAmountMatch(grossPattern, text); ok {
		data.GrossIncome = amount
		foundAmount = true
	}
	if amount, ok := parseAmountMatch(taxPaidPattern, text); ok {
		data.IncomeTaxPaid = amount
		foundAmount = true
	}
	if amount, ok := parseAmountMatch(solidarityPattern, text); ok {
		data.SolidarityTax = amount
		foundAmount = true
	}

	// Last resort for the year: any 4-digit year-looking token.
	if data.Year == 0 {
		if m := fallbackYearPattern.FindString(text); m != "" {
			data.Year, _ = strconv.Atoi(m)
		}
	}

	if data.Year == 0 && !foundAmount {
		return data, &taxerror.MissingDataError{Field: "year", Step: "extract"}
	}

	log.WithFields(logrus.Fields{
		"year":         data.Year,
		"gross_income": data.GrossIncome.String(),
	}).Debug("Parsed wage tax statement text")

	return data, nil
}

func parseAmountMatch(pattern *regexp.Regexp, text string) (decimal.Decimal, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	amount, err := amounts.ParseAmount(m[1])
	if err != nil {
		log.Warnf("Unparseable amount '%s' in statement", m[1])
		return decimal.Zero, false
	}
	return amount, true
}
