package payslip

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"steuer-chat/internal/amounts"
	"steuer-chat/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"
)

// XPath locations in the XML wage tax statement format.
const (
	xpathName       = "/Lohnsteuerbescheinigung/Arbeitnehmer/Name"
	xpathEmployer   = "/Lohnsteuerbescheinigung/Arbeitgeber/Name"
	xpathYear       = "/Lohnsteuerbescheinigung/Veranlagungszeitraum"
	xpathGross      = "/Lohnsteuerbescheinigung/Bruttoarbeitslohn"
	xpathTaxPaid    = "/Lohnsteuerbescheinigung/Lohnsteuer"
	xpathSolidarity = "/Lohnsteuerbescheinigung/Solidaritaetszuschlag"
	xpathTaxClass   = "/Lohnsteuerbescheinigung/Steuerklasse"
)

// ParseXML extracts ExtractedData from an XML wage tax statement.
func ParseXML(r io.Reader) (models.ExtractedData, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return models.ExtractedData{}, fmt.Errorf("failed to parse statement XML: %w", err)
	}

	data := models.ExtractedData{
		GrossIncome:      decimal.Zero,
		IncomeTaxPaid:    decimal.Zero,
		SolidarityTax:    decimal.Zero,
		LossCarryforward: decimal.Zero,
	}

	data.FullName = extractString(root, xpathName)
	data.Employer = extractString(root, xpathEmployer)

	if v := extractString(root, xpathYear); v != "" {
		data.Year, _ = strconv.Atoi(v)
	}
	if v := extractString(root, xpathTaxClass); v != "" {
		data.TaxClass, _ = strconv.Atoi(v)
	}

	data.GrossIncome = extractAmount(root, xpathGross)
	data.IncomeTaxPaid = extractAmount(root, xpathTaxPaid)
	data.SolidarityTax = extractAmount(root, xpathSolidarity)

	return data, nil
}

func extractString(root *xmlpath.Node, xpath string) string {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return ""
	}
	if value, ok := path.String(root); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func extractAmount(root *xmlpath.Node, xpath string) decimal.Decimal {
	raw := extractString(root, xpath)
	if raw == "" {
		return decimal.Zero
	}
	amount, err := amounts.ParseAmount(raw)
	if err != nil {
		log.Warnf("Unparseable amount '%s' at %s", raw, xpath)
		return decimal.Zero
	}
	return amount
}
