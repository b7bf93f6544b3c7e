package payslip

import (
	"strings"
	"testing"

	"steuer-chat/internal/taxerror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transferticket text as OCR delivers it, including the mangled
// "20.21" year tokens.
const ocrStatement = `Transferticket: Seite 1 von 1 Abfragedatum: 30.07.20.25 Veranlagungszeitraum: 20.21 Identifikationsnummer: 62 010 574 032 Lohnsteuerbescheinigung Arbeitnehmer Identifikationsnummer 62 010 574 032 eTIN KTNBKVNK98D30F Arbeitgeber Name des Arbeitgebers InStaff  Jobs GmbH Betroffenes Jahr Beschäftigungsjahr 20.21 vom 01.03 bis 30.04 Besteuerungsmerkmale Besteuerungsmerkmale gültig ab 01.03 Steuerklasse 1 Besteuerungsgrundlagen Arbeitslohn Bruttoarbeitslohn 2.033,00 einbehaltene Lohnsteuer 16,75 einbehaltener Solidaritätszuschlag 0,00 Sozialversicherung nachgewiesene Beiträge zur privaten Krankenversicherung und Pflege-Pflichtversicherung 243,96 Sonstige Informationen Übermittlungszeitpunkt der Bescheinigung an die Finanzverwaltung 14.05.20.21 08:59:40`

const cleanStatement = `Veranlagungszeitraum: 2021
Lohnsteuerbescheinigung
Arbeitnehmer Identifikationsnummer 62 010 574 032
Arbeitgeber Name des Arbeitgebers InStaff  Jobs GmbH
Betroffenes Jahr Beschäftigungsjahr 2021 vom 01.03 bis 30.04
Steuerklasse 1
Bruttoarbeitslohn 2.033,00
einbehaltene Lohnsteuer 16,75
einbehaltener Solidaritätszuschlag 0,00`

func TestParseTextOCRStatement(t *testing.T) {
	data, err := ParseText(ocrStatement)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromFloat(2033).Equal(data.GrossIncome),
		"Expected gross 2033 but got %s", data.GrossIncome)
	assert.True(t, decimal.NewFromFloat(16.75).Equal(data.IncomeTaxPaid))
	assert.True(t, data.SolidarityTax.IsZero())
	// The OCR text has no line breaks, so the employer capture runs to
	// the end of the line; the name is still in there.
	assert.Contains(t, data.Employer, "InStaff  Jobs GmbH")
	assert.Equal(t, "User 62 010 574", data.FullName)
	assert.Equal(t, 1, data.TaxClass)

	// OCR mangled every year token, so none is extractable.
	assert.False(t, data.HasYear())
}

func TestParseTextCleanStatement(t *testing.T) {
	data, err := ParseText(cleanStatement)
	require.NoError(t, err)

	assert.Equal(t, 2021, data.Year)
	assert.Equal(t, "01.03 - 30.04", data.EmploymentPeriod)
	assert.Equal(t, 1, data.TaxClass)
	assert.True(t, decimal.NewFromFloat(2033).Equal(data.GrossIncome))
	assert.True(t, decimal.NewFromFloat(16.75).Equal(data.IncomeTaxPaid))
}

func TestParseTextFallbackYear(t *testing.T) {
	data, err := ParseText(`Gehaltsabrechnung 2022
Bruttoarbeitslohn 30.000,00`)
	require.NoError(t, err)
	assert.Equal(t, 2022, data.Year)
	assert.True(t, decimal.NewFromInt(30000).Equal(data.GrossIncome))
}

func TestParseTextEmptyDocument(t *testing.T) {
	_, err := ParseText("nothing useful in here")
	var missing *taxerror.MissingDataError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "year", missing.Field)
}

func TestParseXML(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<Lohnsteuerbescheinigung>
  <Arbeitnehmer><Name>Max Mustermann</Name></Arbeitnehmer>
  <Arbeitgeber><Name>Acme GmbH</Name></Arbeitgeber>
  <Veranlagungszeitraum>2021</Veranlagungszeitraum>
  <Steuerklasse>1</Steuerklasse>
  <Bruttoarbeitslohn>30.000,00</Bruttoarbeitslohn>
  <Lohnsteuer>5.000,00</Lohnsteuer>
  <Solidaritaetszuschlag>0,00</Solidaritaetszuschlag>
</Lohnsteuerbescheinigung>`

	data, err := ParseXML(strings.NewReader(xml))
	require.NoError(t, err)

	assert.Equal(t, "Max Mustermann", data.FullName)
	assert.Equal(t, "Acme GmbH", data.Employer)
	assert.Equal(t, 2021, data.Year)
	assert.Equal(t, 1, data.TaxClass)
	assert.True(t, decimal.NewFromInt(30000).Equal(data.GrossIncome))
	assert.True(t, decimal.NewFromInt(5000).Equal(data.IncomeTaxPaid))
	assert.True(t, data.SolidarityTax.IsZero())
}

func TestParseXMLMalformed(t *testing.T) {
	_, err := ParseXML(strings.NewReader("<Lohnsteuerbescheinigung><open"))
	assert.Error(t, err)
}
