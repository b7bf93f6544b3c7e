// Package export renders a filing record to CSV and XLSX so users can
// archive the breakdown or hand it to a tax advisor.
package export

import (
	"fmt"
	"io"

	"steuer-chat/internal/summary"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

// Row is one exported line of the breakdown.
type Row struct {
	Position string `csv:"position"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
	Details  string `csv:"details"`
}

// rows flattens a record into export lines: the claimed deductions first,
// then the derived totals. Every figure comes straight from the record so
// exports cannot disagree with the summary.
func rows(record summary.Record) []Row {
	out := make([]Row, 0, len(record.Items)+6)

	for _, item := range record.Items {
		out = append(out, Row{
			Position: item.QuestionID,
			Category: item.Category,
			Amount:   item.Amount.StringFixed(2),
			Details:  item.Details,
		})
	}

	out = append(out,
		Row{Position: "gross_income", Amount: record.GrossIncome.StringFixed(2)},
		Row{Position: "total_deductions", Amount: record.TotalDeductions.StringFixed(2)},
		Row{Position: "taxable_income", Amount: record.TaxableIncome.StringFixed(2)},
		Row{Position: "estimated_tax", Amount: record.EstimatedTax.StringFixed(2)},
		Row{Position: "tax_paid", Amount: record.TaxPaid.StringFixed(2)},
		Row{Position: "refund", Amount: record.Refund.StringFixed(2)},
	)
	return out
}

// WriteCSV writes the record breakdown as CSV.
func WriteCSV(record summary.Record, w io.Writer) error {
	if err := gocsv.Marshal(rows(record), w); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return nil
}

// WriteXLSX writes the record breakdown as a single-sheet workbook.
func WriteXLSX(record summary.Record, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := "Filing"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name export sheet: %w", err)
	}

	headers := []string{"Position", "Category", "Amount (EUR)", "Details"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows(record) {
		values := []string{row.Position, row.Category, row.Amount, row.Details}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX export: %w", err)
	}
	return nil
}
