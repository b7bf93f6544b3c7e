// Package summary renders a completed interview into two artifacts that
// must always agree numerically: a human-readable breakdown and a stable
// record for persistence and audit.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"steuer-chat/internal/amounts"
	"steuer-chat/internal/models"

	"github.com/shopspring/decimal"
)

// Input is everything the composer needs from a finished session.
type Input struct {
	SessionID  string
	Status     models.EmploymentStatus
	Extracted  models.ExtractedData
	Questions  []models.DeductionQuestion
	Answers    map[string]models.DeductionAnswer
	Calc       models.TaxCalculation
	Profile    *models.UserProfile
	FiledYears []int
	FiledAt    time.Time
}

// Item is one claimed deduction line in the record.
type Item struct {
	QuestionID string          `json:"question_id" csv:"question_id"`
	Category   string          `json:"category" csv:"category"`
	Claimed    bool            `json:"claimed" csv:"claimed"`
	Amount     decimal.Decimal `json:"amount" csv:"amount"`
	Details    string          `json:"details" csv:"details"`
}

// Record is the stable machine-readable filing record.
type Record struct {
	SessionID        string          `json:"session_id"`
	Year             int             `json:"year"`
	FiledAt          time.Time       `json:"filed_at"`
	EmploymentStatus string          `json:"employment_status,omitempty"`
	FullName         string          `json:"full_name,omitempty"`
	Employer         string          `json:"employer,omitempty"`
	GrossIncome      decimal.Decimal `json:"gross_income"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	LossCarryforward decimal.Decimal `json:"loss_carryforward"`
	TaxableIncome    decimal.Decimal `json:"taxable_income"`
	Threshold        decimal.Decimal `json:"threshold"`
	BelowThreshold   bool            `json:"below_threshold"`
	EstimatedTax     decimal.Decimal `json:"estimated_tax"`
	TaxPaid          decimal.Decimal `json:"tax_paid"`
	SolidarityTax    decimal.Decimal `json:"solidarity_tax"`
	Refund           decimal.Decimal `json:"refund"`
	Items            []Item          `json:"items"`
	Notes            []string        `json:"notes,omitempty"`
}

// Compose renders both artifacts from one input, so the text and the
// record cannot drift apart numerically.
func Compose(in Input) (string, Record) {
	record := buildRecord(in)
	return renderText(in, record), record
}

func buildRecord(in Input) Record {
	items := make([]Item, 0, len(in.Questions))
	for _, q := range in.Questions {
		ans, ok := in.Answers[q.ID]
		if !ok || !ans.Claimed {
			continue
		}
		items = append(items, Item{
			QuestionID: q.ID,
			Category:   q.Category,
			Claimed:    true,
			Amount:     ans.Amount,
			Details:    ans.Details,
		})
	}

	return Record{
		SessionID:        in.SessionID,
		Year:             in.Calc.Year,
		FiledAt:          in.FiledAt,
		EmploymentStatus: string(in.Status),
		FullName:         in.Extracted.FullName,
		Employer:         in.Extracted.Employer,
		GrossIncome:      in.Calc.GrossIncome,
		TotalDeductions:  in.Calc.TotalDeductions,
		LossCarryforward: in.Calc.LossCarryforward,
		TaxableIncome:    in.Calc.TaxableIncome,
		Threshold:        in.Calc.Threshold,
		BelowThreshold:   in.Calc.BelowThreshold,
		EstimatedTax:     in.Calc.EstimatedTax,
		TaxPaid:          in.Calc.TaxPaid,
		SolidarityTax:    in.Calc.SolidarityTax,
		Refund:           in.Calc.Refund,
		Items:            items,
		Notes:            personalNotes(in),
	}
}

func renderText(in Input, record Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Tax summary for %d\n\n", record.Year)

	if record.BelowThreshold {
		fmt.Fprintf(&b, "Your gross income of %s is below the tax-free threshold of %s.\n",
			amounts.FormatEuro(record.GrossIncome), amounts.FormatEuro(record.Threshold))
		fmt.Fprintf(&b, "You are likely eligible for a full refund of your paid income tax: %s.\n",
			amounts.FormatEuro(record.Refund))
	} else {
		fmt.Fprintf(&b, "Gross income: %s\n", amounts.FormatEuro(record.GrossIncome))
		if len(record.Items) == 0 {
			b.WriteString("No deductions claimed.\n")
		} else {
			b.WriteString("Deductions claimed:\n")
			for _, item := range record.Items {
				fmt.Fprintf(&b, "  - %s (%s): %s\n", item.QuestionID, item.Category,
					amounts.FormatEuro(item.Amount))
			}
		}
		fmt.Fprintf(&b, "Total deductions: %s\n", amounts.FormatEuro(record.TotalDeductions))
		if record.LossCarryforward.GreaterThan(decimal.Zero) {
			fmt.Fprintf(&b, "Loss carryforward applied: %s\n", amounts.FormatEuro(record.LossCarryforward))
		}
		fmt.Fprintf(&b, "Taxable income: %s (threshold for %d: %s)\n",
			amounts.FormatEuro(record.TaxableIncome), record.Year, amounts.FormatEuro(record.Threshold))
		fmt.Fprintf(&b, "Estimated tax: %s\n", amounts.FormatEuro(record.EstimatedTax))
		fmt.Fprintf(&b, "Income tax paid: %s\n", amounts.FormatEuro(record.TaxPaid))
		fmt.Fprintf(&b, "Estimated refund: %s\n", amounts.FormatEuro(record.Refund))
	}

	if len(record.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, note := range record.Notes {
			fmt.Fprintf(&b, "  - %s\n", note)
		}
	}

	if suggestion := filingSuggestion(record.Year, in.FiledYears); suggestion != "" {
		b.WriteString("\n" + suggestion + "\n")
	}

	return b.String()
}

// personalNotes derives wording hints from the employment status and the
// optional user profile. Notes never carry figures that are not already
// in the record.
func personalNotes(in Input) []string {
	var notes []string

	switch in.Status {
	case models.StatusBachelorStudent:
		notes = append(notes, "First-degree study costs count as Sonderausgaben and only offset income in the same year.")
	case models.StatusMasterStudent:
		notes = append(notes, "Master study costs are Werbungskosten; unused amounts can be carried forward as Verlustvortrag.")
	case models.StatusGraduatedSameYear:
		notes = append(notes, "Costs from before your first job may still count as Werbungskosten for this year.")
	}

	if in.Profile != nil {
		if strings.EqualFold(in.Profile.MaritalStatus, "married") {
			notes = append(notes, "As a married filer, joint assessment (Zusammenveranlagung) may improve your refund.")
		}
		if in.Profile.Age >= 64 {
			notes = append(notes, "From age 64 the Altersentlastungsbetrag may reduce your taxable income further.")
		}
		if in.Profile.JobType != "" {
			notes = append(notes, fmt.Sprintf("Deductions were reviewed for your job type: %s.", in.Profile.JobType))
		}
	}

	return notes
}

// filingSuggestion proposes adjacent unfiled years, mirroring the
// "file another year" follow-up of the conversation.
func filingSuggestion(year int, filedYears []int) string {
	filed := make(map[int]bool, len(filedYears)+1)
	for _, y := range filedYears {
		filed[y] = true
	}
	filed[year] = true

	var open []string
	for _, candidate := range []int{year - 1, year + 1} {
		if !filed[candidate] {
			open = append(open, fmt.Sprintf("%d", candidate))
		}
	}

	years := make([]int, 0, len(filed))
	for y := range filed {
		years = append(years, y)
	}
	sort.Ints(years)
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprintf("%d", y)
	}

	s := fmt.Sprintf("You have filed for: %s.", strings.Join(parts, ", "))
	if len(open) > 0 {
		s += fmt.Sprintf(" Would you like to file a tax return for another year? %s still look open.",
			strings.Join(open, " and "))
	} else {
		s += " Would you like to file a tax return for another year?"
	}
	return s
}
