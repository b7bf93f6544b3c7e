// Package models defines the core data types of the tax interview:
// extracted payslip data, employment statuses, deduction questions and
// answers, and the derived tax calculation.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EmploymentStatus identifies which deduction question sequence applies
// to a filing. It is selected exactly once per filing year.
type EmploymentStatus string

const (
	StatusBachelorStudent   EmploymentStatus = "bachelor-student"
	StatusMasterStudent     EmploymentStatus = "master-student"
	StatusGraduatedSameYear EmploymentStatus = "graduated-same-year"
	StatusFullTimeEmployee  EmploymentStatus = "full-time-employee"
)

// AllStatuses lists every valid employment status in presentation order.
func AllStatuses() []EmploymentStatus {
	return []EmploymentStatus{
		StatusBachelorStudent,
		StatusMasterStudent,
		StatusGraduatedSameYear,
		StatusFullTimeEmployee,
	}
}

// statusAliases maps common free-text spellings to canonical statuses.
var statusAliases = map[string]EmploymentStatus{
	"bachelor-student":    StatusBachelorStudent,
	"bachelor":            StatusBachelorStudent,
	"bachelor student":    StatusBachelorStudent,
	"master-student":      StatusMasterStudent,
	"master":              StatusMasterStudent,
	"master student":      StatusMasterStudent,
	"graduated-same-year": StatusGraduatedSameYear,
	"graduate":            StatusGraduatedSameYear,
	"graduated":           StatusGraduatedSameYear,
	"graduated this year": StatusGraduatedSameYear,
	"full-time-employee":  StatusFullTimeEmployee,
	"employee":            StatusFullTimeEmployee,
	"full-time":           StatusFullTimeEmployee,
	"full time employee":  StatusFullTimeEmployee,
}

// ParseEmploymentStatus maps user input to a canonical employment status.
// The second return value is false when the input matches no known status.
func ParseEmploymentStatus(input string) (EmploymentStatus, bool) {
	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(input))]
	return status, ok
}

// ExtractedData holds the financial facts derived from uploaded documents
// for one filer and year. It is immutable once confirmed for a session and
// replaced wholesale if different documents are uploaded.
type ExtractedData struct {
	FullName         string          `json:"full_name,omitempty"`
	Employer         string          `json:"employer,omitempty"`
	GrossIncome      decimal.Decimal `json:"gross_income"`
	IncomeTaxPaid    decimal.Decimal `json:"income_tax_paid"`
	SolidarityTax    decimal.Decimal `json:"solidarity_tax"`
	LossCarryforward decimal.Decimal `json:"loss_carryforward"`
	TaxClass         int             `json:"tax_class,omitempty"`
	EmploymentPeriod string          `json:"employment_period,omitempty"`
	Year             int             `json:"year"`
}

// HasYear reports whether the tax year is present as a 4-digit value.
// Threshold and bracket lookups are blocked without it.
func (d ExtractedData) HasYear() bool {
	return d.Year >= 1000 && d.Year <= 9999
}

// Deduction categories used by the question catalog.
const (
	CategoryWerbungskosten     = "Werbungskosten"
	CategorySonderausgaben     = "Sonderausgaben"
	CategorySozialversicherung = "Sozialversicherung"
)

// DeductionQuestion is a static catalog entry. Never mutated at runtime.
type DeductionQuestion struct {
	ID        string          `json:"id"`
	Prompt    string          `json:"prompt"`
	Category  string          `json:"category"`
	MaxAmount decimal.Decimal `json:"max_amount"`
}

// DeductionAnswer is the structured result of one answered question.
// Amounts are already clamped to the question's maximum.
type DeductionAnswer struct {
	QuestionID string          `json:"question_id"`
	Claimed    bool            `json:"claimed"`
	Amount     decimal.Decimal `json:"amount"`
	Details    string          `json:"details"`
}

// TaxCalculation is a pure projection of ExtractedData plus the current
// answer set; it carries no state of its own and is recomputed on demand.
type TaxCalculation struct {
	Year             int             `json:"year"`
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
}

// UserProfile carries optional attributes used only to personalize the
// summary wording, never the arithmetic.
type UserProfile struct {
	JobType       string `json:"job_type,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	Age           int    `json:"age,omitempty"`
}
