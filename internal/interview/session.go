// Package interview implements the deduction-interview state machine:
// upload → confirm → questions → calculate → summary. Extraction happens
// in a collaborator; the session receives its result as data. It owns
// all conversation state and derives the tax calculation purely from the
// extracted data and the current answer set.
package interview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"steuer-chat/internal/amounts"
	"steuer-chat/internal/answer"
	"steuer-chat/internal/catalog"
	"steuer-chat/internal/logging"
	"steuer-chat/internal/models"
	"steuer-chat/internal/summary"
	"steuer-chat/internal/taxcalc"
	"steuer-chat/internal/taxerror"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Step names the session's position in the conversation flow.
type Step string

const (
	StepUpload    Step = "upload"
	StepConfirm   Step = "confirm"
	StepQuestions Step = "questions"
	StepCalculate Step = "calculate"
	StepSummary   Step = "summary"
)

// Event is one entry of the session's monotonically growing transcript.
type Event struct {
	At   time.Time `json:"at"`
	Role string    `json:"role"`
	Text string    `json:"text"`
}

// Session is the interview state machine. It is exclusively owned by one
// logical conversation: the driver must serialize access per session id.
type Session struct {
	ID            string                            `json:"id"`
	Step          Step                              `json:"step"`
	Extracted     *models.ExtractedData             `json:"extracted_data,omitempty"`
	Profile       *models.UserProfile               `json:"profile,omitempty"`
	Status        models.EmploymentStatus           `json:"employment_status,omitempty"`
	QuestionIndex int                               `json:"question_index"`
	Answers       map[string]models.DeductionAnswer `json:"answers"`

	// Threshold verdict, decided exactly once at year confirmation and
	// authoritative for the rest of the filing.
	ThresholdChecked bool            `json:"threshold_checked"`
	BelowThreshold   bool            `json:"below_threshold"`
	Threshold        decimal.Decimal `json:"threshold"`

	FiledYears  []int          `json:"filed_years,omitempty"`
	Retries     map[string]int `json:"retries,omitempty"`
	Transcript  []Event        `json:"transcript,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	IsComplete  bool           `json:"is_complete"`
	Done        bool           `json:"done"`

	cat  *catalog.Catalog
	flow []models.DeductionQuestion
	log  logging.Logger
}

// New creates a session with a generated id at the upload step.
func New(cat *catalog.Catalog, log logging.Logger) *Session {
	return NewWithID(uuid.NewString(), cat, log)
}

// NewWithID creates a session with an explicit id.
func NewWithID(id string, cat *catalog.Catalog, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewMockLogger()
	}
	return &Session{
		ID:      id,
		Step:    StepUpload,
		Answers: make(map[string]models.DeductionAnswer),
		Retries: make(map[string]int),
		cat:     cat,
		log:     log.WithField("session_id", id),
	}
}

// SetProfile attaches optional personalization attributes. They influence
// summary wording only.
func (s *Session) SetProfile(profile models.UserProfile) {
	s.Profile = &profile
}

// SetExtractedData stores the extracted document fields and moves the
// session to the confirm step. Calling it again before the questions step
// replaces the data wholesale; any stale calculation state is cleared.
func (s *Session) SetExtractedData(data models.ExtractedData) (string, error) {
	switch s.Step {
	case StepUpload, StepConfirm:
	default:
		return "", &taxerror.StaleTransitionError{Step: string(s.Step), Action: "set_data"}
	}

	s.Extracted = &data
	s.ThresholdChecked = false
	s.BelowThreshold = false
	s.Threshold = decimal.Zero
	s.Step = StepConfirm
	s.log.Info("extracted data set",
		logging.F("year", data.Year),
		logging.F("gross_income", data.GrossIncome.String()))

	prompt := s.recapPrompt(data)
	s.say(prompt)
	return prompt, nil
}

// ConfirmYear resolves the confirm step. Rejecting the year clears the
// extracted data and returns to upload. Confirming evaluates the
// threshold predicate exactly once: below-threshold filers skip straight
// to the summary with a full refund, everyone else proceeds to the
// questions step.
func (s *Session) ConfirmYear(confirmed bool) (string, error) {
	if s.Step != StepConfirm {
		return "", &taxerror.StaleTransitionError{Step: string(s.Step), Action: "confirm_year"}
	}

	if !confirmed {
		s.Extracted = nil
		s.Step = StepUpload
		s.log.Info("year rejected, returning to upload")
		prompt := "Understood. Please upload the documents for the year you want to file."
		s.say(prompt)
		return prompt, nil
	}

	if s.Extracted == nil || !s.Extracted.HasYear() {
		prompt := "I could not determine the tax year from your documents. Please upload a document that shows the filing year."
		s.say(prompt)
		return prompt, &taxerror.MissingDataError{Field: "year", Step: string(StepConfirm)}
	}

	s.Threshold = taxcalc.Threshold(s.Extracted.Year)
	s.BelowThreshold = taxcalc.IsBelowThreshold(s.Extracted.GrossIncome, s.Extracted.Year)
	s.ThresholdChecked = true

	if s.BelowThreshold {
		s.log.Info("income below threshold, skipping questions",
			logging.F("threshold", s.Threshold.String()))
		return s.complete()
	}

	s.Step = StepQuestions
	prompt := s.statusPrompt()
	s.say(prompt)
	return prompt, nil
}

// SelectEmploymentStatus binds the deduction flow for the filing. The
// status is selected exactly once; the resulting question order does not
// change for the remainder of the session.
func (s *Session) SelectEmploymentStatus(input string) (string, error) {
	if s.Step != StepQuestions {
		return "", &taxerror.StaleTransitionError{Step: string(s.Step), Action: "select_status"}
	}
	if s.Status != "" {
		return "", &taxerror.StaleTransitionError{Step: string(s.Step), Action: "select_status"}
	}

	status, ok := models.ParseEmploymentStatus(input)
	if !ok {
		return s.statusPrompt(), &taxerror.InvalidStatusError{Value: input}
	}
	flow, ok := s.cat.Questions(status)
	if !ok {
		return s.statusPrompt(), &taxerror.InvalidStatusError{Value: input}
	}

	s.Status = status
	s.flow = flow
	s.QuestionIndex = 0
	s.log.Info("employment status selected", logging.F("status", string(status)))

	prompt := s.questionPrompt()
	s.say(prompt)
	return prompt, nil
}

// Advance processes one free-text answer to the current question. An
// unparseable reply re-asks the same question without advancing; the
// per-question retry count is exposed for drivers that want to offer a
// skip. When the last question is answered the session calculates and
// returns the summary.
func (s *Session) Advance(text string) (string, error) {
	if s.Step != StepQuestions {
		return "", &taxerror.StaleTransitionError{Step: string(s.Step), Action: "advance"}
	}
	if s.Status == "" {
		prompt := "Please select your employment status first. " + s.statusPrompt()
		return prompt, &taxerror.StaleTransitionError{Step: string(s.Step), Action: "advance"}
	}

	s.hear(text)
	q := s.flow[s.QuestionIndex]

	ans := answer.Parse(text, q)
	if ans == nil {
		s.Retries[q.ID]++
		s.log.Debug("unparseable answer, re-asking",
			logging.F("question", q.ID),
			logging.F("retries", s.Retries[q.ID]))
		prompt := "Sorry, I couldn't understand that. " + s.questionPrompt()
		s.say(prompt)
		return prompt, nil
	}

	// Re-answering replaces, never accumulates.
	s.Answers[q.ID] = *ans
	s.QuestionIndex++
	s.log.Debug("answer recorded",
		logging.F("question", q.ID),
		logging.F("amount", ans.Amount.String()))

	if s.QuestionIndex < len(s.flow) {
		prompt := s.questionPrompt()
		s.say(prompt)
		return prompt, nil
	}

	s.Step = StepCalculate
	return s.complete()
}

// complete runs the calculate step and lands on the terminal summary.
func (s *Session) complete() (string, error) {
	now := time.Now().UTC()
	s.CompletedAt = &now
	s.Step = StepSummary
	s.IsComplete = true
	s.Done = true
	s.addFiledYear(s.Extracted.Year)

	text, _, err := s.GetSummary()
	if err != nil {
		return "", err
	}
	s.say(text)
	s.log.Info("filing complete", logging.F("year", s.Extracted.Year))
	return text, nil
}

// GetTaxCalculation derives the calculation from the current state. It is
// a pure recomputation: repeated calls without intervening answer changes
// return identical values.
func (s *Session) GetTaxCalculation() (models.TaxCalculation, error) {
	if s.Extracted == nil {
		return models.TaxCalculation{}, &taxerror.MissingDataError{Field: "extracted_data", Step: string(s.Step)}
	}
	if !s.ThresholdChecked {
		return models.TaxCalculation{}, &taxerror.StaleTransitionError{Step: string(s.Step), Action: "get_calculation"}
	}

	gross := s.Extracted.GrossIncome
	year := s.Extracted.Year

	deductions := decimal.Zero
	for _, q := range s.flow {
		if ans, ok := s.Answers[q.ID]; ok {
			deductions = deductions.Add(ans.Amount)
		}
	}

	taxable := gross.Sub(deductions).Sub(s.Extracted.LossCarryforward)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	estimated := taxcalc.Estimate(taxable, year)

	var refund decimal.Decimal
	if s.BelowThreshold || taxable.LessThanOrEqual(s.Threshold) {
		refund = s.Extracted.IncomeTaxPaid
	} else {
		refund = s.Extracted.IncomeTaxPaid.Sub(estimated)
		if refund.IsNegative() {
			refund = decimal.Zero
		}
	}

	return models.TaxCalculation{
		Year:             year,
		GrossIncome:      gross,
		TotalDeductions:  deductions,
		LossCarryforward: s.Extracted.LossCarryforward,
		TaxableIncome:    taxable,
		Threshold:        s.Threshold,
		BelowThreshold:   s.BelowThreshold,
		EstimatedTax:     estimated,
		TaxPaid:          s.Extracted.IncomeTaxPaid,
		SolidarityTax:    s.Extracted.SolidarityTax,
		Refund:           refund,
	}, nil
}

// GetSummary composes the terminal summary. Valid only once the session
// reached the summary step.
func (s *Session) GetSummary() (string, summary.Record, error) {
	if s.Step != StepSummary {
		return "", summary.Record{}, &taxerror.StaleTransitionError{Step: string(s.Step), Action: "get_summary"}
	}

	calc, err := s.GetTaxCalculation()
	if err != nil {
		return "", summary.Record{}, err
	}

	filedAt := time.Now().UTC()
	if s.CompletedAt != nil {
		filedAt = *s.CompletedAt
	}

	text, record := summary.Compose(summary.Input{
		SessionID:  s.ID,
		Status:     s.Status,
		Extracted:  *s.Extracted,
		Questions:  s.flow,
		Answers:    s.Answers,
		Calc:       calc,
		Profile:    s.Profile,
		FiledYears: s.FiledYears,
		FiledAt:    filedAt,
	})
	return text, record, nil
}

// ResetForNewYear clears all per-year state while preserving the session
// id, the profile, and the set of already-filed years. Filing another
// year is only valid from the terminal summary step; anywhere else it
// would wipe an in-progress interview.
func (s *Session) ResetForNewYear() (string, error) {
	if s.Step != StepSummary {
		return "", &taxerror.StaleTransitionError{Step: string(s.Step), Action: "reset_year"}
	}

	s.Extracted = nil
	s.Status = ""
	s.flow = nil
	s.QuestionIndex = 0
	s.Answers = make(map[string]models.DeductionAnswer)
	s.Retries = make(map[string]int)
	s.ThresholdChecked = false
	s.BelowThreshold = false
	s.Threshold = decimal.Zero
	s.CompletedAt = nil
	s.IsComplete = false
	s.Done = false
	s.Step = StepUpload
	s.log.Info("session reset for a new year")

	prompt := "Let's file for another year. Please upload the documents for that year."
	s.say(prompt)
	return prompt, nil
}

// CurrentQuestion returns the question awaiting an answer, if any.
func (s *Session) CurrentQuestion() (models.DeductionQuestion, bool) {
	if s.Step != StepQuestions || s.Status == "" || s.QuestionIndex >= len(s.flow) {
		return models.DeductionQuestion{}, false
	}
	return s.flow[s.QuestionIndex], true
}

// RetryCount reports how often the given question got an unparseable
// answer. Drivers can use it for skip-after-N UX.
func (s *Session) RetryCount(questionID string) int {
	return s.Retries[questionID]
}

// Prompt returns the text a driver should show for the session's current
// step, e.g. after resuming from the store.
func (s *Session) Prompt() string {
	switch s.Step {
	case StepUpload:
		return "Please upload your payslip or wage tax statement to get started."
	case StepConfirm:
		if s.Extracted != nil {
			return s.recapPrompt(*s.Extracted)
		}
		return "Please upload your payslip or wage tax statement to get started."
	case StepQuestions:
		if s.Status == "" {
			return s.statusPrompt()
		}
		return s.questionPrompt()
	case StepSummary:
		text, _, err := s.GetSummary()
		if err != nil {
			return ""
		}
		return text
	}
	return ""
}

func (s *Session) recapPrompt(data models.ExtractedData) string {
	var b strings.Builder
	if data.HasYear() {
		fmt.Fprintf(&b, "Here's a quick summary of your %d tax data:\n\n", data.Year)
	} else {
		b.WriteString("Here's a quick summary of your tax data:\n\n")
	}
	if data.FullName != "" {
		fmt.Fprintf(&b, "Name: %s\n", data.FullName)
	}
	if data.Employer != "" {
		fmt.Fprintf(&b, "Employer: %s\n", data.Employer)
	}
	fmt.Fprintf(&b, "Gross income: %s\n", amounts.FormatEuro(data.GrossIncome))
	fmt.Fprintf(&b, "Income tax paid: %s\n", amounts.FormatEuro(data.IncomeTaxPaid))
	if data.SolidarityTax.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&b, "Solidarity surcharge: %s\n", amounts.FormatEuro(data.SolidarityTax))
	}
	if data.HasYear() {
		fmt.Fprintf(&b, "\nIs %d the year you want to file for? (yes/no)", data.Year)
	} else {
		b.WriteString("\nI could not find the tax year in your documents. Please upload a document that shows the filing year.")
	}
	return b.String()
}

func (s *Session) statusPrompt() string {
	names := make([]string, 0, 4)
	for _, status := range s.cat.Statuses() {
		names = append(names, string(status))
	}
	return fmt.Sprintf("What was your employment status in %d? Options: %s.",
		s.Extracted.Year, strings.Join(names, ", "))
}

func (s *Session) questionPrompt() string {
	q := s.flow[s.QuestionIndex]
	return fmt.Sprintf("Question %d of %d: %s", s.QuestionIndex+1, len(s.flow), q.Prompt)
}

func (s *Session) addFiledYear(year int) {
	for _, y := range s.FiledYears {
		if y == year {
			return
		}
	}
	s.FiledYears = append(s.FiledYears, year)
	sort.Ints(s.FiledYears)
}

func (s *Session) say(text string) {
	s.Transcript = append(s.Transcript, Event{At: time.Now().UTC(), Role: "assistant", Text: text})
}

func (s *Session) hear(text string) {
	s.Transcript = append(s.Transcript, Event{At: time.Now().UTC(), Role: "user", Text: text})
}

// Serialize renders the session state as a JSON blob for checkpointing.
func (s *Session) Serialize() ([]byte, error) {
	return json.Marshal(s)
}

// Resume rebuilds a session from a serialized blob. The catalog and
// logger are runtime dependencies and must be supplied again; the active
// question flow is re-derived from the stored status.
func Resume(blob []byte, cat *catalog.Catalog, log logging.Logger) (*Session, error) {
	var s Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	if s.Answers == nil {
		s.Answers = make(map[string]models.DeductionAnswer)
	}
	if s.Retries == nil {
		s.Retries = make(map[string]int)
	}
	s.cat = cat
	if log == nil {
		log = logging.NewMockLogger()
	}
	s.log = log.WithField("session_id", s.ID)
	if s.Status != "" {
		flow, ok := cat.Questions(s.Status)
		if !ok {
			return nil, fmt.Errorf("stored status '%s' is not in the catalog", s.Status)
		}
		s.flow = flow
	}
	return &s, nil
}
