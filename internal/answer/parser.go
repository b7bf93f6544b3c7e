// Package answer turns a free-text user reply into a structured deduction
// claim. The heuristics run in a fixed precedence order; the order is a
// behavioral contract of the interview, not an implementation detail:
//
//  1. exact negative tokens ("no", "nein", ...)
//  2. exact affirmative tokens ("yes", "ja", ...) claiming the maximum
//  3. commute distance/days patterns ("18km, 210 days")
//  4. euro amounts and bare numbers, summed when several appear
//
// Anything else is unparseable and returns nil so the caller re-asks.
package answer

import (
	"fmt"
	"regexp"
	"strings"

	"steuer-chat/internal/amounts"
	"steuer-chat/internal/models"

	"github.com/shopspring/decimal"
)

var negativeTokens = map[string]bool{
	"no": true, "n": true, "nein": true, "false": true, "0": true,
	"none": true, "n/a": true, "not applicable": true, "na": true,
}

var affirmativeTokens = map[string]bool{
	"yes": true, "y": true, "ja": true, "j": true, "true": true, "1": true,
}

var (
	kmPattern   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*km\b`)
	daysPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:working\s+)?(?:days?|arbeitstage?n?|tage?n?)\b`)
	// Matches German grouped amounts (1.234,56) before plain numbers so a
	// grouped figure is not split into two tokens.
	numberPattern = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d+)?|\d+(?:[.,]\d+)?`)
)

// Commuting allowance parameters: 30 cents per kilometer per day, with
// fallbacks when the reply names only a distance or only a day count.
var (
	ratePerKmDay       = decimal.RequireFromString("0.30")
	defaultWorkingDays = decimal.NewFromInt(220)
	defaultDistanceKm  = decimal.NewFromInt(10)
)

// Parse interprets a free-text reply to a deduction question. It returns
// nil when no heuristic matches; the caller must then re-ask the same
// question. Amounts are clamped to the question's maximum, and clamping
// is recorded in the details string.
func Parse(text string, question models.DeductionQuestion) *models.DeductionAnswer {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil
	}

	if negativeTokens[normalized] {
		return &models.DeductionAnswer{
			QuestionID: question.ID,
			Claimed:    false,
			Amount:     decimal.Zero,
			Details:    "No deduction claimed",
		}
	}

	if affirmativeTokens[normalized] {
		return &models.DeductionAnswer{
			QuestionID: question.ID,
			Claimed:    true,
			Amount:     question.MaxAmount,
			Details:    fmt.Sprintf("Claimed maximum %s", amounts.FormatEuro(question.MaxAmount)),
		}
	}

	if ans := parseCommute(text, question); ans != nil {
		return ans
	}

	return parseNumbers(text, question)
}

// parseCommute handles the distance/days commuting pattern.
func parseCommute(text string, question models.DeductionQuestion) *models.DeductionAnswer {
	kmMatch := kmPattern.FindStringSubmatch(text)
	daysMatch := daysPattern.FindStringSubmatch(text)
	if kmMatch == nil && daysMatch == nil {
		return nil
	}

	km := defaultDistanceKm
	days := defaultWorkingDays
	var assumption string

	if kmMatch != nil {
		parsed, err := amounts.ParseAmount(kmMatch[1])
		if err != nil {
			return nil
		}
		km = parsed
	} else {
		assumption = fmt.Sprintf(" (assumed %s km distance)", defaultDistanceKm)
	}

	if daysMatch != nil {
		parsed, err := amounts.ParseAmount(daysMatch[1])
		if err != nil {
			return nil
		}
		days = parsed
	} else if kmMatch != nil {
		assumption = fmt.Sprintf(" (assumed %s working days)", defaultWorkingDays)
	}

	raw := km.Mul(days).Mul(ratePerKmDay)
	details := fmt.Sprintf("Commute claim: %s km × %s days × €0.30 = %s%s",
		km, days, amounts.FormatEuro(raw), assumption)

	return finalize(question, raw, details)
}

// parseNumbers sums every numeric token in the reply. Multiple numbers
// are treated as one itemized claim ("1040 for laptop, 95 for books"),
// which the details string makes visible for audit.
func parseNumbers(text string, question models.DeductionQuestion) *models.DeductionAnswer {
	matches := numberPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, m := range matches {
		parsed, err := amounts.ParseAmount(m)
		if err != nil {
			return nil
		}
		total = total.Add(parsed)
	}

	if total.IsZero() {
		return &models.DeductionAnswer{
			QuestionID: question.ID,
			Claimed:    false,
			Amount:     decimal.Zero,
			Details:    "No deduction claimed",
		}
	}

	details := fmt.Sprintf("Claimed %s", amounts.FormatEuro(total))
	if len(matches) > 1 {
		details += fmt.Sprintf(" (sum of %s)", strings.Join(matches, " + "))
	}

	return finalize(question, total, details)
}

// finalize clamps the raw amount to the question's cap and records the
// clamping in the details string when it occurred.
func finalize(question models.DeductionQuestion, raw decimal.Decimal, details string) *models.DeductionAnswer {
	amount := raw
	if raw.GreaterThan(question.MaxAmount) {
		amount = question.MaxAmount
		details += fmt.Sprintf(", capped from %s at %s",
			amounts.FormatEuro(raw), amounts.FormatEuro(question.MaxAmount))
	}

	return &models.DeductionAnswer{
		QuestionID: question.ID,
		Claimed:    amount.GreaterThan(decimal.Zero),
		Amount:     amount,
		Details:    details,
	}
}
