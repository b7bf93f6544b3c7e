// Package taxerror defines the typed, recoverable errors produced by the
// interview core. Nothing here is fatal to the process: every error maps
// to a re-prompt in the conversation or an error response in a driver.
package taxerror

import "fmt"

// MissingDataError signals that a required extracted field (notably the
// tax year) was absent at a transition boundary.
type MissingDataError struct {
	Field string
	Step  string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing required field '%s' at step '%s'", e.Field, e.Step)
}

// InvalidStatusError signals an employment-status value outside the
// enumerated set.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid employment status '%s'", e.Value)
}

// StaleTransitionError signals an action that is not valid for the
// session's current step, e.g. an answer arriving before an employment
// status was selected.
type StaleTransitionError struct {
	Step   string
	Action string
}

func (e *StaleTransitionError) Error() string {
	return fmt.Sprintf("action '%s' is not valid in step '%s'", e.Action, e.Step)
}

// UnknownSessionError signals a lookup for a session id the store does
// not hold.
type UnknownSessionError struct {
	ID string
}

func (e *UnknownSessionError) Error() string {
	return fmt.Sprintf("no session with id '%s'", e.ID)
}
