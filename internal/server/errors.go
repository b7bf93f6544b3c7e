package server

import (
	"errors"
	"net/http"

	"steuer-chat/internal/taxerror"
)

// statusForError maps the core's recoverable errors onto HTTP statuses.
// Unknown errors are treated as server faults.
func statusForError(err error) int {
	var (
		unknown *taxerror.UnknownSessionError
		stale   *taxerror.StaleTransitionError
		invalid *taxerror.InvalidStatusError
		missing *taxerror.MissingDataError
	)

	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &stale):
		return http.StatusConflict
	case errors.As(err, &invalid), errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
