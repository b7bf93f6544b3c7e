// Package sessionstore persists interview sessions by id behind a small
// store interface, so the core never assumes process-lifetime in-memory
// storage.
package sessionstore

import "steuer-chat/internal/interview"

// Store checkpoints and resumes sessions by id. Implementations must be
// safe for concurrent use; serializing access to one session is the
// caller's job.
type Store interface {
	// Get returns the session with the given id, or a
	// taxerror.UnknownSessionError when it does not exist.
	Get(id string) (*interview.Session, error)

	// Put stores the session under its id, replacing any previous state.
	Put(session *interview.Session) error

	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(id string) error

	// List returns the stored session ids.
	List() ([]string, error)

	// Close releases any underlying resources.
	Close() error
}
