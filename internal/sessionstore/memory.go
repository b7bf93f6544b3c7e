package sessionstore

import (
	"sync"

	"steuer-chat/internal/interview"
	"steuer-chat/internal/taxerror"
)

// MemoryStore keeps sessions in process memory. Suitable for the chat
// REPL and for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*interview.Session
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*interview.Session)}
}

// Get returns the stored session.
func (s *MemoryStore) Get(id string) (*interview.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, &taxerror.UnknownSessionError{ID: id}
	}
	return session, nil
}

// Put stores the session under its id.
func (s *MemoryStore) Put(session *interview.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Delete removes the session.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns the stored session ids.
func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
