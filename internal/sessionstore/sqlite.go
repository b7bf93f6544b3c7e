package sessionstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"steuer-chat/internal/catalog"
	"steuer-chat/internal/interview"
	"steuer-chat/internal/logging"
	"steuer-chat/internal/taxerror"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	state      BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore persists serialized session state in a SQLite database.
// Sessions are stored as opaque JSON blobs and rebuilt against the
// catalog on load.
type SQLiteStore struct {
	db  *sql.DB
	cat *catalog.Catalog
	log logging.Logger
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(path string, cat *catalog.Catalog, log logging.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize session database: %w", err)
	}
	return &SQLiteStore{db: db, cat: cat, log: log}, nil
}

// Get loads and resumes the session with the given id.
func (s *SQLiteStore) Get(id string) (*interview.Session, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT state FROM sessions WHERE id = ?`, id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &taxerror.UnknownSessionError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return interview.Resume(blob, s.cat, s.log)
}

// Put serializes the session and upserts it.
func (s *SQLiteStore) Put(session *interview.Session) error {
	blob, err := session.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize session %s: %w", session.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (id, state, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		session.ID, blob, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

// Delete removes the session row.
func (s *SQLiteStore) Delete(id string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// List returns the stored session ids.
func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT id FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
