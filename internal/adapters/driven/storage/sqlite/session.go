// Package sqlite persists the session credential in a local SQLite
// database, so a connected calendar survives restarts of the task pane.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
	"github.com/smartmeet-labs/smartmeet-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// sessionKey is the fixed key the single credential lives under.
const sessionKey = "session"

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	key        TEXT PRIMARY KEY,
	credential TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Store is a SQLite-backed session store holding one opaque credential.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the session database path under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".smartmeet", "session.db"), nil
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialise session schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored credential, or domain.ErrNoSession when no session
// has been persisted.
func (s *Store) Get() (string, error) {
	var credential string
	err := s.db.QueryRow(
		`SELECT credential FROM sessions WHERE key = ?`, sessionKey,
	).Scan(&credential)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	return credential, nil
}

// Set stores the credential, replacing any previous session.
func (s *Store) Set(token string) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (key, credential, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET credential = excluded.credential,
		                                updated_at = excluded.updated_at`,
		sessionKey, token, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE key = ?`, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
