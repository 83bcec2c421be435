// Package core holds the application logic behind the MedEase desktop
// client: the credential store, the session manager, the role
// navigation model and the booking draft state machine.
package core

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/medease/desktop/internal/types"
)

const (
	keyToken   = "auth_token"
	keyProfile = "user_profile"
)

// errStoreNotOpen rejects writes issued before Open. Reads on an
// unopened store simply report no value held.
var errStoreNotOpen = errors.New("session store is not open")

// CredentialStore persists the bearer token and the cached user profile
// in a small sqlite database under the user's data directory. The two
// values live and die together: an overwrite replaces both, a purge
// removes both in one transaction, so a stale profile can never survive
// a token wipe.
type CredentialStore struct {
	dbFile string
	conn   *sql.DB
}

// NewCredentialStore prepares a store rooted at dataDir. The directory
// is created if missing; no database I/O happens until Open.
func NewCredentialStore(dataDir string) (*CredentialStore, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &CredentialStore{dbFile: filepath.Join(dataDir, "medease.db")}, nil
}

// Open connects to the database and ensures the schema exists. Safe to
// call before any network activity.
func (s *CredentialStore) Open() error {
	conn, err := sql.Open("sqlite3", s.dbFile)
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}
	s.conn = conn

	_, err = s.conn.Exec(`
    CREATE TABLE IF NOT EXISTS session_state (
        key   TEXT PRIMARY KEY,
        value TEXT NOT NULL
    )`)
	if err != nil {
		return fmt.Errorf("initialize session schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *CredentialStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Token returns the stored credential, false when none is held.
func (s *CredentialStore) Token() (string, bool) {
	return s.get(keyToken)
}

// Profile returns the cached user profile, false when none is held.
func (s *CredentialStore) Profile() (types.UserProfile, bool) {
	raw, ok := s.get(keyProfile)
	if !ok {
		return types.UserProfile{}, false
	}
	var profile types.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return types.UserProfile{}, false
	}
	return profile, true
}

// SetSession stores a fresh token and profile pair, replacing any
// previous session wholesale. Exactly one credential is live at a time.
func (s *CredentialStore) SetSession(token string, profile types.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if s.conn == nil {
		return errStoreNotOpen
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin session write: %w", err)
	}
	defer tx.Rollback()

	upsert := `INSERT INTO session_state (key, value) VALUES (?, ?)
               ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, keyToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if _, err := tx.Exec(upsert, keyProfile, string(raw)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return tx.Commit()
}

// SetProfile refreshes the cached profile without touching the token.
// Used when a resolution re-fetches the profile for an existing session.
func (s *CredentialStore) SetProfile(profile types.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if s.conn == nil {
		return errStoreNotOpen
	}
	_, err = s.conn.Exec(`INSERT INTO session_state (key, value) VALUES (?, ?)
               ON CONFLICT(key) DO UPDATE SET value = excluded.value`, keyProfile, string(raw))
	if err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}

// Purge removes the token and the cached profile atomically.
func (s *CredentialStore) Purge() error {
	if s.conn == nil {
		return errStoreNotOpen
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin session purge: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM session_state WHERE key IN (?, ?)`, keyToken, keyProfile); err != nil {
		return fmt.Errorf("purge session: %w", err)
	}
	return tx.Commit()
}

func (s *CredentialStore) get(key string) (string, bool) {
	if s.conn == nil {
		return "", false
	}
	var value string
	err := s.conn.QueryRow(`SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}
