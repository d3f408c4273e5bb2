package inkpot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// RemoteStore persists collections in a relational database, one row per
// collection. It fills the role the hosted relational service played in
// the original deployment: a backend shared across clients, selected once
// at startup when a DSN is configured.
//
// Any driver failure is reported as ErrBackendUnavailable so callers can
// distinguish "the backend is gone" from a plain write failure. Reads
// against an unavailable backend fall back to the collection default at
// the manager layer; writes never pretend to have succeeded.
type RemoteStore struct {
	db *sql.DB
}

// NewRemoteStore opens the database at dsn, ensures the data directory
// exists for file-backed DSNs, and runs schema migrations.
func NewRemoteStore(dsn string) (*RemoteStore, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("inkpot: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("inkpot: open remote store: %w", err)
	}
	// WAL so a reader never blocks the single writer; NORMAL sync is safe
	// with WAL and avoids an fsync per collection write.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("inkpot: configure remote store: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &RemoteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *RemoteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS collections (
    name TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func (s *RemoteStore) Get(collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = ?`, collection).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return data, nil
}

func (s *RemoteStore) Set(collection string, data []byte) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO collections (name, data, updated_at) VALUES (?, ?, ?)`,
		collection, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return nil
}

func (s *RemoteStore) Close() error {
	return s.db.Close()
}
