// Package sqlite implements core.KV on a single SQLite table, using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aretw0/introspection"
	"github.com/bmatcuk/doublestar/v4"
	_ "modernc.org/sqlite"

	"github.com/aretw0/scribe/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`

// Store is a key-value table in a SQLite database.
type Store struct {
	db       *sql.DB
	dsn      string
	readOnly bool
	// noTable is set when a read-only store finds no kv table (or no
	// database file); every key is then absent.
	noTable bool

	mu     sync.Mutex
	writes int
}

// Option configures a Store.
type Option func(*Store)

// WithReadOnly rejects every write with core.ErrReadOnly. The database is
// opened in read-only mode and never created.
func WithReadOnly(readOnly bool) Option {
	return func(s *Store) {
		s.readOnly = readOnly
	}
}

// Open opens (or creates) the database at dsn and ensures the schema.
// A ":memory:" dsn gives a private, process-local database.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	s := &Store{dsn: dsn}
	for _, opt := range opts {
		opt(s)
	}

	if s.readOnly && dsn != ":memory:" {
		if _, err := os.Stat(dsn); errors.Is(err, os.ErrNotExist) {
			s.noTable = true
		}
	}

	db, err := sql.Open("sqlite", s.driverDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}
	// Every pooled connection to ":memory:" would see its own database, and
	// SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)
	s.db = db

	if s.noTable {
		return s, nil
	}

	if s.readOnly {
		var n int
		err := db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'kv'`).Scan(&n)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to inspect schema: %w", err)
		}
		s.noTable = n == 0
		return s, nil
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *Store) driverDSN() string {
	if !s.readOnly || s.dsn == ":memory:" {
		return s.dsn
	}
	return "file:" + filepath.ToSlash(s.dsn) + "?mode=ro"
}

// Get returns the value at key, or core.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.noTable {
		return nil, core.ErrKeyNotFound
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts value at key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if key == "" {
		return errors.New("empty key")
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	s.recordWrite()
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.recordWrite()
	return nil
}

// Keys returns the sorted keys matching the doublestar pattern.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	if s.noTable {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		if match, _ := doublestar.Match(pattern, key); match {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}

	slices.Sort(keys)
	return keys, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) recordWrite() {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
}

// StoreState exposes internal state for observability.
type StoreState struct {
	DSN      string `json:"dsn"`
	ReadOnly bool   `json:"read_only"`
	Writes   int    `json:"writes"`
	OpenConn int    `json:"open_connections"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StoreState{
		DSN:      s.dsn,
		ReadOnly: s.readOnly,
		Writes:   s.writes,
		OpenConn: s.db.Stats().OpenConnections,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "kv:sqlite"
}

var (
	_ core.KV                      = (*Store)(nil)
	_ core.Closer                  = (*Store)(nil)
	_ introspection.Introspectable = (*Store)(nil)
	_ introspection.Component      = (*Store)(nil)
)
