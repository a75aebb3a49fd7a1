package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrLocked is returned by New when another process holds the store
var ErrLocked = errors.New("store is in use by another focusdash process")

// DB wraps the database connection and the single-instance lock
type DB struct {
	*sql.DB
	path  string
	lock  *flock.Flock
	owner string
}

// Option configures New
type Option func(*DB)

// WithOwner records an identifier for this process in the lock file
func WithOwner(id string) Option {
	return func(db *DB) {
		db.owner = id
	}
}

// New opens the store at path, takes the lock and initializes the schema
func New(path string, opts ...Option) (*DB, error) {
	d := &DB{path: path}
	for _, opt := range opts {
		opt(d)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := d.acquire(); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		d.release()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Writes must be visible to the next read on any connection.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		d.release()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d.DB = conn
	return d, nil
}

func (db *DB) acquire() error {
	lockPath := db.path + ".lock"
	db.lock = flock.New(lockPath)
	locked, err := db.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	if !locked {
		if holder, err := os.ReadFile(lockPath); err == nil && len(holder) > 0 {
			return fmt.Errorf("%w (instance %s)", ErrLocked, strings.TrimSpace(string(holder)))
		}
		return ErrLocked
	}
	if db.owner != "" {
		_ = os.WriteFile(lockPath, []byte(db.owner+"\n"), 0644)
	}
	return nil
}

func (db *DB) release() {
	if db.lock != nil {
		_ = db.lock.Unlock()
	}
}

// Close closes the connection and releases the lock
func (db *DB) Close() error {
	var err error
	if db.DB != nil {
		err = db.DB.Close()
	}
	db.release()
	return err
}

// Path returns the file the store was opened from
func (db *DB) Path() string {
	return db.path
}

// DefaultPath returns the path to the database file
func DefaultPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "focusdash", "focusdash.db"), nil
}

// Get retrieves the raw value stored under key. ok is false when the key is absent.
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (db *DB) Delete(key string) error {
	_, err := db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

// Keys returns all stored keys in name order
func (db *DB) Keys() ([]string, error) {
	rows, err := db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
