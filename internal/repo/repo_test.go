package repo

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tgienger/focusdash/internal/db"
)

// memStore is an in-memory Store used where a real database is not needed
type memStore struct {
	data    map[string]string
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key, value string) error {
	if m.failSet {
		return errors.New("quota exceeded")
	}
	m.data[key] = value
	return nil
}

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// stepClock returns a clock that advances by step on every call
func stepClock(start time.Time, step time.Duration) Clock {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

var epoch = time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)
