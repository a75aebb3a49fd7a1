// Package repo holds the domain repositories. Each repository owns one
// collection in memory and writes it through to a key/value Store on every
// mutation.
package repo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Persisted keys
const (
	KeyTheme     = "theme"
	KeyStudyTime = "dailyStudyTime"
	KeyNotes     = "notes"
	KeyTasks     = "tasks"
)

// Store is the durable key/value contract the repositories depend on
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Clock returns the current time
type Clock func() time.Time

// load decodes the value stored under key. A missing key yields the zero
// value. A value that does not decode is reported as a *ParseError together
// with the zero value, so the caller starts from an empty collection.
func load[T any](s Store, key string) (T, *ParseError, error) {
	var zero T
	raw, ok, err := s.Get(key)
	if err != nil {
		return zero, nil, fmt.Errorf("read %q: %w", key, err)
	}
	if !ok {
		return zero, nil, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		slog.Warn("recovered corrupt stored value", "key", key, "error", err)
		return zero, &ParseError{Key: key, Err: err}, nil
	}
	return v, nil, nil
}

// reject reports a decoded collection whose element i breaks an
// invariant. The caller starts from an empty collection, as for a value
// that does not decode.
func reject(key string, i int, reason string) *ParseError {
	err := fmt.Errorf("element %d: %s", i, reason)
	slog.Warn("recovered corrupt stored value", "key", key, "error", err)
	return &ParseError{Key: key, Err: err}
}

func save(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &PersistError{Key: key, Err: err}
	}
	if err := s.Set(key, string(b)); err != nil {
		slog.Error("write-through failed", "key", key, "error", err)
		return &PersistError{Key: key, Err: err}
	}
	return nil
}

// nextID returns a creation-time id strictly greater than last
func nextID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// stamp normalizes a timestamp to the stored precision: UTC milliseconds
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
