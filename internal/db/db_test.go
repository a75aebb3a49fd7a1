package db

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestGetAbsentKey(t *testing.T) {
	d := openTestDB(t)

	v, ok, err := d.Get("notes")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("Get(absent) = %q, %v; want \"\", false", v, ok)
	}
}

func TestSetThenGet(t *testing.T) {
	d := openTestDB(t)

	if err := d.Set("theme", "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := d.Set("theme", "dark"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	v, ok, err := d.Get("theme")
	if err != nil || !ok {
		t.Fatalf("Get: %q %v %v", v, ok, err)
	}
	if v != "dark" {
		t.Fatalf("Get = %q, want dark", v)
	}
}

func TestKeysAndDelete(t *testing.T) {
	d := openTestDB(t)

	for _, k := range []string{"tasks", "notes", "theme"} {
		if err := d.Set(k, "x"); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	if err := d.Delete("theme"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := d.Delete("missing"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}

	keys, err := d.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if want := []string{"notes", "tasks"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys = %v, want %v", keys, want)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := New(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := d.Set("notes", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	d, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer d.Close()
	if v, ok, _ := d.Get("notes"); !ok || v != "[]" {
		t.Fatalf("after reopen Get = %q, %v", v, ok)
	}
}

func TestSecondInstanceIsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	first, err := New(path, WithOwner("first"))
	if err != nil {
		t.Fatalf("open first: %v", err)
	}
	defer first.Close()

	_, err = New(path)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second New err = %v, want ErrLocked", err)
	}
}
