package repo

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestCreateNotePrependsAndParsesTags(t *testing.T) {
	r, err := OpenNotes(openTestDB(t), WithNotesClock(stepClock(epoch, time.Second)))
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}

	first, err := r.Create("  Biology  ", " cells ", "exam, , bio ,exam")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Title != "Biology" || first.Content != "cells" {
		t.Fatalf("Create trimmed = %q / %q", first.Title, first.Content)
	}
	if want := []string{"exam", "bio", "exam"}; !reflect.DeepEqual(first.Tags, want) {
		t.Fatalf("tags = %v, want %v", first.Tags, want)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", first.CreatedAt, first.UpdatedAt)
	}

	second, err := r.Create("Chemistry", "", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}

	got := r.List("")
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("List order = %+v, want newest first", got)
	}
}

func TestCreateNoteRejectsEmptyTitle(t *testing.T) {
	store := newMemStore()
	r, err := OpenNotes(store)
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}

	_, err = r.Create("", "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("Create(\"\") err = %v, want title ValidationError", err)
	}
	if _, err := r.Create("   ", "body", "tag"); !errors.Is(err, ErrValidation) {
		t.Fatalf("Create(blank) err = %v, want ErrValidation", err)
	}
	if r.Len() != 0 {
		t.Fatalf("collection changed: %d notes", r.Len())
	}
	if _, ok := store.data[KeyNotes]; ok {
		t.Fatalf("store written on rejected create")
	}
}

func TestListNotesFilter(t *testing.T) {
	r, err := OpenNotes(newMemStore())
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}
	mustCreate := func(title, content, tags string) {
		t.Helper()
		if _, err := r.Create(title, content, tags); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}
	mustCreate("Physics", "Newton laws", "science")
	mustCreate("Groceries", "milk", "Home")
	mustCreate("Essay", "draft intro", "english, writing")

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"Essay", "Groceries", "Physics"}},
		{"PHYS", []string{"Physics"}},
		{"newton", []string{"Physics"}},
		{"home", []string{"Groceries"}},
		{"writ", []string{"Essay"}},
		{"i", []string{"Essay", "Groceries", "Physics"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			var titles []string
			for _, n := range r.List(tt.filter) {
				titles = append(titles, n.Title)
			}
			if !reflect.DeepEqual(titles, tt.want) {
				t.Fatalf("List(%q) = %v, want %v", tt.filter, titles, tt.want)
			}
		})
	}
}

func TestUpdateNote(t *testing.T) {
	r, err := OpenNotes(newMemStore(), WithNotesClock(stepClock(epoch, time.Minute)))
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}
	a, _ := r.Create("A", "", "")
	b, _ := r.Create("B", "", "")

	updated, err := r.Update(a.ID, "A2", "more", "x,y")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", a.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("updatedAt not refreshed: %v", updated.UpdatedAt)
	}
	list := r.List("")
	if list[0].ID != b.ID || list[1].Title != "A2" {
		t.Fatalf("update moved the note: %+v", list)
	}

	if _, err := r.Update(42, "x", "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(absent) err = %v, want ErrNotFound", err)
	}
	if _, err := r.Update(a.ID, " ", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("Update(blank) err = %v, want ErrValidation", err)
	}
	if got, _ := r.Get(a.ID); got.Title != "A2" {
		t.Fatalf("rejected update changed note: %+v", got)
	}
}

func TestRemoveNoteIsIdempotent(t *testing.T) {
	r, err := OpenNotes(newMemStore())
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}
	n, _ := r.Create("gone soon", "", "")

	if err := r.Remove(n.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := r.Remove(n.ID); err != nil {
		t.Fatalf("Remove again: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("Len = %d, want 0", r.Len())
	}
}

func TestNotesSurviveReopen(t *testing.T) {
	store := openTestDB(t)
	r, err := OpenNotes(store)
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}
	want, _ := r.Create("Persisted", "body", "a,b")

	reopened, err := OpenNotes(store)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(want.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded note = %+v, want %+v", got, want)
	}
}

func TestCorruptNotesRecoverAsEmpty(t *testing.T) {
	for _, raw := range []string{
		"{not json", `{"id":1}`, `[{"id":"x"}]`, `42`,
		`[{}]`, `[null]`,
		`[{"id":5,"title":"   "}]`,
		`[{"id":5,"title":"a"},{"id":5,"title":"b"}]`,
	} {
		store := newMemStore()
		store.data[KeyNotes] = raw

		r, err := OpenNotes(store)
		if err != nil {
			t.Fatalf("OpenNotes(%q): %v", raw, err)
		}
		if r.Len() != 0 {
			t.Fatalf("OpenNotes(%q) kept %d notes", raw, r.Len())
		}
		if r.Recovered() == nil || r.Recovered().Key != KeyNotes {
			t.Fatalf("OpenNotes(%q) Recovered = %v", raw, r.Recovered())
		}

		// The collection is usable and overwrites the corrupt value.
		if _, err := r.Create("fresh", "", ""); err != nil {
			t.Fatalf("Create after recovery: %v", err)
		}
		var stored []map[string]any
		if err := json.Unmarshal([]byte(store.data[KeyNotes]), &stored); err != nil || len(stored) != 1 {
			t.Fatalf("stored after recovery = %q", store.data[KeyNotes])
		}
	}
}

func TestFailedWriteLeavesNotesUnchanged(t *testing.T) {
	store := newMemStore()
	r, err := OpenNotes(store)
	if err != nil {
		t.Fatalf("OpenNotes: %v", err)
	}
	kept, _ := r.Create("kept", "", "")
	store.failSet = true

	_, err = r.Create("lost", "", "")
	var perr *PersistError
	if !errors.As(err, &perr) || perr.Key != KeyNotes {
		t.Fatalf("Create err = %v, want PersistError", err)
	}
	if _, err := r.Update(kept.ID, "changed", "", ""); !errors.As(err, &perr) {
		t.Fatalf("Update err = %v, want PersistError", err)
	}
	if err := r.Remove(kept.ID); !errors.As(err, &perr) {
		t.Fatalf("Remove err = %v, want PersistError", err)
	}

	list := r.List("")
	if len(list) != 1 || list[0].Title != "kept" {
		t.Fatalf("memory diverged after failed writes: %+v", list)
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	r, _ := OpenNotes(newMemStore())
	n, _ := r.Create("snap", "", "a,b")

	list := r.List("")
	list[0].Title = "mutated"
	list[0].Tags[0] = "mutated"

	got, _ := r.Get(n.ID)
	if got.Title != "snap" || got.Tags[0] != "a" {
		t.Fatalf("snapshot aliased repository state: %+v", got)
	}
}

func TestNotesWriteThroughProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		store := newMemStore()
		r, err := OpenNotes(store, WithNotesClock(stepClock(epoch, time.Millisecond)))
		if err != nil {
			t.Fatalf("OpenNotes: %v", err)
		}
		text := rapid.StringMatching(`[ a-zA-Z,]{0,12}`)
		pickID := func(t *rapid.T) int64 {
			list := r.List("")
			if len(list) == 0 || rapid.Bool().Draw(t, "absent") {
				return rapid.Int64Range(1, 10).Draw(t, "absentID")
			}
			return rapid.SampledFrom(list).Draw(t, "note").ID
		}

		t.Repeat(map[string]func(*rapid.T){
			"create": func(t *rapid.T) {
				_, _ = r.Create(text.Draw(t, "title"), text.Draw(t, "content"), text.Draw(t, "tags"))
			},
			"update": func(t *rapid.T) {
				_, _ = r.Update(pickID(t), text.Draw(t, "title"), text.Draw(t, "content"), text.Draw(t, "tags"))
			},
			"remove": func(t *rapid.T) {
				_ = r.Remove(pickID(t))
			},
			"": func(t *rapid.T) {
				raw, ok := store.data[KeyNotes]
				if !ok {
					if r.Len() != 0 {
						t.Fatalf("%d notes in memory but nothing stored", r.Len())
					}
					return
				}
				mem, err := json.Marshal(r.List(""))
				if err != nil {
					t.Fatalf("marshal: %v", err)
				}
				if string(mem) != raw {
					t.Fatalf("memory and store diverged:\nmem   %s\nstore %s", mem, raw)
				}
			},
		})
	})
}
