package repo

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tgienger/focusdash/internal/models"
)

// Notes owns the note collection, newest first
type Notes struct {
	store     Store
	now       Clock
	notes     []models.Note
	recovered *ParseError
}

// NotesOption configures OpenNotes
type NotesOption func(*Notes)

// WithNotesClock overrides the clock used for timestamps and ids
func WithNotesClock(c Clock) NotesOption {
	return func(r *Notes) { r.now = c }
}

// OpenNotes loads the note collection from s
func OpenNotes(s Store, opts ...NotesOption) (*Notes, error) {
	r := &Notes{store: s, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	notes, perr, err := load[[]models.Note](s, KeyNotes)
	if err != nil {
		return nil, err
	}
	if perr == nil {
		perr = checkNotes(notes)
	}
	if perr != nil {
		notes = nil
	}
	r.recovered = perr
	for i := range notes {
		if notes[i].Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	r.notes = notes
	return r, nil
}

// checkNotes holds stored notes to the same rules Create enforces
func checkNotes(notes []models.Note) *ParseError {
	seen := make(map[int64]bool, len(notes))
	for i, n := range notes {
		switch {
		case n.ID <= 0:
			return reject(KeyNotes, i, "missing id")
		case seen[n.ID]:
			return reject(KeyNotes, i, fmt.Sprintf("duplicate id %d", n.ID))
		case strings.TrimSpace(n.Title) == "":
			return reject(KeyNotes, i, "empty title")
		}
		seen[n.ID] = true
	}
	return nil
}

// Recovered returns the parse error that was recovered while loading, if any
func (r *Notes) Recovered() *ParseError {
	return r.recovered
}

// List returns notes whose title, content or any tag contains filter,
// case-insensitively. An empty filter returns every note.
func (r *Notes) List(filter string) []models.Note {
	needle := strings.ToLower(filter)
	out := make([]models.Note, 0, len(r.notes))
	for _, n := range r.notes {
		if needle == "" || noteMatches(n, needle) {
			out = append(out, cloneNote(n))
		}
	}
	return out
}

func noteMatches(n models.Note, needle string) bool {
	if strings.Contains(strings.ToLower(n.Title), needle) ||
		strings.Contains(strings.ToLower(n.Content), needle) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Len returns the number of notes
func (r *Notes) Len() int {
	return len(r.notes)
}

// Get returns the note with id
func (r *Notes) Get(id int64) (models.Note, error) {
	i := r.index(id)
	if i < 0 {
		return models.Note{}, &NotFoundError{Kind: "note", ID: id}
	}
	return cloneNote(r.notes[i]), nil
}

// Create validates and prepends a new note
func (r *Notes) Create(title, content, tagsRaw string) (models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Note{}, &ValidationError{Field: "title"}
	}

	now := stamp(r.now())
	var last int64
	for _, n := range r.notes {
		last = max(last, n.ID)
	}
	n := models.Note{
		ID:        nextID(now, last),
		Title:     title,
		Content:   strings.TrimSpace(content),
		Tags:      ParseTags(tagsRaw),
		CreatedAt: now,
		UpdatedAt: now,
	}

	next := make([]models.Note, 0, len(r.notes)+1)
	next = append(next, n)
	next = append(next, r.notes...)
	if err := r.commit(next); err != nil {
		return models.Note{}, err
	}
	return cloneNote(n), nil
}

// Update replaces title, content and tags of an existing note
func (r *Notes) Update(id int64, title, content, tagsRaw string) (models.Note, error) {
	i := r.index(id)
	if i < 0 {
		return models.Note{}, &NotFoundError{Kind: "note", ID: id}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Note{}, &ValidationError{Field: "title"}
	}

	next := slices.Clone(r.notes)
	n := next[i]
	n.Title = title
	n.Content = strings.TrimSpace(content)
	n.Tags = ParseTags(tagsRaw)
	n.UpdatedAt = stamp(r.now())
	next[i] = n

	if err := r.commit(next); err != nil {
		return models.Note{}, err
	}
	return cloneNote(n), nil
}

// Remove deletes the note with id. Removing an absent id does nothing.
func (r *Notes) Remove(id int64) error {
	i := r.index(id)
	if i < 0 {
		return nil
	}
	return r.commit(slices.Delete(slices.Clone(r.notes), i, i+1))
}

// commit persists next and adopts it only once the write succeeded
func (r *Notes) commit(next []models.Note) error {
	if err := save(r.store, KeyNotes, next); err != nil {
		return err
	}
	r.notes = next
	return nil
}

func (r *Notes) index(id int64) int {
	return slices.IndexFunc(r.notes, func(n models.Note) bool { return n.ID == id })
}

// ParseTags splits a comma separated tag list, trimming each tag and
// dropping empty ones. Order and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags, used to prefill edit forms
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func cloneNote(n models.Note) models.Note {
	n.Tags = slices.Clone(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}
