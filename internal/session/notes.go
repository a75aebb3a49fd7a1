package session

import (
	"github.com/tgienger/focusdash/internal/models"
)

// SetNoteFilter changes the notes search text
func (s *Session) SetNoteFilter(filter string) {
	s.noteFilter = filter
	s.render()
}

// EditNote marks id as the note being edited and returns it for the form
func (s *Session) EditNote(id int64) (models.Note, error) {
	n, err := s.notes.Get(id)
	if err != nil {
		return models.Note{}, err
	}
	s.editingID = id
	s.render()
	return n, nil
}

// CancelEdit leaves edit mode without saving
func (s *Session) CancelEdit() {
	s.editingID = 0
	s.render()
}

// Editing returns the id of the note being edited, or 0
func (s *Session) Editing() int64 {
	return s.editingID
}

// SaveNote updates the note being edited, or creates a new one when none is.
// On failure nothing changes and edit mode is kept.
func (s *Session) SaveNote(title, content, tags string) (models.Note, error) {
	var (
		n   models.Note
		err error
	)
	if s.editingID != 0 {
		n, err = s.notes.Update(s.editingID, title, content, tags)
	} else {
		n, err = s.notes.Create(title, content, tags)
	}
	if err == nil {
		s.editingID = 0
	}
	s.render()
	return n, err
}

// DeleteNote removes id after the view confirms. It reports whether the
// note was deleted.
func (s *Session) DeleteNote(id int64) (bool, error) {
	if !s.view.Confirm("Are you sure you want to delete this note?") {
		return false, nil
	}
	if err := s.notes.Remove(id); err != nil {
		s.render()
		return false, err
	}
	if s.editingID == id {
		s.editingID = 0
	}
	s.render()
	return true, nil
}

// Note returns a single note
func (s *Session) Note(id int64) (models.Note, error) {
	return s.notes.Get(id)
}
