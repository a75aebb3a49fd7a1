package session

import (
	"fmt"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
)

// AddTask prepends a task
func (s *Session) AddTask(text string) (models.Task, error) {
	t, err := s.tasks.Add(text)
	s.render()
	return t, err
}

// ToggleTask flips a task's completed flag
func (s *Session) ToggleTask(id int64) (models.Task, error) {
	t, err := s.tasks.ToggleCompleted(id)
	s.render()
	return t, err
}

// SetTaskPriority changes a task's priority
func (s *Session) SetTaskPriority(id int64, p models.Priority) (models.Task, error) {
	t, err := s.tasks.SetPriority(id, p)
	s.render()
	return t, err
}

// DeleteTask removes id after the view confirms. It reports whether the
// task was deleted.
func (s *Session) DeleteTask(id int64) (bool, error) {
	if !s.view.Confirm("Are you sure you want to delete this task?") {
		return false, nil
	}
	err := s.tasks.Remove(id)
	s.render()
	return err == nil, err
}

// SetStatusFilter changes which tasks are listed
func (s *Session) SetStatusFilter(f repo.StatusFilter) {
	s.statusFilter = f
	s.dragIndex = -1
	s.render()
}

// SetTaskSearch changes the task search text
func (s *Session) SetTaskSearch(text string) {
	s.taskSearch = text
	s.dragIndex = -1
	s.render()
}

// VisibleTasks returns the tasks under the current filters
func (s *Session) VisibleTasks() []models.Task {
	return s.tasks.List(s.statusFilter, s.taskSearch)
}

// DragStart picks up the task at a position of the visible list
func (s *Session) DragStart(pos int) error {
	if pos < 0 || pos >= len(s.VisibleTasks()) {
		return fmt.Errorf("%w: %d", ErrIndex, pos)
	}
	s.dragIndex = pos
	s.render()
	return nil
}

// DragOver moves the dragged task to a position of the visible list. The
// positions are translated to collection positions, so dragging works the
// same under any filter.
func (s *Session) DragOver(pos int) error {
	visible := s.VisibleTasks()
	if s.dragIndex < 0 || s.dragIndex == pos {
		return nil
	}
	if pos < 0 || pos >= len(visible) || s.dragIndex >= len(visible) {
		return fmt.Errorf("%w: %d", ErrIndex, pos)
	}

	from := s.tasks.IndexOf(visible[s.dragIndex].ID)
	to := s.tasks.IndexOf(visible[pos].ID)
	if err := s.tasks.Reorder(from, to); err != nil {
		s.render()
		return err
	}
	s.dragIndex = pos
	s.render()
	return nil
}

// DragEnd drops the dragged task
func (s *Session) DragEnd() {
	s.dragIndex = -1
	s.render()
}

// MoveTask drags the task at pos to target in one step
func (s *Session) MoveTask(pos, target int) error {
	if err := s.DragStart(pos); err != nil {
		return err
	}
	defer s.DragEnd()
	return s.DragOver(target)
}
