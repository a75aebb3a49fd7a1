package repo

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tgienger/focusdash/internal/models"
)

// StatusFilter selects tasks by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// ParseStatusFilter converts user input into a StatusFilter
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(s); f {
	case StatusAll, StatusActive, StatusCompleted:
		return f, nil
	case "":
		return StatusAll, nil
	}
	return "", fmt.Errorf("unknown status filter %q (want all, active or completed)", s)
}

func (f StatusFilter) matches(t models.Task) bool {
	switch f {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	}
	return true
}

// Counts is the number of active and completed tasks
type Counts struct {
	Active    int
	Completed int
}

// Tasks owns the ordered task collection
type Tasks struct {
	store     Store
	now       Clock
	tasks     []models.Task
	recovered *ParseError
}

// TasksOption configures OpenTasks
type TasksOption func(*Tasks)

// WithTasksClock overrides the clock used for timestamps and ids
func WithTasksClock(c Clock) TasksOption {
	return func(r *Tasks) { r.now = c }
}

// OpenTasks loads the task collection from s
func OpenTasks(s Store, opts ...TasksOption) (*Tasks, error) {
	r := &Tasks{store: s, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	tasks, perr, err := load[[]models.Task](s, KeyTasks)
	if err != nil {
		return nil, err
	}
	if perr == nil {
		perr = checkTasks(tasks)
	}
	if perr != nil {
		tasks = nil
	}
	r.recovered = perr
	for i := range tasks {
		if !tasks[i].Priority.Valid() {
			tasks[i].Priority = models.PriorityMedium
		}
	}
	r.tasks = tasks
	return r, nil
}

// checkTasks holds stored tasks to the same rules Add enforces. An unknown
// priority is not an error; it falls back to medium.
func checkTasks(tasks []models.Task) *ParseError {
	seen := make(map[int64]bool, len(tasks))
	for i, t := range tasks {
		switch {
		case t.ID <= 0:
			return reject(KeyTasks, i, "missing id")
		case seen[t.ID]:
			return reject(KeyTasks, i, fmt.Sprintf("duplicate id %d", t.ID))
		case strings.TrimSpace(t.Text) == "":
			return reject(KeyTasks, i, "empty text")
		}
		seen[t.ID] = true
	}
	return nil
}

// Recovered returns the parse error that was recovered while loading, if any
func (r *Tasks) Recovered() *ParseError {
	return r.recovered
}

// List returns the tasks matching both the status filter and a
// case-insensitive substring of their text, in collection order
func (r *Tasks) List(status StatusFilter, text string) []models.Task {
	needle := strings.ToLower(text)
	out := make([]models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if status.matches(t) && strings.Contains(strings.ToLower(t.Text), needle) {
			out = append(out, t)
		}
	}
	return out
}

// All returns a copy of the whole collection
func (r *Tasks) All() []models.Task {
	return slices.Clone(r.tasks)
}

// Len returns the number of tasks
func (r *Tasks) Len() int {
	return len(r.tasks)
}

// IndexOf returns the collection position of id, or -1
func (r *Tasks) IndexOf(id int64) int {
	return slices.IndexFunc(r.tasks, func(t models.Task) bool { return t.ID == id })
}

// CountByStatus counts over the full collection regardless of any filter
func (r *Tasks) CountByStatus() Counts {
	var c Counts
	for _, t := range r.tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// Add validates and prepends a new active, medium priority task
func (r *Tasks) Add(text string) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, &ValidationError{Field: "text"}
	}

	now := stamp(r.now())
	var last int64
	for _, t := range r.tasks {
		last = max(last, t.ID)
	}
	t := models.Task{
		ID:        nextID(now, last),
		Text:      text,
		Priority:  models.PriorityMedium,
		CreatedAt: now,
	}

	next := make([]models.Task, 0, len(r.tasks)+1)
	next = append(next, t)
	next = append(next, r.tasks...)
	if err := r.commit(next); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// ToggleCompleted flips the completed flag of id
func (r *Tasks) ToggleCompleted(id int64) (models.Task, error) {
	return r.modify(id, func(t *models.Task) {
		t.Completed = !t.Completed
	})
}

// SetPriority changes the priority of id
func (r *Tasks) SetPriority(id int64, p models.Priority) (models.Task, error) {
	if !p.Valid() {
		return models.Task{}, &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown value %q", p)}
	}
	return r.modify(id, func(t *models.Task) {
		t.Priority = p
	})
}

func (r *Tasks) modify(id int64, fn func(*models.Task)) (models.Task, error) {
	i := r.IndexOf(id)
	if i < 0 {
		return models.Task{}, &NotFoundError{Kind: "task", ID: id}
	}
	next := slices.Clone(r.tasks)
	fn(&next[i])
	if err := r.commit(next); err != nil {
		return models.Task{}, err
	}
	return next[i], nil
}

// Remove deletes the task with id. Removing an absent id does nothing.
func (r *Tasks) Remove(id int64) error {
	i := r.IndexOf(id)
	if i < 0 {
		return nil
	}
	return r.commit(slices.Delete(slices.Clone(r.tasks), i, i+1))
}

// Reorder moves the task at from to position to, shifting the tasks in
// between. Both indices must be within the collection; anything else is a
// caller bug and panics.
func (r *Tasks) Reorder(from, to int) error {
	n := len(r.tasks)
	if from < 0 || from >= n || to < 0 || to >= n {
		panic(fmt.Sprintf("repo: reorder %d -> %d out of range [0,%d)", from, to, n))
	}
	if from == to {
		return nil
	}
	next := slices.Clone(r.tasks)
	moved := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, moved)
	return r.commit(next)
}

func (r *Tasks) commit(next []models.Task) error {
	if err := save(r.store, KeyTasks, next); err != nil {
		return err
	}
	r.tasks = next
	return nil
}
