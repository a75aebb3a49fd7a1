// Package session is the controller between a View and the core. A Session
// owns the repositories, the timer engine and the per-session UI state
// (filters, the note being edited, the task being dragged), so several
// sessions can coexist in one process.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/tgienger/focusdash/internal/dashboard"
	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
	"github.com/tgienger/focusdash/internal/timer"
)

// View is the presentation capability the session drives
type View interface {
	Render(Snapshot)
	Confirm(message string) bool
	Notify(message string)
}

// Snapshot is an immutable copy of everything a View draws
type Snapshot struct {
	Theme models.Theme

	Timer        timer.State
	Progress     float64
	StudySeconds int

	Notes       []models.Note
	NoteFilter  string
	EditingNote int64

	Tasks        []models.Task
	StatusFilter repo.StatusFilter
	TaskSearch   string
	Counts       repo.Counts
	DragIndex    int

	Metrics dashboard.Metrics
}

// ErrIndex reports a view position outside the visible task list
var ErrIndex = errors.New("task position out of range")

// Session is a single user's dashboard
type Session struct {
	notes  *repo.Notes
	tasks  *repo.Tasks
	study  *repo.StudyTime
	themes *repo.Themes
	engine *timer.Engine
	view   View

	noteFilter   string
	editingID    int64
	statusFilter repo.StatusFilter
	taskSearch   string
	dragIndex    int
	metrics      dashboard.Metrics
}

// Option configures Open
type Option func(*options)

type options struct {
	clock repo.Clock
}

// WithClock drives every repository from c
func WithClock(c repo.Clock) Option {
	return func(o *options) { o.clock = c }
}

// Open loads every repository from store and returns a session rendering to
// view. Collections that could not be decoded are reset and reported through
// View.Notify.
func Open(store repo.Store, view View, opts ...Option) (*Session, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	notes, err := repo.OpenNotes(store, repo.WithNotesClock(o.clock))
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	tasks, err := repo.OpenTasks(store, repo.WithTasksClock(o.clock))
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	study, err := repo.OpenStudyTime(store, repo.WithStudyClock(o.clock))
	if err != nil {
		return nil, fmt.Errorf("load study time: %w", err)
	}
	themes, err := repo.OpenThemes(store)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}

	s := &Session{
		notes:        notes,
		tasks:        tasks,
		study:        study,
		themes:       themes,
		engine:       timer.New(study),
		view:         view,
		statusFilter: repo.StatusAll,
		dragIndex:    -1,
	}
	s.metrics = dashboard.ComputeMetrics(study.Today(), tasks.All())

	for _, perr := range []*repo.ParseError{notes.Recovered(), tasks.Recovered(), study.Recovered()} {
		if perr != nil {
			view.Notify(fmt.Sprintf("Stored %s could not be read and was reset.", perr.Key))
		}
	}
	return s, nil
}

// Snapshot returns the current state without rendering it
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Theme:        s.themes.Get(),
		Timer:        s.engine.State(),
		Progress:     s.engine.Progress(),
		StudySeconds: s.study.Today(),
		Notes:        s.notes.List(s.noteFilter),
		NoteFilter:   s.noteFilter,
		EditingNote:  s.editingID,
		Tasks:        s.tasks.List(s.statusFilter, s.taskSearch),
		StatusFilter: s.statusFilter,
		TaskSearch:   s.taskSearch,
		Counts:       s.tasks.CountByStatus(),
		DragIndex:    s.dragIndex,
		Metrics:      s.metrics,
	}
}

func (s *Session) render() {
	s.view.Render(s.Snapshot())
}

// Render pushes the current snapshot to the view
func (s *Session) Render() {
	s.render()
}

// ToggleTheme switches between dark and light
func (s *Session) ToggleTheme() (models.Theme, error) {
	t, err := s.themes.Toggle()
	s.render()
	return t, err
}

// SetTheme stores t
func (s *Session) SetTheme(t models.Theme) error {
	err := s.themes.Set(t)
	s.render()
	return err
}

// RefreshDashboard recomputes the metrics from current snapshots
func (s *Session) RefreshDashboard() dashboard.Metrics {
	s.metrics = dashboard.ComputeMetrics(s.study.Today(), s.tasks.All())
	s.render()
	return s.metrics
}
