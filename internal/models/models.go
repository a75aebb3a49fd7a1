package models

import (
	"fmt"
	"time"
)

// Note is a titled free-text note with optional tags
type Note struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Tags      []string  `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority converts user input into a Priority
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", s)
	}
	return p, nil
}

// Task is a single to-do item. Its position is its index in the task list.
type Task struct {
	ID        int64     `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Completed bool      `json:"completed" yaml:"completed"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// StudyTimeRecord accumulates study seconds for one local calendar day
type StudyTimeRecord struct {
	Seconds int    `json:"time" yaml:"time"`
	Date    string `json:"date" yaml:"date"`
}

// DateLayout formats the day key of a StudyTimeRecord
const DateLayout = "Mon Jan 02 2006"

// DateKey returns the day key for t in t's location
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Theme is the persisted colour scheme
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
