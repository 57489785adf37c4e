// Package board defines the in-memory Kanban board model and the plain
// structural operations over it (add/move/delete of columns and tasks).
//
// The board is an ordered sequence of columns; each column owns an ordered
// sequence of tasks. All rule and sort directives live as inline tags in
// column titles, and task routing annotations live in task titles and
// descriptions. This package knows nothing about those tags; the gather
// engine interprets them.
package board

import (
	"fmt"
	"strings"
)

// Board is an ordered sequence of columns. It has no identity of its own
// beyond containment.
type Board struct {
	Title   string    `json:"title,omitempty"`
	Columns []*Column `json:"columns"`
}

// Column is a named lane of tasks. The title is free text and is the only
// place gather/sort directives appear.
type Column struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Tasks []*Task `json:"tasks"`
}

// Task is a single card. Title and description are both free text and both
// are scanned for tags, dates, and person annotations by the gather engine.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Done        bool   `json:"done,omitempty"`
}

// Text returns the combined text the gather engine scans for annotations.
func (t *Task) Text() string {
	if t.Description == "" {
		return t.Title
	}
	return t.Title + " " + t.Description
}

// Validate checks if the task has valid field values
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	return nil
}

// Validate checks if the column has valid field values
func (c *Column) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("column id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("column title is required")
	}
	for _, t := range c.Tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	return nil
}

// Validate checks the whole board, including duplicate column ids.
func (b *Board) Validate() error {
	seen := make(map[string]bool)
	for _, c := range b.Columns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("column %s: %w", c.ID, err)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate column id: %s", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// FindColumn returns the column with the given id, or nil.
func (b *Board) FindColumn(id string) *Column {
	for _, c := range b.Columns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ColumnOf returns the first column containing a task with the given id,
// or nil if no column holds it.
func (b *Board) ColumnOf(taskID string) *Column {
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == taskID {
				return c
			}
		}
	}
	return nil
}

// FindTask returns the first task with the given id along with its column,
// or (nil, nil) when absent.
func (b *Board) FindTask(taskID string) (*Column, *Task) {
	for _, c := range b.Columns {
		for _, t := range c.Tasks {
			if t.ID == taskID {
				return c, t
			}
		}
	}
	return nil, nil
}
