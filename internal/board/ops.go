package board

import (
	"fmt"

	"github.com/google/uuid"
)

// AddColumn appends a new empty column with a generated id and returns it.
func (b *Board) AddColumn(title string) *Column {
	col := &Column{
		ID:    uuid.NewString(),
		Title: title,
	}
	b.Columns = append(b.Columns, col)
	return col
}

// AddTask appends a new task to the column with the given id.
func (b *Board) AddTask(columnID, title, description string) (*Task, error) {
	col := b.FindColumn(columnID)
	if col == nil {
		return nil, fmt.Errorf("column not found: %s", columnID)
	}
	task := &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
	}
	col.Tasks = append(col.Tasks, task)
	return task, nil
}

// MoveTask relocates a task to the end of the destination column. The task
// keeps its identity; moving a task onto its own column is a no-op.
func (b *Board) MoveTask(taskID, toColumnID string) error {
	dest := b.FindColumn(toColumnID)
	if dest == nil {
		return fmt.Errorf("column not found: %s", toColumnID)
	}
	src := b.ColumnOf(taskID)
	if src == nil {
		return fmt.Errorf("task not found: %s", taskID)
	}
	if src == dest {
		return nil
	}
	task := src.RemoveTask(taskID)
	dest.Tasks = append(dest.Tasks, task)
	return nil
}

// DeleteTask removes a task from whichever column holds it.
func (b *Board) DeleteTask(taskID string) error {
	src := b.ColumnOf(taskID)
	if src == nil {
		return fmt.Errorf("task not found: %s", taskID)
	}
	src.RemoveTask(taskID)
	return nil
}

// DeleteColumn removes a column and everything in it.
func (b *Board) DeleteColumn(columnID string) error {
	for i, c := range b.Columns {
		if c.ID == columnID {
			b.Columns = append(b.Columns[:i], b.Columns[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("column not found: %s", columnID)
}

// RemoveTask splices the task with the given id out of the column and
// returns it, or nil when the column does not hold it.
func (c *Column) RemoveTask(taskID string) *Task {
	for i, t := range c.Tasks {
		if t.ID == taskID {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return t
		}
	}
	return nil
}
