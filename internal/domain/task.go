package domain

import (
	"fmt"
	"strings"
)

// Task is a content-bearing card owned by exactly one column.
type Task struct {
	ID       string
	ColumnID string
	Content  string
}

// NewTask constructs a task bound to columnID.
func NewTask(id, columnID, content string) (Task, error) {
	id = strings.TrimSpace(id)
	columnID = strings.TrimSpace(columnID)
	if id == "" {
		return Task{}, ErrInvalidID
	}
	if columnID == "" {
		return Task{}, ErrInvalidColumnID
	}
	return Task{
		ID:       id,
		ColumnID: columnID,
		Content:  content,
	}, nil
}

// DefaultTaskContent returns the generated content for the n-th task.
func DefaultTaskContent(n int) string {
	return fmt.Sprintf("Task %d", n)
}

// Reparent moves the task under another column.
func (t *Task) Reparent(columnID string) error {
	columnID = strings.TrimSpace(columnID)
	if columnID == "" {
		return ErrInvalidColumnID
	}
	t.ColumnID = columnID
	return nil
}

// SetContent replaces the task content.
func (t *Task) SetContent(content string) {
	t.Content = content
}
