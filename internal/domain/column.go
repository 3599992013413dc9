package domain

import (
	"fmt"
	"strings"
)

// Column is one named bucket of tasks; its position is its index in the board's column sequence.
type Column struct {
	ID    string
	Title string
}

// NewColumn constructs a column. Titles are kept verbatim, empty included.
func NewColumn(id, title string) (Column, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Column{}, ErrInvalidID
	}
	return Column{
		ID:    id,
		Title: title,
	}, nil
}

// DefaultColumnTitle returns the generated title for the n-th column.
func DefaultColumnTitle(n int) string {
	return fmt.Sprintf("Column %d", n)
}

// Rename replaces the column title.
func (c *Column) Rename(title string) {
	c.Title = title
}
