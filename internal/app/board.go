package app

import (
	"slices"
	"strings"

	"github.com/evanschultz/kanboard/internal/domain"
	"github.com/google/uuid"
)

// BoardConfig holds configuration for a new board.
type BoardConfig struct {
	// Columns seeds the initial column titles. Nil seeds the default set; an empty
	// non-nil slice starts with no columns.
	Columns []string
	Logger  Logger
}

// Layout is a detached view of column order and per-column task order.
type Layout struct {
	Columns []domain.Column
	Tasks   map[string][]domain.Task
}

// TasksFor returns the tasks displayed in one column.
func (l Layout) TasksFor(columnID string) []domain.Task {
	return l.Tasks[columnID]
}

// ColumnIndex returns the position of a column, or -1.
func (l Layout) ColumnIndex(columnID string) int {
	return slices.IndexFunc(l.Columns, func(c domain.Column) bool {
		return c.ID == columnID
	})
}

// Locate returns the owning column and in-column index of a task.
func (l Layout) Locate(taskID string) (string, int, bool) {
	for _, column := range l.Columns {
		idx := slices.IndexFunc(l.Tasks[column.ID], func(t domain.Task) bool {
			return t.ID == taskID
		})
		if idx >= 0 {
			return column.ID, idx, true
		}
	}
	return "", -1, false
}

// Snapshot is a flat copy of board state.
type Snapshot struct {
	Columns []domain.Column
	Tasks   []domain.Task
}

// Board owns the column sequence and the tasks with their per-column order.
// Every mutation goes through its methods. Board is not safe for concurrent use;
// callers drive it from a single event loop.
type Board struct {
	idGen    IDGenerator
	logger   Logger
	columns  []domain.Column
	tasks    map[string]domain.Task
	order    map[string][]string
	revision uint64
}

// NewBoard constructs a board seeded with the configured columns.
func NewBoard(idGen IDGenerator, cfg BoardConfig) *Board {
	if idGen == nil {
		idGen = uuid.NewString
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	b := &Board{
		idGen:  idGen,
		logger: logger,
		tasks:  map[string]domain.Task{},
		order:  map[string][]string{},
	}
	titles := cfg.Columns
	if titles == nil {
		titles = DefaultColumnTitles()
	}
	for _, title := range titles {
		b.appendColumn(title)
	}
	return b
}

// DefaultColumnTitles returns the titles a fresh board starts with.
func DefaultColumnTitles() []string {
	return []string{"Todo", "Work in progress", "Done"}
}

// CreateColumn appends a column with a generated title.
func (b *Board) CreateColumn() domain.Column {
	column := b.appendColumn(domain.DefaultColumnTitle(len(b.columns) + 1))
	b.commit("column created", "column_id", column.ID, "title", column.Title)
	return column
}

// DeleteColumn removes a column together with every task it owns.
func (b *Board) DeleteColumn(id string) bool {
	idx := b.ColumnIndex(id)
	if idx < 0 {
		return false
	}
	b.columns = slices.Delete(b.columns, idx, idx+1)
	removed := 0
	for _, taskID := range b.order[id] {
		delete(b.tasks, taskID)
		removed++
	}
	delete(b.order, id)
	for taskID, task := range b.tasks {
		if task.ColumnID == id {
			delete(b.tasks, taskID)
			removed++
		}
	}
	b.commit("column deleted", "column_id", id, "tasks_removed", removed)
	return true
}

// RenameColumn replaces a column title.
func (b *Board) RenameColumn(id, title string) bool {
	idx := b.ColumnIndex(id)
	if idx < 0 {
		return false
	}
	b.columns[idx].Rename(title)
	b.commit("column renamed", "column_id", id)
	return true
}

// CreateTask appends a task with generated content to the end of a column.
// It reports false and changes nothing when the column does not exist.
func (b *Board) CreateTask(columnID string) (domain.Task, bool) {
	if b.ColumnIndex(columnID) < 0 {
		return domain.Task{}, false
	}
	task, err := domain.NewTask(b.nextID(), columnID, domain.DefaultTaskContent(len(b.tasks)+1))
	if err != nil {
		return domain.Task{}, false
	}
	b.tasks[task.ID] = task
	b.order[columnID] = append(b.order[columnID], task.ID)
	b.commit("task created", "task_id", task.ID, "column_id", columnID)
	return task, true
}

// DeleteTask removes a task.
func (b *Board) DeleteTask(id string) bool {
	task, ok := b.tasks[id]
	if !ok {
		return false
	}
	delete(b.tasks, id)
	b.order[task.ColumnID] = removeID(b.order[task.ColumnID], id)
	b.commit("task deleted", "task_id", id, "column_id", task.ColumnID)
	return true
}

// UpdateTaskContent replaces a task's content.
func (b *Board) UpdateTaskContent(id, content string) bool {
	task, ok := b.tasks[id]
	if !ok {
		return false
	}
	task.SetContent(content)
	b.tasks[id] = task
	b.commit("task content updated", "task_id", id)
	return true
}

// MoveColumn relocates one column, shifting the columns in between by one slot.
func (b *Board) MoveColumn(fromIndex, toIndex int) bool {
	n := len(b.columns)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return false
	}
	b.columns = arrayMove(b.columns, fromIndex, toIndex)
	b.commit("column moved", "from", fromIndex, "to", toIndex)
	return true
}

// MoveTask reparents a task when targetColumnID differs from its column and places it
// at targetIndex within the target column. targetIndex is a position in that
// column's own task list, not in the board-wide flat order returned by Tasks. The
// index is taken after the task is removed from its current slot; negative or
// past-the-end values append.
func (b *Board) MoveTask(taskID, targetColumnID string, targetIndex int) bool {
	task, ok := b.tasks[taskID]
	if !ok || b.ColumnIndex(targetColumnID) < 0 {
		return false
	}
	fromColumn := task.ColumnID
	fromIndex := slices.Index(b.order[fromColumn], taskID)

	source := removeID(b.order[fromColumn], taskID)
	target := source
	if targetColumnID != fromColumn {
		target = slices.Clone(b.order[targetColumnID])
	}
	if targetIndex < 0 || targetIndex > len(target) {
		targetIndex = len(target)
	}
	if targetColumnID == fromColumn && targetIndex == fromIndex {
		return false
	}
	target = slices.Insert(target, targetIndex, taskID)

	if targetColumnID != fromColumn {
		if err := task.Reparent(targetColumnID); err != nil {
			return false
		}
		b.tasks[taskID] = task
		b.order[fromColumn] = source
	}
	b.order[targetColumnID] = target
	b.commit("task moved", "task_id", taskID, "from_column", fromColumn, "to_column", targetColumnID, "index", targetIndex)
	return true
}

// Columns returns the columns in display order.
func (b *Board) Columns() []domain.Column {
	return slices.Clone(b.columns)
}

// Column returns one column by id.
func (b *Board) Column(id string) (domain.Column, error) {
	idx := b.ColumnIndex(id)
	if idx < 0 {
		return domain.Column{}, ErrNotFound
	}
	return b.columns[idx], nil
}

// ColumnIndex returns the display position of a column, or -1.
func (b *Board) ColumnIndex(id string) int {
	return slices.IndexFunc(b.columns, func(c domain.Column) bool {
		return c.ID == id
	})
}

// Task returns one task by id.
func (b *Board) Task(id string) (domain.Task, error) {
	task, ok := b.tasks[id]
	if !ok {
		return domain.Task{}, ErrNotFound
	}
	return task, nil
}

// TasksForColumn returns a column's tasks in display order.
func (b *Board) TasksForColumn(columnID string) []domain.Task {
	ids := b.order[columnID]
	out := make([]domain.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.tasks[id])
	}
	return out
}

// Tasks returns every task as one flat sequence: columns in display order, each
// contributing its tasks in display order.
func (b *Board) Tasks() []domain.Task {
	out := make([]domain.Task, 0, len(b.tasks))
	for _, column := range b.columns {
		out = append(out, b.TasksForColumn(column.ID)...)
	}
	return out
}

// Layout returns a detached copy of column and per-column task order.
func (b *Board) Layout() Layout {
	layout := Layout{
		Columns: b.Columns(),
		Tasks:   make(map[string][]domain.Task, len(b.columns)),
	}
	for _, column := range b.columns {
		layout.Tasks[column.ID] = b.TasksForColumn(column.ID)
	}
	return layout
}

// Snapshot returns a flat copy of the board.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Columns: b.Columns(),
		Tasks:   b.Tasks(),
	}
}

// Revision increases by one for every committed mutation; no-op calls leave it unchanged.
func (b *Board) Revision() uint64 {
	return b.revision
}

// appendColumn adds a column without counting it as a user mutation.
func (b *Board) appendColumn(title string) domain.Column {
	column, err := domain.NewColumn(b.nextID(), title)
	if err != nil {
		// nextID never returns an empty id.
		panic(err)
	}
	b.columns = append(b.columns, column)
	b.order[column.ID] = nil
	return column
}

// nextID draws ids from the generator until one is non-empty and unused.
func (b *Board) nextID() string {
	for range 8 {
		id := strings.TrimSpace(b.idGen())
		if id != "" && !b.idTaken(id) {
			return id
		}
	}
	return uuid.NewString()
}

// idTaken reports whether any column or task already uses id.
func (b *Board) idTaken(id string) bool {
	if _, ok := b.tasks[id]; ok {
		return true
	}
	return b.ColumnIndex(id) >= 0
}

// commit records one state transition.
func (b *Board) commit(msg string, keyvals ...any) {
	b.revision++
	b.logger.Debug(msg, append(keyvals, "revision", b.revision)...)
}

// removeID returns ids without id, leaving the input untouched.
func removeID(ids []string, id string) []string {
	idx := slices.Index(ids, id)
	if idx < 0 {
		return slices.Clone(ids)
	}
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:idx]...)
	return append(out, ids[idx+1:]...)
}

// arrayMove returns a copy of in with the element at from relocated to to.
func arrayMove[T any](in []T, from, to int) []T {
	out := slices.Clone(in)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}
