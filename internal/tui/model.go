package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/evanschultz/kanboard/internal/app"
	"github.com/evanschultz/kanboard/internal/domain"
)

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeRenameColumn
	modeEditTask
	modeTaskDetails
	modeConfirmDeleteColumn
)

// Model is the bubbletea model rendering one board.
type Model struct {
	board      *app.Board
	drag       *app.DragController
	dragConfig app.DragConfig

	ready  bool
	width  int
	height int

	status string

	help help.Model
	keys keyMap
	ui   UIConfig

	selectedColumn int
	selectedTask   int

	mode                  inputMode
	input                 textinput.Model
	editingColumnID       string
	editingTaskID         string
	detailsTaskID         string
	pendingDeleteColumnID string

	// pressFocused records whether the pressed entity already had focus, so a
	// plain click on a focused card opens it for editing.
	pressFocused bool

	copyText ClipboardFunc
	markdown *markdownRenderer
}

// NewModel constructs a model over board. A nil board starts with the default columns.
func NewModel(board *app.Board, opts ...Option) Model {
	if board == nil {
		board = app.NewBoard(nil, app.BoardConfig{})
	}
	h := help.New()
	h.ShowAll = false
	m := Model{
		board:    board,
		status:   "ready",
		help:     h,
		keys:     newKeyMap(),
		ui:       DefaultUIConfig(),
		input:    newInlineInput(),
		copyText: defaultClipboard,
		markdown: &markdownRenderer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.drag = app.NewDragController(board, m.dragConfig)
	return m
}

// newInlineInput constructs the text input used for inline edits.
func newInlineInput() textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 2000
	return in
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	default:
		if m.editing() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// handleNormalModeKey handles board-level keys.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.cancel) {
		switch {
		case m.drag.Cancel():
			m.status = "drag canceled"
		case m.help.ShowAll:
			m.help.ShowAll = false
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.toggleHelp) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.help.ShowAll {
		return m, nil
	}
	if m.drag.Dragging() {
		m.status = "release to drop • esc cancels the drag"
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.moveLeft):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.selectedTask = 0
		}
	case key.Matches(msg, m.keys.moveRight):
		if m.selectedColumn < len(m.board.Columns())-1 {
			m.selectedColumn++
			m.selectedTask = 0
		}
	case key.Matches(msg, m.keys.moveUp):
		if m.selectedTask > 0 {
			m.selectedTask--
		}
	case key.Matches(msg, m.keys.moveDown):
		if m.selectedTask < len(m.currentColumnTasks())-1 {
			m.selectedTask++
		}
	case key.Matches(msg, m.keys.addTask):
		column, ok := m.currentColumn()
		if !ok {
			m.status = "create a column first"
			return m, nil
		}
		m.createTask(column.ID)
	case key.Matches(msg, m.keys.addColumn):
		m.createColumn()
	case key.Matches(msg, m.keys.deleteTask):
		task, ok := m.currentTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.deleteTask(task.ID)
	case key.Matches(msg, m.keys.deleteColumn):
		column, ok := m.currentColumn()
		if !ok {
			m.status = "no column selected"
			return m, nil
		}
		m.requestDeleteColumn(column.ID)
	case key.Matches(msg, m.keys.renameColumn):
		column, ok := m.currentColumn()
		if !ok {
			m.status = "no column selected"
			return m, nil
		}
		return m, m.startRenameColumn(column)
	case key.Matches(msg, m.keys.editTask):
		task, ok := m.currentTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.startEditTask(task)
	case key.Matches(msg, m.keys.taskDetails):
		task, ok := m.currentTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.mode = modeTaskDetails
		m.detailsTaskID = task.ID
	case key.Matches(msg, m.keys.copyTask):
		task, ok := m.currentTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		m.copyTask(task)
	}
	m.clampSelections()
	return m, nil
}

// handleInputModeKey handles keys while an edit, overlay, or confirmation is open.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeTaskDetails:
		task, ok := m.detailsTask()
		if !ok {
			m.closeMode()
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.editTask):
			m.closeMode()
			return m, m.startEditTask(task)
		case key.Matches(msg, m.keys.copyTask):
			m.copyTask(task)
		case key.Matches(msg, m.keys.cancel), key.Matches(msg, m.keys.taskDetails), key.Matches(msg, m.keys.quit):
			m.closeMode()
		}
		return m, nil

	case modeConfirmDeleteColumn:
		switch msg.String() {
		case "y", "enter":
			id := m.pendingDeleteColumnID
			m.closeMode()
			m.deleteColumn(id)
		case "n", "esc":
			m.closeMode()
			m.status = "delete canceled"
		}
		return m, nil

	case modeRenameColumn, modeEditTask:
		switch msg.String() {
		case "esc":
			m.closeMode()
			m.status = "edit discarded"
			return m, nil
		case "enter":
			m.commitEdit()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	default:
		m.closeMode()
		return m, nil
	}
}

// handleMouseClick arms a drag on cards and columns and runs button actions.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft {
		return m, nil
	}
	if m.help.ShowAll {
		m.help.ShowAll = false
		return m, nil
	}
	switch m.mode {
	case modeTaskDetails:
		m.closeMode()
		return m, nil
	case modeConfirmDeleteColumn:
		return m, nil
	case modeRenameColumn, modeEditTask:
		m.commitEdit()
	}

	h := m.currentLayout().hitTest(msg.X, msg.Y)
	switch h.kind {
	case hitAddColumn:
		m.createColumn()
	case hitDeleteColumn:
		m.requestDeleteColumn(h.columnID)
	case hitDeleteTask:
		m.deleteTask(h.taskID)
	case hitAddTask:
		m.createTask(h.columnID)
	case hitTask, hitColumnHeader, hitColumnBody:
		m.pressFocused = m.isFocused(h)
		m.focusHit(h)
		m.drag.Press(h.target(), app.Point{X: msg.X, Y: msg.Y})
	}
	m.clampSelections()
	return m, nil
}

// handleMouseMotion feeds pointer travel into the drag session.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone {
		return m, nil
	}
	wasDragging := m.drag.Dragging()
	over := m.currentLayout().hitTest(msg.X, msg.Y).target()
	m.drag.Motion(app.Point{X: msg.X, Y: msg.Y}, over)
	if !wasDragging && m.drag.Dragging() {
		switch state := m.drag.State().(type) {
		case app.DraggingTask:
			m.status = "dragging " + truncate(state.Task.Content, 32)
		case app.DraggingColumn:
			m.status = "dragging column " + truncate(state.Column.Title, 32)
		case app.Idle:
		}
	}
	return m, nil
}

// handleMouseRelease drops the active drag or completes a click.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone {
		return m, nil
	}
	state := m.drag.State()
	over := m.currentLayout().hitTest(msg.X, msg.Y).target()
	result := m.drag.Release(over)

	switch {
	case result.Clicked:
		return m, m.handleClick(result.Origin)
	case result.Committed:
		switch state := state.(type) {
		case app.DraggingTask:
			m.focusTask(state.Task.ID)
			m.status = "task moved"
		case app.DraggingColumn:
			m.focusColumn(state.Column.ID)
			m.status = "column moved"
		case app.Idle:
		}
	default:
		if _, idle := state.(app.Idle); !idle {
			m.status = "nothing moved"
		}
	}
	m.clampSelections()
	return m, nil
}

// handleClick treats a press that never became a drag as a click on origin.
// Clicking an already focused card or column title opens it for editing.
func (m *Model) handleClick(origin app.Target) tea.Cmd {
	if !m.pressFocused {
		return nil
	}
	if origin.TaskID != "" {
		task, err := m.board.Task(origin.TaskID)
		if err != nil {
			return nil
		}
		return m.startEditTask(task)
	}
	column, err := m.board.Column(origin.ColumnID)
	if err != nil {
		return nil
	}
	return m.startRenameColumn(column)
}

// handleMouseWheel moves the task selection.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone || m.help.ShowAll {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		if m.selectedTask > 0 {
			m.selectedTask--
		}
	case tea.MouseWheelDown:
		if m.selectedTask < len(m.currentColumnTasks())-1 {
			m.selectedTask++
		}
	}
	return m, nil
}

// createColumn appends a column and focuses it.
func (m *Model) createColumn() {
	column := m.board.CreateColumn()
	m.focusColumn(column.ID)
	m.status = "created " + column.Title
}

// createTask appends a task to columnID and focuses it.
func (m *Model) createTask(columnID string) {
	task, ok := m.board.CreateTask(columnID)
	if !ok {
		m.status = "column not found"
		return
	}
	m.focusTask(task.ID)
	m.status = "created " + task.Content
}

// deleteTask removes one task.
func (m *Model) deleteTask(taskID string) {
	if !m.board.DeleteTask(taskID) {
		m.status = "task not found"
		return
	}
	m.status = "task deleted"
	m.clampSelections()
}

// requestDeleteColumn deletes a column, asking first when configured.
func (m *Model) requestDeleteColumn(columnID string) {
	if !m.ui.ConfirmDeleteColumn {
		m.deleteColumn(columnID)
		return
	}
	if _, err := m.board.Column(columnID); err != nil {
		m.status = "column not found"
		return
	}
	m.focusColumn(columnID)
	m.mode = modeConfirmDeleteColumn
	m.pendingDeleteColumnID = columnID
}

// deleteColumn removes a column and its tasks.
func (m *Model) deleteColumn(columnID string) {
	column, err := m.board.Column(columnID)
	if err != nil {
		m.status = "column not found"
		return
	}
	removed := len(m.board.TasksForColumn(columnID))
	if !m.board.DeleteColumn(columnID) {
		m.status = "column not found"
		return
	}
	m.status = fmt.Sprintf("deleted %s (%d tasks)", column.Title, removed)
	m.clampSelections()
}

// copyTask writes task content to the clipboard.
func (m *Model) copyTask(task domain.Task) {
	if err := m.copyText(task.Content); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied task content"
}

// startRenameColumn opens the inline title editor.
func (m *Model) startRenameColumn(column domain.Column) tea.Cmd {
	m.focusColumn(column.ID)
	m.mode = modeRenameColumn
	m.editingColumnID = column.ID
	m.input.Placeholder = "column title"
	m.input.SetValue(column.Title)
	m.input.CursorEnd()
	m.status = "enter saves • esc discards"
	return m.input.Focus()
}

// startEditTask opens the inline content editor.
func (m *Model) startEditTask(task domain.Task) tea.Cmd {
	m.focusTask(task.ID)
	m.mode = modeEditTask
	m.editingTaskID = task.ID
	m.input.Placeholder = "task content"
	m.input.SetValue(task.Content)
	m.input.CursorEnd()
	m.status = "enter saves • esc discards"
	return m.input.Focus()
}

// commitEdit saves the inline editor value and closes it.
func (m *Model) commitEdit() {
	value := m.input.Value()
	switch m.mode {
	case modeRenameColumn:
		if m.board.RenameColumn(m.editingColumnID, value) {
			m.status = "column renamed"
		} else {
			m.status = "column not found"
		}
	case modeEditTask:
		if m.board.UpdateTaskContent(m.editingTaskID, value) {
			m.status = "task updated"
		} else {
			m.status = "task not found"
		}
	}
	m.closeMode()
}

// closeMode returns to board navigation.
func (m *Model) closeMode() {
	m.mode = modeNone
	m.input.Blur()
	m.input.SetValue("")
	m.editingColumnID = ""
	m.editingTaskID = ""
	m.detailsTaskID = ""
	m.pendingDeleteColumnID = ""
}

// editing reports whether the inline editor is open.
func (m Model) editing() bool {
	return m.mode == modeRenameColumn || m.mode == modeEditTask
}

// isFocused reports whether h names the focused task or column title.
func (m Model) isFocused(h hit) bool {
	column, ok := m.currentColumn()
	if !ok || column.ID != h.columnID {
		return false
	}
	switch h.kind {
	case hitTask:
		task, ok := m.currentTask()
		return ok && task.ID == h.taskID
	case hitColumnHeader:
		return true
	default:
		return false
	}
}

// focusHit moves focus to the entity under a hit.
func (m *Model) focusHit(h hit) {
	if h.taskID != "" {
		m.focusTask(h.taskID)
		return
	}
	if h.columnID != "" {
		m.focusColumn(h.columnID)
	}
}

// focusColumn selects a column, keeping the task selection when it stays.
func (m *Model) focusColumn(columnID string) {
	idx := m.board.ColumnIndex(columnID)
	if idx < 0 {
		return
	}
	if idx != m.selectedColumn {
		m.selectedTask = 0
	}
	m.selectedColumn = idx
}

// focusTask selects a task and its column.
func (m *Model) focusTask(taskID string) {
	layout := m.board.Layout()
	columnID, idx, ok := layout.Locate(taskID)
	if !ok {
		return
	}
	m.selectedColumn = layout.ColumnIndex(columnID)
	m.selectedTask = idx
}

// clampSelections clamps selections.
func (m *Model) clampSelections() {
	columns := m.board.Columns()
	m.selectedColumn = clamp(m.selectedColumn, 0, len(columns)-1)
	m.selectedTask = clamp(m.selectedTask, 0, len(m.currentColumnTasks())-1)
}

// currentColumn returns the focused column.
func (m Model) currentColumn() (domain.Column, bool) {
	columns := m.board.Columns()
	if len(columns) == 0 {
		return domain.Column{}, false
	}
	return columns[clamp(m.selectedColumn, 0, len(columns)-1)], true
}

// currentColumnTasks returns the focused column's tasks.
func (m Model) currentColumnTasks() []domain.Task {
	column, ok := m.currentColumn()
	if !ok {
		return nil
	}
	return m.board.TasksForColumn(column.ID)
}

// currentTask returns the focused task.
func (m Model) currentTask() (domain.Task, bool) {
	tasks := m.currentColumnTasks()
	if len(tasks) == 0 {
		return domain.Task{}, false
	}
	return tasks[clamp(m.selectedTask, 0, len(tasks)-1)], true
}

// detailsTask returns the task shown in the details overlay.
func (m Model) detailsTask() (domain.Task, bool) {
	task, err := m.board.Task(m.detailsTaskID)
	if err != nil {
		return domain.Task{}, false
	}
	return task, true
}

// currentLayout computes geometry for what is on screen, including a pending drag move.
func (m Model) currentLayout() boardLayout {
	return m.computeLayout(m.drag.Preview())
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// truncate cuts s to max display cells, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if max <= 0 {
		return ""
	}
	if max == 1 {
		return ansi.Truncate(s, max, "")
	}
	return ansi.Truncate(s, max, "…")
}
