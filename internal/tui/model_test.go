package tui

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	charmLog "github.com/charmbracelet/log"
	"github.com/evanschultz/kanboard/internal/app"
	"github.com/evanschultz/kanboard/internal/domain"
)

// newTestBoard builds a board with columns A, B, C and predictable ids.
func newTestBoard() *app.Board {
	n := 0
	return app.NewBoard(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}, app.BoardConfig{Columns: []string{"A", "B", "C"}})
}

// newTestModel builds a ready model over a fresh A/B/C board.
func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithClipboard(func(string) error { return nil })}, opts...)
	return loadReadyModel(t, NewModel(newTestBoard(), opts...))
}

func TestModelRendersColumnsAndButtons(t *testing.T) {
	m := newTestModel(t)
	out := m.Render()
	for _, want := range []string{"kanboard", "3 columns · 0 tasks", addColumnLabel, "A (0)", "B (0)", "C (0)", addTaskLabel, "(empty)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered board\n%s", want, out)
		}
	}
	if got := len(strings.Split(out, "\n")); got != 40 {
		t.Fatalf("expected frame to fill 40 rows, got %d", got)
	}
}

func TestModelViewUsesMouseAndAltScreen(t *testing.T) {
	m := newTestModel(t)
	v := m.View()
	if v.Content == nil || v.MouseMode != tea.MouseModeCellMotion || !v.AltScreen {
		t.Fatalf("unexpected view settings %#v", v)
	}
	if got := NewModel(nil).Render(); got != "loading..." {
		t.Fatalf("expected loading frame before size, got %q", got)
	}
}

func TestModelKeyboardCreateAndNavigate(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))

	cols := m.board.Columns()
	if got := taskContents(m.board.TasksForColumn(cols[0].ID)); !reflect.DeepEqual(got, []string{"Task 1"}) {
		t.Fatalf("unexpected column A tasks %#v", got)
	}
	if got := taskContents(m.board.TasksForColumn(cols[1].ID)); !reflect.DeepEqual(got, []string{"Task 2", "Task 3"}) {
		t.Fatalf("unexpected column B tasks %#v", got)
	}
	if m.selectedColumn != 1 || m.selectedTask != 1 {
		t.Fatalf("expected focus on the new task, got column=%d task=%d", m.selectedColumn, m.selectedTask)
	}

	m = applyMsg(t, m, keyRune('k'))
	if m.selectedTask != 0 {
		t.Fatalf("expected task up, got %d", m.selectedTask)
	}
	m = applyMsg(t, m, keyRune('c'))
	if got := len(m.board.Columns()); got != 4 {
		t.Fatalf("expected a fourth column, got %d", got)
	}
	if m.selectedColumn != 3 || m.board.Columns()[3].Title != "Column 4" {
		t.Fatalf("expected focus on Column 4, got %d %#v", m.selectedColumn, m.board.Columns())
	}
	if m.status != "created Column 4" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelDeleteTaskKey(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('d'))
	if got := taskContents(m.board.Tasks()); !reflect.DeepEqual(got, []string{"Task 1"}) {
		t.Fatalf("unexpected tasks after delete %#v", got)
	}
	if m.selectedTask != 0 {
		t.Fatalf("expected selection clamped, got %d", m.selectedTask)
	}
}

func TestModelDeleteColumnAsksFirst(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('l'))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'D', Text: "D"})
	if m.mode != modeConfirmDeleteColumn {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	if !strings.Contains(m.Render(), `Delete column "B"?`) {
		t.Fatalf("expected confirmation overlay\n%s", m.Render())
	}

	m = applyMsg(t, m, keyRune('n'))
	if len(m.board.Columns()) != 3 {
		t.Fatal("expected cancel to keep the column")
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'D', Text: "D"})
	m = applyMsg(t, m, keyRune('y'))
	if got := columnTitles(m.board); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("unexpected columns %#v", got)
	}
	if len(m.board.Tasks()) != 0 {
		t.Fatalf("expected cascade delete, got %#v", m.board.Tasks())
	}
	if m.status != "deleted B (2 tasks)" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelDeleteColumnWithoutConfirm(t *testing.T) {
	m := newTestModel(t, WithUIConfig(UIConfig{ConfirmDeleteColumn: false}))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'D', Text: "D"})
	if m.mode != modeNone {
		t.Fatalf("expected immediate delete, got mode %v", m.mode)
	}
	if got := columnTitles(m.board); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("unexpected columns %#v", got)
	}
}

func TestModelRenameColumnInline(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, keyRune('r'))
	if m.mode != modeRenameColumn {
		t.Fatalf("expected rename mode, got %v", m.mode)
	}
	m = update(t, m, keyRune('x'))
	m = update(t, m, keyRune('q'))
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := m.board.Columns()[0].Title; got != "Axq" {
		t.Fatalf("unexpected title %q", got)
	}

	m = update(t, m, keyRune('r'))
	m.input.SetValue("")
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := m.board.Columns()[0].Title; got != "" {
		t.Fatalf("expected empty title to be kept verbatim, got %q", got)
	}
}

func TestModelEditTaskInlineAndDiscard(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = update(t, m, keyRune('e'))
	m = update(t, m, keyRune('!'))
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	task, _ := m.currentTask()
	if task.Content != "Task 1!" {
		t.Fatalf("unexpected content %q", task.Content)
	}

	m = update(t, m, keyRune('e'))
	m = update(t, m, keyRune('?'))
	m = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	task, _ = m.currentTask()
	if task.Content != "Task 1!" || m.mode != modeNone {
		t.Fatalf("expected esc to discard edit, got %q mode=%v", task.Content, m.mode)
	}
}

func TestModelTaskDetailsAndCopy(t *testing.T) {
	var copied string
	m := newTestModel(t,
		WithUIConfig(UIConfig{ShowTaskDetailsMarkdown: false, ConfirmDeleteColumn: true}),
		WithClipboard(func(text string) error {
			copied = text
			return nil
		}),
	)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeTaskDetails {
		t.Fatalf("expected details mode, got %v", m.mode)
	}
	out := m.Render()
	if !strings.Contains(out, "Task Details") || !strings.Contains(out, "column: A") {
		t.Fatalf("expected details overlay\n%s", out)
	}

	m = applyMsg(t, m, keyRune('y'))
	if copied != "Task 1" || m.status != "copied task content" {
		t.Fatalf("unexpected copy result %q status=%q", copied, m.status)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeNone {
		t.Fatalf("expected esc to close details, got %v", m.mode)
	}
}

func TestModelTaskDetailsMarkdown(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	task, _ := m.currentTask()
	m.board.UpdateTaskContent(task.ID, "# Heading\n\n- item")
	m = applyMsg(t, m, keyRune('i'))
	out := m.Render()
	if !strings.Contains(out, "Task Details") || !strings.Contains(out, "Heading") {
		t.Fatalf("expected rendered markdown details\n%s", out)
	}
}

func TestModelCopyFailureIsReported(t *testing.T) {
	m := newTestModel(t, WithClipboard(func(string) error { return errors.New("no clipboard") }))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('y'))
	if m.status != "copy failed: no clipboard" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelMouseButtons(t *testing.T) {
	m := newTestModel(t)
	layout := m.currentLayout()

	m = applyMsg(t, m, click(layout.addColumn.x+1, layout.addColumn.y))
	if got := len(m.board.Columns()); got != 4 {
		t.Fatalf("expected add column button to create a column, got %d", got)
	}

	box := columnBoxFor(t, m, m.board.Columns()[1].ID)
	m = applyMsg(t, m, click(box.addTask.x+1, box.addTask.y))
	tasks := m.board.TasksForColumn(box.column.ID)
	if len(tasks) != 1 {
		t.Fatalf("expected add task button to create a task in B, got %#v", tasks)
	}

	row := taskRowFor(t, m, tasks[0].ID)
	m = applyMsg(t, m, click(row.deleteBtn.x+1, row.deleteBtn.y))
	if len(m.board.Tasks()) != 0 {
		t.Fatalf("expected task delete button to remove the task, got %#v", m.board.Tasks())
	}

	box = columnBoxFor(t, m, m.board.Columns()[0].ID)
	m = applyMsg(t, m, click(box.deleteBtn.x+1, box.deleteBtn.y))
	if m.mode != modeConfirmDeleteColumn || m.pendingDeleteColumnID != box.column.ID {
		t.Fatalf("expected column delete button to ask, got mode=%v pending=%q", m.mode, m.pendingDeleteColumnID)
	}
}

func TestModelMouseDragTaskAcrossColumns(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	cols := m.board.Columns()
	a, c := cols[0].ID, cols[2].ID
	tasks := m.board.TasksForColumn(a)

	row := taskRowFor(t, m, tasks[1].ID)
	box := columnBoxFor(t, m, c)
	dropX, dropY := box.body.x+3, box.body.y+box.body.h-1

	m = applyMsg(t, m, press(row.bounds.x+2, row.bounds.y))
	m = applyMsg(t, m, motion(dropX, dropY))
	if _, ok := m.drag.State().(app.DraggingTask); !ok {
		t.Fatalf("expected task drag, got %#v", m.drag.State())
	}
	out := m.Render()
	if !strings.Contains(out, "┆") {
		t.Fatalf("expected placeholder for dragged task\n%s", out)
	}
	if len(m.board.TasksForColumn(c)) != 0 {
		t.Fatal("expected board untouched until drop")
	}

	m = applyMsg(t, m, release(dropX, dropY))
	moved, err := m.board.Task(tasks[1].ID)
	if err != nil {
		t.Fatalf("Task() error = %v", err)
	}
	if moved.ColumnID != c {
		t.Fatalf("expected task in column C, got %q", moved.ColumnID)
	}
	if got := taskContents(m.board.TasksForColumn(a)); !reflect.DeepEqual(got, []string{"Task 1"}) {
		t.Fatalf("unexpected column A tasks %#v", got)
	}
	if m.status != "task moved" || m.selectedColumn != 2 {
		t.Fatalf("expected focus to follow the moved task, status=%q column=%d", m.status, m.selectedColumn)
	}
}

func TestModelMouseDragTaskOntoTask(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	a := m.board.Columns()[0].ID
	tasks := m.board.TasksForColumn(a)

	first := taskRowFor(t, m, tasks[0].ID)
	last := taskRowFor(t, m, tasks[2].ID)
	m = applyMsg(t, m, press(first.bounds.x+2, first.bounds.y))
	m = applyMsg(t, m, motion(last.bounds.x+20, last.bounds.y))
	m = applyMsg(t, m, release(last.bounds.x+20, last.bounds.y))
	if got := taskContents(m.board.TasksForColumn(a)); !reflect.DeepEqual(got, []string{"Task 2", "Task 3", "Task 1"}) {
		t.Fatalf("unexpected order %#v", got)
	}
}

func TestModelMouseDragColumn(t *testing.T) {
	m := newTestModel(t)
	cols := m.board.Columns()
	from := columnBoxFor(t, m, cols[2].ID)
	to := columnBoxFor(t, m, cols[0].ID)

	m = applyMsg(t, m, press(from.header.x+1, from.header.y))
	m = applyMsg(t, m, motion(to.header.x+1, to.header.y))
	if _, ok := m.drag.State().(app.DraggingColumn); !ok {
		t.Fatalf("expected column drag, got %#v", m.drag.State())
	}
	m = applyMsg(t, m, release(to.header.x+1, to.header.y))
	if got := columnTitles(m.board); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("unexpected column order %#v", got)
	}
	if m.selectedColumn != 0 || m.status != "column moved" {
		t.Fatalf("expected focus on moved column, got %d status=%q", m.selectedColumn, m.status)
	}
}

func TestModelEscCancelsDrag(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	cols := m.board.Columns()
	task := m.board.TasksForColumn(cols[0].ID)[0]
	before := m.board.Snapshot()
	revision := m.board.Revision()

	row := taskRowFor(t, m, task.ID)
	box := columnBoxFor(t, m, cols[1].ID)
	m = applyMsg(t, m, press(row.bounds.x+2, row.bounds.y))
	m = applyMsg(t, m, motion(box.body.x+2, box.body.y+4))
	m = applyMsg(t, m, keyRune('n'))
	if m.status != "release to drop • esc cancels the drag" {
		t.Fatalf("expected board keys blocked during drag, status=%q", m.status)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.drag.Dragging() || m.status != "drag canceled" {
		t.Fatalf("expected drag canceled, dragging=%t status=%q", m.drag.Dragging(), m.status)
	}
	m = applyMsg(t, m, release(box.body.x+2, box.body.y+4))
	if !reflect.DeepEqual(before, m.board.Snapshot()) || revision != m.board.Revision() {
		t.Fatal("expected board unchanged after canceled drag")
	}
}

func TestModelClickFocusesThenEdits(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	a := m.board.Columns()[0].ID
	tasks := m.board.TasksForColumn(a)

	first := taskRowFor(t, m, tasks[0].ID)
	m = update(t, m, press(first.bounds.x+2, first.bounds.y))
	m = update(t, m, release(first.bounds.x+2, first.bounds.y))
	if m.mode != modeNone || m.selectedTask != 0 {
		t.Fatalf("expected first click to focus only, mode=%v task=%d", m.mode, m.selectedTask)
	}

	m = update(t, m, press(first.bounds.x+2, first.bounds.y))
	m = update(t, m, release(first.bounds.x+2, first.bounds.y))
	if m.mode != modeEditTask || m.editingTaskID != tasks[0].ID {
		t.Fatalf("expected second click to edit, mode=%v editing=%q", m.mode, m.editingTaskID)
	}

	box := columnBoxFor(t, m, m.board.Columns()[1].ID)
	m = update(t, m, press(box.header.x+1, box.header.y))
	if m.mode != modeNone {
		t.Fatalf("expected click elsewhere to commit the edit, mode=%v", m.mode)
	}
	m = update(t, m, release(box.header.x+1, box.header.y))
	if m.mode != modeNone || m.selectedColumn != 1 {
		t.Fatalf("expected header click to focus column B, mode=%v column=%d", m.mode, m.selectedColumn)
	}
	m = update(t, m, press(box.header.x+1, box.header.y))
	m = update(t, m, release(box.header.x+1, box.header.y))
	if m.mode != modeRenameColumn {
		t.Fatalf("expected second header click to rename, mode=%v", m.mode)
	}
}

func TestModelHelpOverlay(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('?'))
	if !m.help.ShowAll || !strings.Contains(m.Render(), "kanboard help") {
		t.Fatalf("expected help overlay\n%s", m.Render())
	}
	m = applyMsg(t, m, keyRune('n'))
	if len(m.board.Tasks()) != 0 {
		t.Fatal("expected board keys ignored while help is open")
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.help.ShowAll {
		t.Fatal("expected esc to close help")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestModelKeyConfigOverrides(t *testing.T) {
	m := newTestModel(t, WithKeyConfig(KeyConfig{NewTask: "a"}))
	m = applyMsg(t, m, keyRune('n'))
	if len(m.board.Tasks()) != 0 {
		t.Fatal("expected default key to be replaced")
	}
	m = applyMsg(t, m, keyRune('a'))
	if len(m.board.Tasks()) != 1 {
		t.Fatal("expected configured key to create a task")
	}
}

func TestModelDragConfigAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := charmLog.NewWithOptions(&buf, charmLog.Options{Level: charmLog.DebugLevel})
	m := newTestModel(t,
		WithLogger(logger),
		WithDragConfig(app.DragConfig{ActivationDistance: 50}),
	)
	cols := m.board.Columns()
	from := columnBoxFor(t, m, cols[1].ID)
	to := columnBoxFor(t, m, cols[0].ID)

	m = applyMsg(t, m, press(from.header.x+1, from.header.y))
	m = applyMsg(t, m, motion(to.header.x+1, to.header.y))
	if m.drag.Dragging() {
		t.Fatal("expected configured activation distance to hold the drag")
	}
	m = applyMsg(t, m, motion(to.header.x+1, to.header.y+60))
	if !m.drag.Dragging() {
		t.Fatal("expected drag after crossing the configured distance")
	}
	if !strings.Contains(buf.String(), "drag started") {
		t.Fatalf("expected drag events logged, got %q", buf.String())
	}
}

func TestHitTestSlots(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('n'))
	layout := m.currentLayout()
	box := layout.columns[0]

	if h := layout.hitTest(box.header.x, box.header.y); h.kind != hitColumnHeader || h.slot != 0 {
		t.Fatalf("unexpected header hit %#v", h)
	}
	if h := layout.hitTest(box.body.x+2, box.body.y+1); h.kind != hitTask || h.taskID != box.rows[1].task.ID {
		t.Fatalf("unexpected task hit %#v", h)
	}
	if h := layout.hitTest(box.body.x+2, box.body.y+5); h.kind != hitColumnBody || h.slot != 2 {
		t.Fatalf("unexpected body hit %#v", h)
	}
	if h := layout.hitTest(box.bounds.x+box.bounds.w, box.body.y); h.kind != hitNone {
		t.Fatalf("expected gap between columns to miss, got %#v", h)
	}
	if target := (hit{kind: hitNone}).target(); !target.IsZero() {
		t.Fatalf("expected empty target, got %#v", target)
	}
}

func TestModelWideRunesKeepColumnGeometry(t *testing.T) {
	m := newTestModel(t)
	m = applyMsg(t, m, keyRune('n'))
	task, _ := m.currentTask()
	m.board.UpdateTaskContent(task.ID, strings.Repeat("漢", 30))
	m.board.RenameColumn(m.board.Columns()[1].ID, strings.Repeat("表", 30))

	layout := m.currentLayout()
	last := layout.columns[len(layout.columns)-1]
	want := last.bounds.x + last.bounds.w
	rows := m.renderBoard(layout, defaultPalette())
	for i, row := range rows {
		if got := lipgloss.Width(row); got != want {
			t.Fatalf("board row %d is %d cells wide, want %d\n%s", i, got, want, strings.Join(rows, "\n"))
		}
	}
	row := rows[taskRowFor(t, m, task.ID).bounds.y-boardTop]
	if !strings.Contains(row, "…") {
		t.Fatalf("expected wide task content to be cut\n%s", row)
	}

	third := layout.columns[2]
	if h := layout.hitTest(third.header.x, third.header.y); h.kind != hitColumnHeader || h.columnID != third.column.ID {
		t.Fatalf("expected header hit on column C, got %#v", h)
	}
}

func TestTruncateCountsCells(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "abc", max: 5, want: "abc"},
		{in: "abcdef", max: 4, want: "abc…"},
		{in: "漢字漢字", max: 8, want: "漢字漢字"},
		{in: "漢字漢字", max: 5, want: "漢字…"},
		{in: "a\nb", max: 3, want: "a b"},
		{in: "abc", max: 0, want: ""},
	}
	for _, tc := range tests {
		got := truncate(tc.in, tc.max)
		if got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if tc.max > 0 && lipgloss.Width(got) > tc.max {
			t.Fatalf("truncate(%q, %d) is %d cells wide", tc.in, tc.max, lipgloss.Width(got))
		}
	}
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

// update applies msg without running returned commands, which keeps cursor
// blink ticks out of inline-edit tests.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func click(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func press(x, y int) tea.MouseClickMsg {
	return click(x, y)
}

func motion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func release(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}
}

func columnBoxFor(t *testing.T, m Model, columnID string) columnBox {
	t.Helper()
	box, ok := m.currentLayout().column(columnID)
	if !ok {
		t.Fatalf("column %q not on screen", columnID)
	}
	return box
}

func taskRowFor(t *testing.T, m Model, taskID string) taskRow {
	t.Helper()
	for _, box := range m.currentLayout().columns {
		for _, row := range box.rows {
			if row.task.ID == taskID {
				return row
			}
		}
	}
	t.Fatalf("task %q not on screen", taskID)
	return taskRow{}
}

func taskContents(tasks []domain.Task) []string {
	out := []string{}
	for _, task := range tasks {
		out = append(out, task.Content)
	}
	return out
}

func columnTitles(b *app.Board) []string {
	out := []string{}
	for _, column := range b.Columns() {
		out = append(out, column.Title)
	}
	return out
}
