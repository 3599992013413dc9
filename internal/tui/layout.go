package tui

import (
	"github.com/evanschultz/kanboard/internal/app"
	"github.com/evanschultz/kanboard/internal/domain"
)

// Board geometry in terminal cells. Rendering and mouse hit testing both read
// positions from boardLayout so a click always lands on what was drawn.
const (
	boardTop       = 2
	footerRows     = 3
	columnGap      = 1
	minColumnWidth = 20
	maxColumnWidth = 34
	minBoardHeight = 7
	// column chrome: top border, header, divider, footer button, bottom border.
	columnChromeRows = 5
	addColumnLabel   = "[+ column]"
	addTaskLabel     = "+ task"
)

// rect is a cell rectangle.
type rect struct {
	x, y, w, h int
}

// contains reports whether the cell at x,y lies inside r.
func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// hitKind classifies the element under a cell.
type hitKind int

const (
	hitNone hitKind = iota
	hitAddColumn
	hitColumnHeader
	hitDeleteColumn
	hitColumnBody
	hitTask
	hitDeleteTask
	hitAddTask
)

// hit describes the element under a cell.
type hit struct {
	kind     hitKind
	columnID string
	taskID   string
	slot     int
}

// target converts a hit into a drag target.
func (h hit) target() app.Target {
	switch h.kind {
	case hitTask, hitDeleteTask:
		return app.TaskTarget(h.columnID, h.taskID)
	case hitColumnHeader, hitDeleteColumn, hitColumnBody, hitAddTask:
		return app.ColumnTarget(h.columnID, h.slot)
	default:
		return app.NoTarget
	}
}

// taskRow is one visible task line inside a column box.
type taskRow struct {
	task      domain.Task
	index     int
	bounds    rect
	deleteBtn rect
}

// columnBox is one rendered column.
type columnBox struct {
	column    domain.Column
	index     int
	tasks     []domain.Task
	bounds    rect
	header    rect
	deleteBtn rect
	body      rect
	addTask   rect
	scrollTop int
	rows      []taskRow
}

// slotAt maps a row inside the column into an insertion index.
func (c columnBox) slotAt(y int) int {
	return clamp(c.scrollTop+y-c.body.y, 0, len(c.tasks))
}

// boardLayout is the geometry of one frame.
type boardLayout struct {
	addColumn   rect
	columnWidth int
	boardHeight int
	columns     []columnBox
}

// hitTest returns the element under x,y.
func (l boardLayout) hitTest(x, y int) hit {
	if l.addColumn.contains(x, y) {
		return hit{kind: hitAddColumn, slot: -1}
	}
	for _, box := range l.columns {
		if !box.bounds.contains(x, y) {
			continue
		}
		id := box.column.ID
		switch {
		case box.deleteBtn.contains(x, y):
			return hit{kind: hitDeleteColumn, columnID: id, slot: 0}
		case box.header.contains(x, y):
			return hit{kind: hitColumnHeader, columnID: id, slot: 0}
		case box.addTask.contains(x, y):
			return hit{kind: hitAddTask, columnID: id, slot: len(box.tasks)}
		}
		for _, row := range box.rows {
			if row.deleteBtn.contains(x, y) {
				return hit{kind: hitDeleteTask, columnID: id, taskID: row.task.ID, slot: row.index}
			}
			if row.bounds.contains(x, y) {
				return hit{kind: hitTask, columnID: id, taskID: row.task.ID, slot: row.index}
			}
		}
		slot := len(box.tasks)
		if y < box.body.y {
			slot = 0
		} else if box.body.contains(x, y) {
			slot = box.slotAt(y)
		}
		return hit{kind: hitColumnBody, columnID: id, slot: slot}
	}
	return hit{kind: hitNone, slot: -1}
}

// column returns the box for columnID.
func (l boardLayout) column(columnID string) (columnBox, bool) {
	for _, box := range l.columns {
		if box.column.ID == columnID {
			return box, true
		}
	}
	return columnBox{}, false
}

// computeLayout places columns and task rows for the given board layout.
func (m Model) computeLayout(board app.Layout) boardLayout {
	out := boardLayout{
		boardHeight: max(minBoardHeight, m.height-boardTop-footerRows),
	}
	out.addColumn = rect{x: m.headerButtonX(board), y: 0, w: len(addColumnLabel), h: 1}

	n := len(board.Columns)
	if n == 0 {
		out.columnWidth = minColumnWidth
		return out
	}
	width := max(m.width, minColumnWidth)
	colWidth := clamp((width-(n-1)*columnGap)/n, minColumnWidth, maxColumnWidth)
	out.columnWidth = colWidth

	visible := max(1, (width+columnGap)/(colWidth+columnGap))
	offset := 0
	if n > visible {
		offset = clamp(m.selectedColumn-visible+1, 0, n-visible)
	}

	bodyRows := max(1, out.boardHeight-columnChromeRows)
	for i := offset; i < n && i < offset+visible; i++ {
		column := board.Columns[i]
		tasks := board.TasksFor(column.ID)
		x := (i - offset) * (colWidth + columnGap)
		y := boardTop
		box := columnBox{
			column:    column,
			index:     i,
			tasks:     tasks,
			bounds:    rect{x: x, y: y, w: colWidth, h: out.boardHeight},
			header:    rect{x: x + 1, y: y + 1, w: colWidth - 5, h: 1},
			deleteBtn: rect{x: x + colWidth - 4, y: y + 1, w: 3, h: 1},
			body:      rect{x: x + 1, y: y + 3, w: colWidth - 2, h: bodyRows},
			addTask:   rect{x: x + 1, y: y + out.boardHeight - 2, w: colWidth - 2, h: 1},
		}
		if i == m.selectedColumn {
			box.scrollTop = scrollTopFor(m.selectedTask, len(tasks), bodyRows)
		}
		for row := 0; row < bodyRows && box.scrollTop+row < len(tasks); row++ {
			idx := box.scrollTop + row
			rowY := box.body.y + row
			box.rows = append(box.rows, taskRow{
				task:      tasks[idx],
				index:     idx,
				bounds:    rect{x: x + 1, y: rowY, w: colWidth - 2, h: 1},
				deleteBtn: rect{x: x + colWidth - 4, y: rowY, w: 3, h: 1},
			})
		}
		out.columns = append(out.columns, box)
	}
	return out
}

// scrollTopFor keeps the selected row inside a window of height rows.
func scrollTopFor(selected, total, rows int) int {
	if total <= rows {
		return 0
	}
	top := 0
	if selected >= rows {
		top = selected - rows + 1
	}
	return clamp(top, 0, total-rows)
}
