package app

import (
	"slices"

	"github.com/evanschultz/kanboard/internal/domain"
)

// ColumnDropPolicy decides where a task lands when it hovers a column body rather than a card.
type ColumnDropPolicy string

// ColumnDropAppend and related constants define supported column-drop policies.
const (
	ColumnDropAppend ColumnDropPolicy = "append"
	ColumnDropSlot   ColumnDropPolicy = "slot"
)

// DefaultActivationDistance is the pointer travel, in cells, that turns a press into a drag.
const DefaultActivationDistance = 2

// DragConfig holds configuration for a drag controller.
type DragConfig struct {
	ActivationDistance int
	ColumnDrop         ColumnDropPolicy
	Logger             Logger
}

// Point is a pointer position in terminal cells.
type Point struct {
	X int
	Y int
}

// Target identifies the entity under the pointer. TaskID wins over ColumnID when both
// are set; Slot is the in-column insertion index for column-body hovers, -1 when unknown.
type Target struct {
	ColumnID string
	TaskID   string
	Slot     int
}

// NoTarget is the empty target.
var NoTarget = Target{Slot: -1}

// ColumnTarget builds a column-body target.
func ColumnTarget(columnID string, slot int) Target {
	return Target{ColumnID: columnID, Slot: slot}
}

// TaskTarget builds a task-card target.
func TaskTarget(columnID, taskID string) Target {
	return Target{ColumnID: columnID, TaskID: taskID, Slot: -1}
}

// IsZero reports whether the target names nothing.
func (t Target) IsZero() bool {
	return t.ColumnID == "" && t.TaskID == ""
}

// DragState is the controller's state: Idle, DraggingColumn or DraggingTask.
type DragState interface {
	dragState()
}

// Idle means no drag session is active.
type Idle struct{}

// DraggingColumn carries the column lifted at drag start.
type DraggingColumn struct {
	Column domain.Column
}

// DraggingTask carries the task lifted at drag start.
type DraggingTask struct {
	Task domain.Task
}

func (Idle) dragState()           {}
func (DraggingColumn) dragState() {}
func (DraggingTask) dragState()   {}

// PendingMove is the task placement a drop would commit.
type PendingMove struct {
	TaskID   string
	ColumnID string
	Index    int
}

// DropResult describes how a release was handled.
type DropResult struct {
	// Clicked is set when the press never crossed the activation distance.
	Clicked   bool
	Origin    Target
	Committed bool
}

// DragController turns pointer gestures into board reorders. Hover computes a pending
// move against a preview projection; the board is mutated only on drop, so a cancel
// leaves it exactly as it was before the drag.
type DragController struct {
	board      Mover
	activation int
	columnDrop ColumnDropPolicy
	logger     Logger

	state   DragState
	armed   bool
	origin  Target
	start   Point
	pointer Point
	over    Target
	pending *PendingMove
}

// NewDragController constructs a controller committing to board.
func NewDragController(board Mover, cfg DragConfig) *DragController {
	activation := cfg.ActivationDistance
	if activation <= 0 {
		activation = DefaultActivationDistance
	}
	switch cfg.ColumnDrop {
	case ColumnDropAppend, ColumnDropSlot:
	default:
		cfg.ColumnDrop = ColumnDropAppend
	}
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &DragController{
		board:      board,
		activation: activation,
		columnDrop: cfg.ColumnDrop,
		logger:     logger,
		state:      Idle{},
		origin:     NoTarget,
		over:       NoTarget,
	}
}

// State returns the current drag state.
func (c *DragController) State() DragState {
	return c.state
}

// Dragging reports whether a drag session is active.
func (c *DragController) Dragging() bool {
	_, idle := c.state.(Idle)
	return !idle
}

// Pointer returns the last observed pointer position.
func (c *DragController) Pointer() Point {
	return c.pointer
}

// Pending returns the move a drop would commit.
func (c *DragController) Pending() (PendingMove, bool) {
	if c.pending == nil {
		return PendingMove{}, false
	}
	return *c.pending, true
}

// Press arms a gesture at origin. Nothing is lifted until Motion crosses the
// activation distance.
func (c *DragController) Press(origin Target, at Point) {
	if c.Dragging() {
		return
	}
	c.armed = !origin.IsZero()
	c.origin = origin
	c.start = at
	c.pointer = at
}

// Motion records pointer travel and processes a hover over target. Hover is evaluated
// only when the hovered target changes. It reports whether the drag state or pending
// move changed.
func (c *DragController) Motion(at Point, over Target) bool {
	c.pointer = at
	changed := false
	if _, idle := c.state.(Idle); idle {
		if !c.armed || !c.crossedActivation(at) {
			return false
		}
		if !c.activate() {
			return false
		}
		changed = true
	}
	if over == c.over {
		return changed
	}
	c.over = over
	return c.hover(over) || changed
}

// Release ends the gesture with a drop over target.
func (c *DragController) Release(over Target) DropResult {
	defer c.reset()

	switch state := c.state.(type) {
	case Idle:
		if !c.armed {
			return DropResult{Origin: NoTarget}
		}
		return DropResult{Clicked: true, Origin: c.origin}
	case DraggingColumn:
		return DropResult{Origin: c.origin, Committed: c.dropColumn(state, over)}
	case DraggingTask:
		return DropResult{Origin: c.origin, Committed: c.dropTask(state, over)}
	default:
		return DropResult{Origin: c.origin}
	}
}

// Cancel ends the gesture without touching the board. It reports whether a gesture
// was in flight.
func (c *DragController) Cancel() bool {
	active := c.armed || c.Dragging()
	if c.Dragging() {
		c.logger.Debug("drag canceled", "pending", c.pending != nil)
	}
	c.reset()
	return active
}

// Preview returns the board layout with the pending move applied. Outside a task drag
// it equals the board layout.
func (c *DragController) Preview() Layout {
	layout := c.board.Layout()
	if _, ok := c.state.(DraggingTask); !ok || c.pending == nil {
		return layout
	}
	return applyPendingMove(layout, *c.pending)
}

// crossedActivation reports whether at is far enough from the press point.
func (c *DragController) crossedActivation(at Point) bool {
	dx := at.X - c.start.X
	dy := at.Y - c.start.Y
	return dx*dx+dy*dy >= c.activation*c.activation
}

// activate lifts the entity under the press point.
func (c *DragController) activate() bool {
	layout := c.board.Layout()
	if c.origin.TaskID != "" {
		columnID, idx, ok := layout.Locate(c.origin.TaskID)
		if !ok {
			c.armed = false
			return false
		}
		task := layout.Tasks[columnID][idx]
		c.state = DraggingTask{Task: task}
		c.logger.Debug("drag started", "kind", "task", "task_id", task.ID, "column_id", columnID)
		return true
	}
	idx := layout.ColumnIndex(c.origin.ColumnID)
	if idx < 0 {
		c.armed = false
		return false
	}
	c.state = DraggingColumn{Column: layout.Columns[idx]}
	c.logger.Debug("drag started", "kind", "column", "column_id", c.origin.ColumnID, "index", idx)
	return true
}

// hover dispatches a hover event by drag kind.
func (c *DragController) hover(over Target) bool {
	switch state := c.state.(type) {
	case Idle:
		return false
	case DraggingColumn:
		// Column order changes only on drop.
		return false
	case DraggingTask:
		return c.hoverTask(state, over)
	default:
		return false
	}
}

// hoverTask recomputes the pending move for a task hovering over target.
func (c *DragController) hoverTask(state DraggingTask, over Target) bool {
	if over.IsZero() || over.TaskID == state.Task.ID {
		return false
	}
	preview := c.Preview()
	draggedColumn, draggedIdx, ok := preview.Locate(state.Task.ID)
	if !ok {
		return false
	}

	var next PendingMove
	switch {
	case over.TaskID != "":
		columnID, idx, found := preview.Locate(over.TaskID)
		if !found {
			return false
		}
		// The dragged task takes the hovered slot.
		next = PendingMove{TaskID: state.Task.ID, ColumnID: columnID, Index: idx}
	default:
		if preview.ColumnIndex(over.ColumnID) < 0 {
			return false
		}
		tasks := preview.TasksFor(over.ColumnID)
		switch c.columnDrop {
		case ColumnDropSlot:
			slot := over.Slot
			if slot < 0 || slot > len(tasks) {
				slot = len(tasks)
			}
			if draggedColumn == over.ColumnID && slot > draggedIdx {
				slot--
			}
			next = PendingMove{TaskID: state.Task.ID, ColumnID: over.ColumnID, Index: slot}
		default:
			if draggedColumn == over.ColumnID {
				return false
			}
			next = PendingMove{TaskID: state.Task.ID, ColumnID: over.ColumnID, Index: len(tasks)}
		}
	}

	if next.ColumnID == draggedColumn && next.Index == draggedIdx {
		return false
	}
	if c.pending != nil && *c.pending == next {
		return false
	}
	c.pending = &next
	c.logger.Debug("drag hover", "task_id", next.TaskID, "column_id", next.ColumnID, "index", next.Index)
	return true
}

// dropColumn commits a column reorder when dropped over a different column.
func (c *DragController) dropColumn(state DraggingColumn, over Target) bool {
	if over.ColumnID == "" || over.ColumnID == state.Column.ID {
		c.logger.Debug("drag dropped without target", "kind", "column", "column_id", state.Column.ID)
		return false
	}
	layout := c.board.Layout()
	from := layout.ColumnIndex(state.Column.ID)
	to := layout.ColumnIndex(over.ColumnID)
	if from < 0 || to < 0 {
		return false
	}
	committed := c.board.MoveColumn(from, to)
	c.logger.Debug("drag dropped", "kind", "column", "column_id", state.Column.ID, "from", from, "to", to, "committed", committed)
	return committed
}

// dropTask commits the pending move, if any, when dropped over a target.
func (c *DragController) dropTask(state DraggingTask, over Target) bool {
	if over.IsZero() || c.pending == nil {
		c.logger.Debug("drag dropped without target", "kind", "task", "task_id", state.Task.ID)
		return false
	}
	move := *c.pending
	committed := c.board.MoveTask(move.TaskID, move.ColumnID, move.Index)
	c.logger.Debug("drag dropped", "kind", "task", "task_id", move.TaskID, "column_id", move.ColumnID, "index", move.Index, "committed", committed)
	return committed
}

// reset returns the controller to Idle.
func (c *DragController) reset() {
	c.state = Idle{}
	c.armed = false
	c.origin = NoTarget
	c.over = NoTarget
	c.pending = nil
}

// applyPendingMove returns layout with move applied, mirroring Board.MoveTask.
func applyPendingMove(layout Layout, move PendingMove) Layout {
	fromColumn, fromIdx, ok := layout.Locate(move.TaskID)
	if !ok || layout.ColumnIndex(move.ColumnID) < 0 {
		return layout
	}
	task := layout.Tasks[fromColumn][fromIdx]
	layout.Tasks[fromColumn] = slices.Delete(slices.Clone(layout.Tasks[fromColumn]), fromIdx, fromIdx+1)

	target := slices.Clone(layout.Tasks[move.ColumnID])
	idx := move.Index
	if idx < 0 || idx > len(target) {
		idx = len(target)
	}
	task.ColumnID = move.ColumnID
	layout.Tasks[move.ColumnID] = slices.Insert(target, idx, task)
	return layout
}
