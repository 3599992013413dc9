package app

// IDGenerator returns unique identifiers for new columns and tasks.
type IDGenerator func() string

// Logger receives structured debug events from the board and drag controller.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg any, keyvals ...any)
}

// Mover is the slice of the board a drag session commits through.
type Mover interface {
	Layout() Layout
	MoveColumn(fromIndex, toIndex int) bool
	MoveTask(taskID, targetColumnID string, targetIndex int) bool
}

// nopLogger discards every event.
type nopLogger struct{}

// Debug discards one event.
func (nopLogger) Debug(any, ...any) {}
