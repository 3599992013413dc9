package tui

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/kanboard/internal/app"
	"github.com/evanschultz/kanboard/internal/domain"
)

// palette holds the colors used by one frame.
type palette struct {
	accent   color.Color
	muted    color.Color
	dim      color.Color
	selected color.Color
	danger   color.Color
}

func defaultPalette() palette {
	return palette{
		accent:   lipgloss.Color("62"),
		muted:    lipgloss.Color("241"),
		dim:      lipgloss.Color("239"),
		selected: lipgloss.Color("212"),
		danger:   lipgloss.Color("203"),
	}
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// Render returns the current frame as a string.
func (m Model) Render() string {
	if !m.ready {
		return "loading..."
	}
	p := defaultPalette()
	board := m.drag.Preview()
	layout := m.computeLayout(board)

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(p.dim)
	buttonStyle := lipgloss.NewStyle().Bold(true).Foreground(p.accent)

	header := titleStyle.Render("kanboard") + "  " +
		statusStyle.Render(headerStats(board)) + "  " +
		buttonStyle.Render(addColumnLabel)

	lines := []string{header, ""}
	lines = append(lines, m.renderBoard(layout, p)...)
	top := strings.Join(lines, "\n")
	if m.height > 0 {
		top = fitLines(top, max(0, m.height-footerRows))
	}

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(p.muted).
		BorderTop(true).
		BorderForeground(p.dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	full := top + "\n" + statusStyle.Render(m.status) + "\n" + helpLine
	height := max(1, m.height)
	width := max(1, m.width)

	var overlay string
	switch {
	case m.help.ShowAll:
		overlay = m.renderHelpOverlay(p, m.width-8)
	case m.mode == modeTaskDetails:
		overlay = m.renderTaskDetails(p)
	case m.mode == modeConfirmDeleteColumn:
		overlay = m.renderConfirmDelete(p)
	}
	if overlay != "" {
		return overlayOnContent(full, overlay, width, height)
	}
	if standIn := m.renderDragStandIn(layout, p); standIn != "" {
		pointer := m.drag.Pointer()
		x := clamp(pointer.X+1, 0, width-lipgloss.Width(standIn))
		y := clamp(pointer.Y, 0, height-lipgloss.Height(standIn))
		return composeAt(full, standIn, x, y, width, height)
	}
	return full
}

// headerStats summarizes board size.
func headerStats(board app.Layout) string {
	total := 0
	for _, tasks := range board.Tasks {
		total += len(tasks)
	}
	return fmt.Sprintf("%d columns · %d tasks", len(board.Columns), total)
}

// headerButtonX returns the x offset of the add-column button in the header.
func (m Model) headerButtonX(board app.Layout) int {
	return lipgloss.Width("kanboard") + 2 + lipgloss.Width(headerStats(board)) + 2
}

// renderBoard renders the column boxes row by row.
func (m Model) renderBoard(layout boardLayout, p palette) []string {
	rows := make([]string, layout.boardHeight)
	if len(layout.columns) == 0 {
		empty := lipgloss.NewStyle().Foreground(p.muted).
			Render(fmt.Sprintf("No columns. Press %s or click %s.", m.keys.addColumn.Help().Key, addColumnLabel))
		rows[0] = empty
		return rows
	}
	gap := strings.Repeat(" ", columnGap)
	for i, box := range layout.columns {
		boxLines := m.renderColumnBox(box, layout, p)
		for r := range rows {
			if i > 0 {
				rows[r] += gap
			}
			if r < len(boxLines) {
				rows[r] += boxLines[r]
			}
		}
	}
	return rows
}

// renderColumnBox draws one column as exactly box.bounds.h lines of box.bounds.w cells.
func (m Model) renderColumnBox(box columnBox, layout boardLayout, p palette) []string {
	width := box.bounds.w
	inner := width - 2
	border := lipgloss.RoundedBorder()

	draggedColumn, draggedTask := m.draggedIDs()
	selected := box.index == m.selectedColumn
	isDragged := box.column.ID == draggedColumn

	borderColor := p.dim
	if selected {
		borderColor = p.accent
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	deleteStyle := lipgloss.NewStyle().Foreground(p.muted)
	mutedStyle := lipgloss.NewStyle().Foreground(p.muted)
	placeholderStyle := lipgloss.NewStyle().Foreground(p.dim).Faint(true)
	selectedStyle := lipgloss.NewStyle().Foreground(p.selected).Bold(true)
	if isDragged {
		borderStyle = placeholderStyle
		titleStyle = placeholderStyle
		deleteStyle = placeholderStyle
		mutedStyle = placeholderStyle
	}

	side := borderStyle.Render(border.Left)
	sideRight := borderStyle.Render(border.Right)
	wrap := func(content string) string {
		return side + padRight(content, inner) + sideRight
	}

	lines := make([]string, 0, box.bounds.h)
	lines = append(lines, borderStyle.Render(border.TopLeft+strings.Repeat(border.Top, inner)+border.TopRight))

	titleWidth := inner - 4
	var title string
	if m.mode == modeRenameColumn && m.editingColumnID == box.column.ID {
		title = m.inputView(titleWidth)
	} else {
		title = titleStyle.Render(truncate(fmt.Sprintf("%s (%d)", box.column.Title, len(box.tasks)), titleWidth))
	}
	lines = append(lines, wrap(" "+padRight(title, titleWidth)+deleteStyle.Render(" ✕ ")))
	lines = append(lines, borderStyle.Render(border.MiddleLeft+strings.Repeat(border.Top, inner)+border.MiddleRight))

	contentWidth := inner - 6
	for row := 0; row < box.body.h; row++ {
		if row >= len(box.rows) {
			if row == 0 && len(box.tasks) == 0 {
				lines = append(lines, wrap(" "+mutedStyle.Render("(empty)")))
				continue
			}
			lines = append(lines, wrap(""))
			continue
		}
		task := box.rows[row].task
		focused := selected && box.rows[row].index == m.selectedTask
		marker := " "
		var content string
		switch {
		case task.ID == draggedTask:
			marker = placeholderStyle.Render("┆")
			content = placeholderStyle.Render(truncate(task.Content, contentWidth))
		case m.mode == modeEditTask && m.editingTaskID == task.ID:
			marker = selectedStyle.Render("▌")
			content = m.inputView(contentWidth)
		case focused:
			marker = selectedStyle.Render("▌")
			content = selectedStyle.Render(truncate(task.Content, contentWidth))
		case isDragged:
			content = placeholderStyle.Render(truncate(task.Content, contentWidth))
		default:
			content = truncate(task.Content, contentWidth)
		}
		lines = append(lines, wrap(" "+marker+" "+padRight(content, contentWidth)+deleteStyle.Render(" ✕ ")))
	}

	lines = append(lines, wrap(" "+mutedStyle.Render(addTaskLabel)))
	lines = append(lines, borderStyle.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return lines
}

// inputView renders the inline editor clipped to width cells.
func (m Model) inputView(width int) string {
	in := m.input
	in.SetWidth(max(1, width-1))
	return lipgloss.NewStyle().MaxWidth(width).Render(in.View())
}

// draggedIDs returns the ids of the column or task being dragged.
func (m Model) draggedIDs() (string, string) {
	switch state := m.drag.State().(type) {
	case app.DraggingColumn:
		return state.Column.ID, ""
	case app.DraggingTask:
		return "", state.Task.ID
	case app.Idle:
		return "", ""
	default:
		return "", ""
	}
}

// renderDragStandIn renders the card or column drawn under the pointer during a drag.
func (m Model) renderDragStandIn(layout boardLayout, p palette) string {
	width := max(minColumnWidth, layout.columnWidth) - 4
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.selected).
		Padding(0, 1)
	switch state := m.drag.State().(type) {
	case app.DraggingTask:
		return style.Render(truncate(state.Task.Content, width))
	case app.DraggingColumn:
		count := len(m.board.TasksForColumn(state.Column.ID))
		lines := []string{
			lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render(truncate(state.Column.Title, width)),
			lipgloss.NewStyle().Foreground(p.muted).Render(fmt.Sprintf("%d tasks", count)),
		}
		return style.Render(strings.Join(lines, "\n"))
	case app.Idle:
		return ""
	default:
		return ""
	}
}

// renderTaskDetails renders the details overlay for the open task.
func (m Model) renderTaskDetails(p palette) string {
	task, ok := m.detailsTask()
	if !ok {
		return ""
	}
	width := clamp(m.width-8, 32, 80)
	body := task.Content
	if m.ui.ShowTaskDetailsMarkdown {
		body = m.markdown.render(task.Content, width-4)
	}
	if strings.TrimSpace(body) == "" {
		body = lipgloss.NewStyle().Foreground(p.muted).Render("(empty)")
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("Task Details"),
		lipgloss.NewStyle().Foreground(p.muted).Render("column: " + m.columnTitle(task)),
		"",
		body,
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render(fmt.Sprintf("%s edit • %s copy • esc close",
			m.keys.editTask.Help().Key, m.keys.copyTask.Help().Key)),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.dim).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// renderConfirmDelete renders the column delete confirmation.
func (m Model) renderConfirmDelete(p palette) string {
	column, err := m.board.Column(m.pendingDeleteColumnID)
	if err != nil {
		return ""
	}
	count := len(m.board.TasksForColumn(column.ID))
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.danger).Render(fmt.Sprintf("Delete column %q?", column.Title)),
		fmt.Sprintf("%d tasks will be removed with it.", count),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render("y/enter delete • n/esc cancel"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.danger).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderHelpOverlay renders the full key and mouse reference.
func (m Model) renderHelpOverlay(p palette, maxWidth int) string {
	width := clamp(maxWidth, 48, 90)
	hb := m.help
	hb.ShowAll = true
	hb.SetWidth(width - 4)

	mouse := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("Mouse"),
		"click a card or column title to focus it; click again to edit",
		"drag a card onto another card or column to move it",
		"drag a column title onto another column to reorder",
		addColumnLabel + " adds a column • " + addTaskLabel + " adds a task • ✕ deletes",
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(p.accent).Render("kanboard help"),
		"",
		hb.View(m.keys),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render(strings.Join(mouse, "\n")),
		"",
		lipgloss.NewStyle().Foreground(p.muted).Render("press ? or esc to close"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.dim).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// columnTitle returns the title of the task's column.
func (m Model) columnTitle(task domain.Task) string {
	column, err := m.board.Column(task.ColumnID)
	if err != nil {
		return "-"
	}
	return column.Title
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay over base.
func overlayOnContent(base, overlay string, width, height int) string {
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	return composeAt(base, centered, 0, 0, width, height)
}

// composeAt draws layer over base with its top-left corner at x,y.
func composeAt(base, layer string, x, y, width, height int) string {
	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	canvas.Compose(lipgloss.NewLayer(base).X(0).Y(0).Z(0))
	canvas.Compose(lipgloss.NewLayer(layer).X(x).Y(y).Z(10))
	return canvas.Render()
}
