package tui

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// KeyConfig overrides the rebindable board actions; blank fields keep defaults.
type KeyConfig struct {
	NewTask      string
	NewColumn    string
	DeleteTask   string
	DeleteColumn string
	RenameColumn string
	EditTask     string
	TaskDetails  string
	CopyTask     string
}

// keyMap represents key map data used by this package.
type keyMap struct {
	quit         key.Binding
	toggleHelp   key.Binding
	cancel       key.Binding
	moveLeft     key.Binding
	moveRight    key.Binding
	moveUp       key.Binding
	moveDown     key.Binding
	addTask      key.Binding
	addColumn    key.Binding
	deleteTask   key.Binding
	deleteColumn key.Binding
	renameColumn key.Binding
	editTask     key.Binding
	taskDetails  key.Binding
	copyTask     key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag/edit")),
		moveLeft:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		addTask:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		addColumn:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new column")),
		deleteTask:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		deleteColumn: key.NewBinding(key.WithKeys("D", "shift+d"), key.WithHelp("D", "delete column")),
		renameColumn: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename column")),
		editTask:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		taskDetails:  key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i/enter", "task details")),
		copyTask:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy task")),
	}
}

// applyConfig applies configured overrides on top of the defaults.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addTask, cfg.NewTask, "n", "new task")
	configureBinding(&k.addColumn, cfg.NewColumn, "c", "new column")
	configureBinding(&k.deleteTask, cfg.DeleteTask, "d", "delete task")
	configureBinding(&k.deleteColumn, cfg.DeleteColumn, "D", "delete column")
	configureBinding(&k.renameColumn, cfg.RenameColumn, "r", "rename column")
	configureBinding(&k.editTask, cfg.EditTask, "e", "edit task")
	configureBinding(&k.copyTask, cfg.CopyTask, "y", "copy task")

	// enter always opens details alongside the configured key.
	keys, help := parseBindingKeys(cfg.TaskDetails, "i")
	if !slices.Contains(keys, "enter") {
		keys = append(keys, "enter")
		help += "/enter"
	}
	k.taskDetails.SetKeys(keys...)
	k.taskDetails.SetHelp(help, "task details")
}

// configureBinding replaces one binding's keys and help from a configured value.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys converts one configured key into matcher keys and help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if raw == " " {
		value = "space"
	}
	if value == "" {
		value = strings.TrimSpace(fallback)
		if fallback == " " {
			value = "space"
		}
	}
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + string(unicode.ToLower(r))}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.addColumn, k.editTask, k.renameColumn, k.taskDetails, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addTask, k.addColumn, k.editTask, k.renameColumn, k.taskDetails, k.copyTask},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.deleteTask, k.deleteColumn, k.cancel, k.toggleHelp, k.quit},
	}
}
