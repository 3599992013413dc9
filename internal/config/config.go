package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	charmLog "github.com/charmbracelet/log"
	"github.com/evanschultz/kanboard/internal/app"
	toml "github.com/pelletier/go-toml/v2"
)

type ColumnDrop string

const (
	ColumnDropAppend ColumnDrop = "append"
	ColumnDropSlot   ColumnDrop = "slot"
)

type Config struct {
	Board   BoardConfig   `toml:"board"`
	Drag    DragConfig    `toml:"drag"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
	Keys    KeyConfig     `toml:"keys"`
}

type BoardConfig struct {
	Columns []string `toml:"columns"`
}

type DragConfig struct {
	// ActivationDistance is measured in terminal cells.
	ActivationDistance int        `toml:"activation_distance"`
	ColumnDrop         ColumnDrop `toml:"column_drop"`
}

type UIConfig struct {
	ShowTaskDetailsMarkdown bool `toml:"show_task_details_markdown"`
	ConfirmDeleteColumn     bool `toml:"confirm_delete_column"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// KeyConfig overrides default bindings; blank entries keep the default key.
type KeyConfig struct {
	NewTask      string `toml:"new_task"`
	NewColumn    string `toml:"new_column"`
	DeleteTask   string `toml:"delete_task"`
	DeleteColumn string `toml:"delete_column"`
	RenameColumn string `toml:"rename_column"`
	EditTask     string `toml:"edit_task"`
	TaskDetails  string `toml:"task_details"`
	CopyTask     string `toml:"copy_task"`
}

func Default() Config {
	return Config{
		Board: BoardConfig{
			Columns: app.DefaultColumnTitles(),
		},
		Drag: DragConfig{
			ActivationDistance: 2,
			ColumnDrop:         ColumnDropAppend,
		},
		UI: UIConfig{
			ShowTaskDetailsMarkdown: true,
			ConfirmDeleteColumn:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".kanboard/log",
			},
		},
		Keys: KeyConfig{
			NewTask:      "n",
			NewColumn:    "c",
			DeleteTask:   "d",
			DeleteColumn: "D",
			RenameColumn: "r",
			EditTask:     "e",
			TaskDetails:  "i",
			CopyTask:     "y",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	cfg.Board.Columns = append([]string(nil), defaults.Board.Columns...)
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Drag.ActivationDistance < 1 {
		return fmt.Errorf("drag.activation_distance must be >= 1, got %d", c.Drag.ActivationDistance)
	}
	switch c.Drag.ColumnDrop {
	case ColumnDropAppend, ColumnDropSlot:
	default:
		return fmt.Errorf("invalid drag.column_drop: %q", c.Drag.ColumnDrop)
	}

	if _, err := charmLog.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	defaults := Default().Keys.bindings()
	seenKeys := map[string]string{}
	for _, name := range keyNames {
		raw := c.Keys.bindings()[name]
		value := strings.TrimSpace(raw)
		if raw == " " {
			value = "space"
		}
		if value == "" {
			value = defaults[name]
		}
		for _, matcher := range keyMatchers(value) {
			if slices.Contains(reservedKeys, matcher) {
				return fmt.Errorf("keys.%s uses reserved key %q", name, value)
			}
			if other, ok := seenKeys[matcher]; ok {
				return fmt.Errorf("keys.%s duplicates keys.%s: %q", name, other, value)
			}
			seenKeys[matcher] = name
		}
	}

	return nil
}

// keyNames fixes the order overrides are checked in.
var keyNames = []string{
	"new_task", "new_column", "delete_task", "delete_column",
	"rename_column", "edit_task", "task_details", "copy_task",
}

// reservedKeys are bound to navigation, help and quit and cannot be overridden.
var reservedKeys = []string{
	"q", "ctrl+c", "?", "esc", "enter",
	"h", "left", "l", "right", "k", "up", "j", "down",
}

// keyMatchers returns every key press a configured value answers to.
func keyMatchers(value string) []string {
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + string(unicode.ToLower(r))}
		}
		return []string{value}
	}
	return []string{strings.ToLower(value)}
}

// bindings lists overrides by their TOML name.
func (k KeyConfig) bindings() map[string]string {
	return map[string]string{
		"new_task":      k.NewTask,
		"new_column":    k.NewColumn,
		"delete_task":   k.DeleteTask,
		"delete_column": k.DeleteColumn,
		"rename_column": k.RenameColumn,
		"edit_task":     k.EditTask,
		"task_details":  k.TaskDetails,
		"copy_task":     k.CopyTask,
	}
}
