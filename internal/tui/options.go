package tui

import (
	"github.com/atotto/clipboard"
	"github.com/evanschultz/kanboard/internal/app"
)

type UIConfig struct {
	ShowTaskDetailsMarkdown bool
	ConfirmDeleteColumn     bool
}

// ClipboardFunc writes text to the system clipboard.
type ClipboardFunc func(string) error

type Option func(*Model)

func DefaultUIConfig() UIConfig {
	return UIConfig{
		ShowTaskDetailsMarkdown: true,
		ConfirmDeleteColumn:     true,
	}
}

func defaultClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func WithUIConfig(cfg UIConfig) Option {
	return func(m *Model) {
		m.ui = cfg
	}
}

func WithDragConfig(cfg app.DragConfig) Option {
	return func(m *Model) {
		if cfg.Logger == nil {
			cfg.Logger = m.dragConfig.Logger
		}
		m.dragConfig = cfg
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

func WithClipboard(fn ClipboardFunc) Option {
	return func(m *Model) {
		if fn != nil {
			m.copyText = fn
		}
	}
}

// WithLogger routes drag session events to logger.
func WithLogger(logger app.Logger) Option {
	return func(m *Model) {
		m.dragConfig.Logger = logger
	}
}
