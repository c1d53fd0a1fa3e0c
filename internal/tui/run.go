package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/theme"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	Theme      *theme.Theme
	Logger     *slog.Logger
	ConfigPath string // Config file to watch for changes (empty = no watching)
}

// Run starts the TUI with the given options.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := New(opts.Config, opts.Theme, logger)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if m.cfg.TUI.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, progOpts...)

	// Start config watcher if a path was provided
	if opts.ConfigPath != "" {
		watcher, err := config.NewFileWatcher(opts.ConfigPath, func(cfg *config.Config) {
			p.Send(configChangedMsg{cfg: cfg})
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	// Theme files on disk are watched; embedded themes never change.
	if m.theme.Path != "" {
		tw := theme.NewWatcher(m.theme, logger)
		tw.SetChangeCallback(func(t *theme.Theme) {
			p.Send(themeChangedMsg{name: t.Name})
		})
		if err := tw.Start(ctx); err != nil {
			logger.Warn("failed to start theme watcher", "error", err)
		} else {
			defer tw.Stop()
		}
	}

	_, err := p.Run()
	return err
}
