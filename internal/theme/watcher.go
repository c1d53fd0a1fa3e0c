package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before reloading. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a file based theme when its file changes on disk.
type Watcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	theme    *Theme
	debounce time.Duration
	onChange func(*Theme)

	fsw     *fsnotify.Watcher
	done    chan struct{}
	running bool
}

// NewWatcher creates a watcher for theme.
func NewWatcher(theme *Theme, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		logger:   logger,
		theme:    theme,
		debounce: DefaultDebounce,
	}
}

// SetDebounce sets the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetChangeCallback sets the callback invoked when a reload changed the
// theme's classes.
func (w *Watcher) SetChangeCallback(callback func(*Theme)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = callback
}

// Start watches the theme's directory. Embedded themes have no file and
// are never watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.theme == nil || w.theme.Path == "" {
		w.logger.Debug("not watching embedded theme")
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return &ThemeError{Theme: w.theme.Name, Message: "cannot create watcher", Err: err}
	}
	// Watch the directory; editors often replace the file on save.
	if err := fsw.Add(filepath.Dir(w.theme.Path)); err != nil {
		_ = fsw.Close()
		return &ThemeError{Theme: w.theme.Name, Message: "cannot watch theme directory", Err: err}
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.running = true
	go w.watch(ctx, fsw, w.done, w.debounce)

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	fsw, done := w.fsw, w.done
	w.fsw = nil
	w.mu.Unlock()

	_ = fsw.Close()
	<-done
	w.logger.Debug("theme watcher stopped")
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watch(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}, debounce time.Duration) {
	defer close(done)

	filename := filepath.Base(w.theme.Path)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) == 0 {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()

	changed, err := w.theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", w.theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.logger.Info("theme reloaded", "name", w.theme.Name, "classes", len(w.theme.ClassNames()))
	if callback != nil {
		callback(w.theme)
	}
}
