package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the config file and reloads it on change.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	onChange func(*Config)
	logger   *slog.Logger
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewFileWatcher creates a watcher for the config file at path. onChange
// receives each successfully parsed configuration.
func NewFileWatcher(path string, onChange func(*Config), logger *slog.Logger) (*FileWatcher, error) {
	if path == "" {
		path = ConfigPath()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:  watcher,
		filePath: path,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.running = true
	fw.mu.Unlock()

	// Watch the directory; editors often replace the file on save.
	dir := filepath.Dir(fw.filePath)
	if err := fw.watcher.Add(dir); err != nil {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		_ = fw.watcher.Close()
		return err
	}

	go fw.watch()
	return nil
}

func (fw *FileWatcher) watch() {
	filename := filepath.Base(fw.filePath)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				fw.reload()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("config watcher error", "error", err)

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) reload() {
	cfg, err := LoadConfig(fw.filePath)
	if err != nil {
		fw.logger.Warn("failed to reload config", "path", fw.filePath, "error", err)
		return
	}

	fw.logger.Debug("config changed", "path", fw.filePath)
	if fw.onChange != nil {
		fw.onChange(cfg)
	}
}

// Stop stops the watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.running {
		return fw.watcher.Close()
	}

	fw.running = false
	close(fw.done)
	return fw.watcher.Close()
}
