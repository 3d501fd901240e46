package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/haystack-go/hscore/errors"
	"github.com/haystack-go/hscore/logger"
)

// ReloadCallback is called when the config file changes on disk and has
// been reloaded. It receives the new Config.
type ReloadCallback func(*Config) error

// Watcher watches the project config file for changes and triggers
// reload callbacks, debouncing rapid writes from editors/atomic saves.
type Watcher struct {
	configPath     string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewWatcher creates a watcher on configPath. Start must be called to
// begin watching.
func NewWatcher(configPath string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	if err := w.Add(configPath); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch config file %s", configPath)
	}

	return &Watcher{
		configPath:     configPath,
		watcher:        w,
		debouncePeriod: 500 * time.Millisecond,
	}, nil
}

// OnReload registers a callback invoked after a successful reload.
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for config file changes in the background.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop closes the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if isBackupFile(event.Name) {
				continue
			}
			logger.DBDebugw("config watcher detected change", "file", event.Name, "op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.DBErrorw("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(); err != nil {
			logger.DBErrorw("config reload failed", "error", err)
		}
	})
}

func (w *Watcher) reload() error {
	Reset()

	cfg, err := Load()
	if err != nil {
		return errors.Wrap(err, "reload config")
	}
	logger.DBInfow("config reloaded", "path", w.configPath)

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(cfg); err != nil {
			logger.DBErrorw("config reload callback error", "error", err)
		}
	}
	return nil
}

// isBackupFile reports whether path names a rotated config backup, which
// the watcher should not treat as a meaningful change.
func isBackupFile(path string) bool {
	base := filepath.Base(path)
	return base == "hscore.toml.back1" || base == "hscore.toml.back2" || base == "hscore.toml.back3"
}
