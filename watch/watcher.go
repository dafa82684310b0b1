// Package watch re-runs generation whenever a JSON input file
// changes on disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/jsongen/errors"
	"github.com/teranos/jsongen/logger"
)

// DefaultDebounce batches the event bursts editors produce on save.
const DefaultDebounce = 500 * time.Millisecond

// ChangeCallback runs after the debounce window closes. A returned
// error is logged and the watcher keeps running, so one bad save does
// not end the session.
type ChangeCallback func(path string) error

// Watcher watches a single JSON input file and triggers a callback
// when it changes.
type Watcher struct {
	path           string
	base           string
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// New creates a watcher for path. The parent directory is watched
// rather than the file itself: editors save by writing a temp file
// and renaming it over the original, which silently kills a watch
// bound to the old inode.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch directory of %s", path)
	}

	w := &Watcher{
		path:           path,
		base:           filepath.Base(abs),
		watcher:        watcher,
		callbacks:      make([]ChangeCallback, 0),
		debouncePeriod: DefaultDebounce,
	}

	return w, nil
}

// OnChange registers a callback to run after each debounced change.
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// watchLoop monitors file system events
func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// The directory watch reports sibling files too
			if filepath.Base(event.Name) != w.base {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			logger.Debugw("input change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.scheduleRun()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("watch error",
				logger.FieldError, err)
		}
	}
}

// scheduleRun debounces rapid file changes and triggers the callbacks
func (w *Watcher) scheduleRun() {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Cancel existing timer if any
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.run)
}

// run calls all registered callbacks with the watched path.
func (w *Watcher) run() {
	w.mu.RLock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(w.path); err != nil {
			logger.Errorw("regeneration failed",
				logger.FieldFile, w.path,
				logger.FieldError, err)
			// Keep watching; the next save gets another chance
		}
	}
}

// Stop stops watching for file changes
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
