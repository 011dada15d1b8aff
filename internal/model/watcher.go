package model

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/normkit/normalize-server/internal/logger"
)

// settleDelay debounces artifact rewrites: the rename that publishes a new
// artifact can be preceded by temp-file churn in the same directory.
const settleDelay = 200 * time.Millisecond

// Watcher reloads the model holder whenever the artifact file changes on disk.
// It watches the artifact's parent directory because atomic publishes are
// renames, and rename events are reported against the directory entry.
type Watcher struct {
	path   string
	holder *Holder
	logger *logger.Logger

	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the artifact at path. Call Run to start it.
func NewWatcher(path string, holder *Holder, log *logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:    filepath.Clean(path),
		holder:  holder,
		logger:  log,
		watcher: fsw,
	}, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("model watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(settleDelay, w.reload)
}

func (w *Watcher) reload() {
	m, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).Error("failed to reload model artifact", "path", w.path)
		return
	}

	w.holder.Store(m)
	w.logger.Info("model reloaded from artifact",
		"path", w.path,
		"version", m.Version(),
		"entries", m.Size(),
	)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
