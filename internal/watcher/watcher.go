// Package watcher re-runs a handler whenever a watched file is written.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last write before the
// handler runs.
const DefaultDebounce = 300 * time.Millisecond

// Handler is called with the watched path after it changed
type Handler func(ctx context.Context, path string) error

// Watcher watches a single file. The parent directory is watched so that
// editors replacing the file through a rename are noticed too.
type Watcher struct {
	path     string
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// New creates a watcher for path. A debounce of zero selects
// DefaultDebounce.
func New(path string, handler Handler, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		path:     absPath,
		handler:  handler,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is cancelled, calling the handler once per burst of
// writes. Handler errors are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "watching for changes", slog.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "watcher stopped", slog.String("path", w.path))
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "file changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.handler(ctx, w.path); err != nil {
				w.logger.ErrorContext(ctx, "failed to process changed file",
					slog.String("path", w.path),
					slog.String("error", err.Error()))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.ErrorContext(ctx, "watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
