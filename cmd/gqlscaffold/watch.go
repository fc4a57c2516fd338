package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncePeriod is how long the schema file must stay unchanged before
// a regeneration starts. Editors and exporters often write a file in
// several steps.
var debouncePeriod = 500 * time.Millisecond

// watcher triggers a function when one file changes.
type watcher struct {
	path     string
	fs       *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
}

// newWatcher starts watching the directory of path. The directory is
// watched rather than the file so that replace-by-rename saves are seen.
func newWatcher(path string, logger *slog.Logger) (*watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &watcher{path: abs, fs: fs, logger: logger, debounce: debouncePeriod}, nil
}

// Close stops watching.
func (w *watcher) Close() error {
	return w.fs.Close()
}

// Run calls fn after every burst of changes to the file, until ctx is
// done. Errors from fn are logged and do not stop the loop.
func (w *watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("schema changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := fn(ctx); err != nil {
				w.logger.Error("regeneration failed", "error", err)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	return err == nil && name == w.path
}
