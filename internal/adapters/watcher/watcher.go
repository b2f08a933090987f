// Package watcher implements file system watching for narrative sources.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"time"
	"unique"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
	"github.com/fsnotify/fsnotify"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that are never watched. The engine
// workspace is excluded so store and debug log writes cannot feed back into
// the watch loop.
var shouldSkipDirectories = map[string]bool{
	".git":                  true,
	".jj":                   true,
	"node_modules":          true,
	domain.WorkspaceDirName: true,
}

const eventChannelBuffer = 100

// Watcher implements recursive file system watching using fsnotify. Raw
// events pass through a debouncer before reaching Events, so a burst of
// editor saves surfaces as a single batch.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    ports.Logger
	root      unique.Handle[string]
	window    time.Duration
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher. The logger reports watch
// errors that do not stop the event loop.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		window:    DefaultDebounceWindow,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = unique.Make(root)
	w.debouncer = NewDebouncer(w.window, func(events []ports.WatchEvent) {
		for _, event := range events {
			select {
			case w.events <- event:
			case <-ctx.Done():
				return
			}
		}
	})

	// Walk the directory tree and add all directories to the watcher.
	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of debounced file system events. The iterator
// ends when the watcher stops or its context is cancelled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, not fatal.
				return nil //nolint:nilerr
			}
			if d.IsDir() {
				if w.shouldSkip(d.Name()) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// shouldSkip returns true if the directory should be skipped.
func (w *Watcher) shouldSkip(name string) bool {
	return shouldSkipDirectories[name]
}

// processEvents converts raw fsnotify events into debounced watch events.
// The events channel closes only after the debouncer has shut down, so no
// late timer can write to a closed channel.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	defer w.debouncer.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := w.convertEvent(event)
			if watchEvent == nil {
				continue
			}
			w.debouncer.Add(*watchEvent)

			// Newly created directories join the watch set so narrative
			// files created inside them are picked up.
			if watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldSkip(info.Name()) {
					for dir := range w.watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("file watcher error: %v", err))
		}
	}
}

// convertEvent maps an fsnotify event onto a ports.WatchEvent. Chmod-only
// events carry no content change and map to nil.
func (w *Watcher) convertEvent(event fsnotify.Event) *ports.WatchEvent {
	switch {
	case event.Has(fsnotify.Write):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}
	case event.Has(fsnotify.Create):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}
	case event.Has(fsnotify.Remove):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}
	case event.Has(fsnotify.Rename):
		return &ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}
	default:
		return nil
	}
}
