package ports

import (
	"context"
	"iter"
)

//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// WatchOp is the kind of change a watch event reports.
type WatchOp uint8

const (
	// OpCreate reports a new file or directory.
	OpCreate WatchOp = iota
	// OpWrite reports a modified file.
	OpWrite
	// OpRemove reports a deleted file or directory.
	OpRemove
	// OpRename reports a renamed file or directory.
	OpRename
)

// WatchEvent is one file system change under the watched root.
type WatchEvent struct {
	// Path is the absolute path that changed.
	Path string
	// Operation is the kind of change.
	Operation WatchOp
}

// Watcher defines the interface for watching narrative sources for changes.
// Implementations coalesce rapid successive changes to the same path, so one
// editor save burst surfaces as a single event.
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of debounced file system events. The
	// iterator ends when the watcher stops.
	Events() iter.Seq[WatchEvent]
}
