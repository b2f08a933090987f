package watcher

import (
	"sync"
	"time"
	"unique"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

// Debouncer coalesces rapid file system events into batched notifications.
// Events for the same path within one window collapse into a single event
// carrying the most recent operation. Batches preserve first-seen path order.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]ports.WatchOp
	order    []unique.Handle[string]
	timer    *time.Timer
	window   time.Duration
	callback func(events []ports.WatchEvent)
	closed   bool
}

// NewDebouncer creates a new debouncer with the given time window and callback.
// The callback runs with the debouncer locked and must not call back into it.
func NewDebouncer(window time.Duration, callback func(events []ports.WatchEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]ports.WatchOp),
		window:   window,
		callback: callback,
	}
}

// Add records a file system event and starts or resets the debounce timer.
// Events added after Close are discarded.
func (d *Debouncer) Add(event ports.WatchEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	// Interned handles deduplicate paths; the latest operation wins.
	handle := unique.Make(event.Path)
	if _, seen := d.pending[handle]; !seen {
		d.order = append(d.order, handle)
	}
	d.pending[handle] = event.Operation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer = nil
	d.emitLocked()
}

// Flush immediately emits all pending events. It blocks until the callback
// completes, which makes it suitable for graceful shutdown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.emitLocked()
}

// Close emits any pending events and discards everything added afterwards.
// Once Close returns the callback is guaranteed not to run again.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.emitLocked()
}

// emitLocked hands the pending events to the callback and clears them. The
// caller must hold d.mu; holding it through the callback serializes emission
// against Close, so a timer racing a Close can never fire afterwards.
func (d *Debouncer) emitLocked() {
	if len(d.pending) == 0 {
		return
	}

	events := make([]ports.WatchEvent, 0, len(d.pending))
	for _, handle := range d.order {
		events = append(events, ports.WatchEvent{
			Path:      handle.Value(),
			Operation: d.pending[handle],
		})
	}
	d.pending = make(map[unique.Handle[string]]ports.WatchOp)
	d.order = nil

	if d.callback != nil {
		d.callback(events)
	}
}
