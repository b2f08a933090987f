package watcher

import "time"

// SetWindow overrides the debounce window before Start. Tests only.
func SetWindow(w *Watcher, window time.Duration) {
	w.window = window
}
