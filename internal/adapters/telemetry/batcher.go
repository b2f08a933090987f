// Package telemetry implements the Tracer port on OpenTelemetry. Spans carry
// streamed generator and checker output as batched events, and the bridge
// mirrors span lifecycles into the workspace debug log.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffer size at which a batch flushes (4KB).
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is how long buffered output may wait before flushing.
	DefaultTimeLimit = 50 * time.Millisecond
)

var errBatcherClosed = errors.New("batch processor is closed")

// BatchProcessor coalesces a stream of small writes into larger flushes. A
// batch goes out when the buffer reaches the size limit or when the oldest
// buffered byte has waited for the time limit. It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buf    bytes.Buffer
	timer  *time.Timer
	closed bool
}

// NewBatchProcessor returns a batcher handing flushed batches to onFlush.
// Non-positive limits fall back to the defaults.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
	}
}

// Write buffers p. Reaching the size limit flushes synchronously; otherwise
// the first buffered byte arms the flush timer.
func (bp *BatchProcessor) Write(p []byte) (int, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, errBatcherClosed
	}

	bp.buf.Write(p)
	if bp.buf.Len() >= bp.sizeLimit {
		bp.flushLocked()
		return len(p), nil
	}
	if bp.timer == nil {
		bp.timer = time.AfterFunc(bp.timeLimit, bp.onTimer)
	}
	return len(p), nil
}

// Flush hands any buffered output to the callback immediately.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return
	}
	bp.flushLocked()
}

// Close flushes the remainder and discards everything written afterwards.
// Once Close returns the callback is guaranteed not to run again.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true
	bp.flushLocked()
	return nil
}

// onTimer is called when the flush timer expires.
func (bp *BatchProcessor) onTimer() {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.timer = nil
	if bp.closed {
		return
	}
	bp.flushLocked()
}

// flushLocked hands the buffered bytes to the callback and resets the buffer.
// The caller must hold bp.mu; the callback runs under the lock, so it must be
// fast and must not call back into the batcher.
func (bp *BatchProcessor) flushLocked() {
	if bp.timer != nil {
		bp.timer.Stop()
		bp.timer = nil
	}
	if bp.buf.Len() == 0 {
		return
	}

	data := make([]byte, bp.buf.Len())
	copy(data, bp.buf.Bytes())
	bp.buf.Reset()

	if bp.onFlush != nil {
		bp.onFlush(data)
	}
}
