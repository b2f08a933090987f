package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WestonVoglesonger/Multifact-V3/internal/adapters/watcher"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports"
)

func TestNewDebouncer(t *testing.T) {
	tests := []struct {
		name     string
		window   time.Duration
		callback func([]ports.WatchEvent)
	}{
		{
			name:     "with callback",
			window:   100 * time.Millisecond,
			callback: func([]ports.WatchEvent) {},
		},
		{
			name:     "with nil callback",
			window:   50 * time.Millisecond,
			callback: nil,
		},
		{
			name:     "with zero window",
			window:   0,
			callback: func([]ports.WatchEvent) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := watcher.NewDebouncer(tt.window, tt.callback)
			require.NotNil(t, d)
		})
	}
}

func TestDebouncer_Add_SingleEvent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			callCount++
			received = events
		})

		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})

		// Advance time past the debounce window
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		require.Equal(t, []ports.WatchEvent{
			{Path: "/project/checkout.story", Operation: ports.OpWrite},
		}, received)
	})
}

func TestDebouncer_Add_MultipleEventsCoalesced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			callCount++
			received = events
		})

		// Add events for distinct paths within the debounce window
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/billing.story", Operation: ports.OpCreate})
		d.Add(ports.WatchEvent{Path: "/project/cart.story", Operation: ports.OpRemove})

		// Advance time past the debounce window
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		// One batch, first-seen order preserved
		require.Equal(t, 1, callCount)
		require.Equal(t, []ports.WatchEvent{
			{Path: "/project/checkout.story", Operation: ports.OpWrite},
			{Path: "/project/billing.story", Operation: ports.OpCreate},
			{Path: "/project/cart.story", Operation: ports.OpRemove},
		}, received)
	})
}

func TestDebouncer_Add_DuplicatePaths(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			callCount++
			received = events
		})

		// Add the same path multiple times
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})

		// Advance time past the debounce window
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)
		// Duplicate paths are deduplicated via unique.Handle
		require.Len(t, received, 1)
		assert.Equal(t, "/project/checkout.story", received[0].Path)
	})
}

func TestDebouncer_Add_LatestOperationWins(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			received = events
		})

		// A create followed by a remove within one window collapses into
		// a single remove event.
		d.Add(ports.WatchEvent{Path: "/project/draft.story", Operation: ports.OpCreate})
		d.Add(ports.WatchEvent{Path: "/project/draft.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/draft.story", Operation: ports.OpRemove})

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, []ports.WatchEvent{
			{Path: "/project/draft.story", Operation: ports.OpRemove},
		}, received)
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var mu sync.Mutex

		d := watcher.NewDebouncer(100*time.Millisecond, func([]ports.WatchEvent) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		// First add starts the timer
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		time.Sleep(50 * time.Millisecond)

		// Second add resets the timer
		d.Add(ports.WatchEvent{Path: "/project/billing.story", Operation: ports.OpWrite})
		time.Sleep(50 * time.Millisecond)

		// At this point (100ms from first add), if the timer wasn't reset,
		// the callback would have fired. But it should not have fired yet.
		synctest.Wait()
		mu.Lock()
		count := callCount
		mu.Unlock()
		assert.Equal(t, 0, count)

		// Wait for the reset timer to fire
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		count = callCount
		mu.Unlock()
		require.Equal(t, 1, count)
	})
}

func TestDebouncer_Flush_Immediate(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			callCount++
			received = events
		})

		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/billing.story", Operation: ports.OpWrite})

		// Flush immediately, before the timer fires
		d.Flush()

		// Callback runs synchronously during Flush
		require.Equal(t, 1, callCount)
		require.Len(t, received, 2)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var callCount int

	d := watcher.NewDebouncer(100*time.Millisecond, func([]ports.WatchEvent) {
		callCount++
	})

	// Flush without any pending events
	d.Flush()

	// Callback should not have been called
	assert.Equal(t, 0, callCount)
}

func TestDebouncer_Flush_AfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := watcher.NewDebouncer(50*time.Millisecond, func([]ports.WatchEvent) {
			callCount++
		})

		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})

		// Wait for the timer to fire
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, callCount)

		// Flush after the timer already fired has nothing left to emit
		d.Flush()

		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Flush_ClearsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]ports.WatchEvent) {
			callCount++
		})

		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Flush()

		require.Equal(t, 1, callCount)

		// The original timer must not trigger another call
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Add_AfterFlush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			callCount++
			received = events
		})

		// First batch
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Flush()

		require.Equal(t, 1, callCount)
		require.Len(t, received, 1)

		// Second batch after the flush
		d.Add(ports.WatchEvent{Path: "/project/billing.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/cart.story", Operation: ports.OpCreate})

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 2, callCount)
		require.Equal(t, []ports.WatchEvent{
			{Path: "/project/billing.story", Operation: ports.OpWrite},
			{Path: "/project/cart.story", Operation: ports.OpCreate},
		}, received)
	})
}

func TestDebouncer_Close_FlushesPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int
		var received []ports.WatchEvent

		d := watcher.NewDebouncer(100*time.Millisecond, func(events []ports.WatchEvent) {
			callCount++
			received = events
		})

		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Close()

		// Close emits the pending batch synchronously
		require.Equal(t, 1, callCount)
		require.Len(t, received, 1)

		// Events added after Close are discarded
		d.Add(ports.WatchEvent{Path: "/project/billing.story", Operation: ports.OpWrite})
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 1, callCount)

		// A second Close is harmless
		d.Close()
		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_Close_StopsTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var callCount int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]ports.WatchEvent) {
			callCount++
		})

		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Close()

		require.Equal(t, 1, callCount)

		// The pending timer was stopped, so the window expiring must not
		// emit a second batch.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 1, callCount)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		// Should not panic when adding events
		d.Add(ports.WatchEvent{Path: "/project/checkout.story", Operation: ports.OpWrite})
		d.Add(ports.WatchEvent{Path: "/project/billing.story", Operation: ports.OpWrite})

		// Wait for the timer
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		// Flush and Close should also not panic
		d.Flush()
		d.Close()
	})
}
