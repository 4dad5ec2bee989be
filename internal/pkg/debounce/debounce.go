package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer runs at most one pending callback. Scheduling again cancels the
// pending one and restarts the delay.
type Timer struct {
	clock clockwork.Clock
	delay time.Duration

	mu      sync.Mutex
	pending clockwork.Timer
	gen     uint64
}

func New(clock clockwork.Clock, delay time.Duration) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{clock: clock, delay: delay}
}

// Delay returns the configured debounce delay.
func (t *Timer) Delay() time.Duration { return t.delay }

// Schedule cancels any pending callback and arms fn to run after the delay.
func (t *Timer) Schedule(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.pending = t.clock.AfterFunc(t.delay, func() {
		t.mu.Lock()
		if gen != t.gen || t.pending == nil {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	wasPending := t.pending != nil
	t.stopLocked()
	t.gen++
	return wasPending
}

// Pending reports whether a callback is armed.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

func (t *Timer) stopLocked() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
