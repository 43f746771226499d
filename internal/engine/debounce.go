package engine

import (
	"sync"
	"time"
)

// maxWaitFactor bounds how long a burst of triggers can postpone the
// deferred call: at most maxWaitFactor*delay after the first trigger.
const maxWaitFactor = 4

// debouncer coalesces bursts of triggers into one deferred call. Screen
// reconfiguration and wake both arrive as flurries of notifications while
// the OS settles display enumeration; the delay lets the flurry finish
// before the engine reapplies. A continuous flurry cannot postpone the call
// forever: the first trigger of a burst fixes a deadline.
type debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	maxWait  time.Duration
	fn       func()
	timer    *time.Timer
	deadline time.Time
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, maxWait: maxWaitFactor * delay, fn: fn}
}

// Trigger arms the one-shot timer, restarting the delay if already armed,
// but never past the deadline set by the burst's first trigger. The deferred
// call is idempotent by contract, so a trigger racing the timer firing is
// harmless.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if d.timer == nil {
		d.deadline = now.Add(d.maxWait)
	} else {
		d.timer.Stop()
	}

	wait := d.delay
	if remaining := d.deadline.Sub(now); remaining < wait {
		wait = remaining
		if wait < 0 {
			wait = 0
		}
	}
	d.timer = time.AfterFunc(wait, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()
	d.fn()
}

// Stop cancels any pending call.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
