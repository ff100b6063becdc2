package throttle

import (
	"sync"
	"time"

	"github.com/vnykmshr/gopace/pkg/common/clock"
)

// timestampThrottler implements the Timestamp strategy: it remembers when
// the operation last ran and executes inline on any call that arrives more
// than a threshold after it. The window anchors to the invoking call, not
// to a fixed clock grid.
type timestampThrottler struct {
	mu        sync.Mutex
	fn        Func
	threshold time.Duration
	clk       clock.Clock

	// last is the time of the previous invocation. The zero value marks
	// a wrapper that has never fired, so the first call always executes.
	last time.Time
}

// Call executes the operation inline if the threshold has elapsed since the
// last invocation, and drops the call otherwise.
func (t *timestampThrottler) Call(args ...interface{}) bool {
	t.mu.Lock()
	now := t.clk.Now()
	if !t.last.IsZero() && now.Sub(t.last) <= t.threshold {
		t.mu.Unlock()
		return false
	}
	t.last = now
	fn := t.fn
	t.mu.Unlock()

	// Inline and synchronous: the invocation happens during the
	// qualifying call, never after it.
	fn(args...)
	return true
}

// Pending always reports false: this strategy never defers.
func (t *timestampThrottler) Pending() bool {
	return false
}

// Threshold returns the minimum interval between invocations.
func (t *timestampThrottler) Threshold() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.threshold
}

// SetThreshold changes the interval for subsequent calls.
func (t *timestampThrottler) SetThreshold(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.threshold = d
}

// Strategy returns Timestamp.
func (t *timestampThrottler) Strategy() Strategy {
	return Timestamp
}
