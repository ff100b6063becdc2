package throttle

import (
	"sync"
	"time"

	"github.com/vnykmshr/gopace/pkg/common/clock"
)

// timerThrottler implements the Timer strategy: the first call of a window
// schedules one deferred invocation at the end of the window, carrying that
// call's arguments. Calls that arrive while the timer is pending are
// dropped; nothing is ever cancelled or re-armed.
type timerThrottler struct {
	mu        sync.Mutex
	fn        Func
	threshold time.Duration
	sched     clock.Scheduler

	timer   clock.Timer
	pending bool
}

// Call opens a window if none is pending, scheduling the operation with
// this call's arguments, and drops the call otherwise.
func (t *timerThrottler) Call(args ...interface{}) bool {
	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return false
	}
	t.pending = true
	t.timer = t.sched.AfterFunc(t.threshold, func() {
		t.mu.Lock()
		t.pending = false
		t.timer = nil
		fn := t.fn
		t.mu.Unlock()

		fn(args...)
	})
	t.mu.Unlock()
	return true
}

// Pending reports whether a deferred invocation is scheduled.
func (t *timerThrottler) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Threshold returns the window length.
func (t *timerThrottler) Threshold() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.threshold
}

// SetThreshold changes the window length for windows opened after this call.
// The currently pending window, if any, keeps its original length.
func (t *timerThrottler) SetThreshold(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.threshold = d
}

// Strategy returns Timer.
func (t *timerThrottler) Strategy() Strategy {
	return Timer
}
