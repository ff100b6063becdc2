// Package clock provides the time source and one-shot timer scheduler used
// by the gopace wrappers. Both are small interfaces so tests can substitute
// a mock and drive simulated time deterministically.
package clock

import "time"

// Clock provides the current time. It can be mocked for testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timer is a handle to a scheduled one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// timer before it fired.
	Stop() bool
}

// Scheduler schedules one-shot deferred callbacks. The zero duration is
// valid; the callback fires as soon as the scheduler is able to run it.
type Scheduler interface {
	Clock

	// AfterFunc runs fn on its own goroutine after duration d and
	// returns a handle that can cancel the pending call.
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler implements Scheduler using time.AfterFunc.
type SystemScheduler struct {
	SystemClock
}

// AfterFunc schedules fn to run after d using the runtime timer facility.
func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (st systemTimer) Stop() bool {
	return st.t.Stop()
}
