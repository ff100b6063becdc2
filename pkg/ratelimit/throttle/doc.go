/*
Package throttle limits how often a wrapped operation runs: at most once
per threshold interval, no matter how fast calls arrive.

Two interchangeable strategies are provided.

Timestamp strategy:

The wrapper remembers when the operation last ran. A call executes the
operation inline, synchronously, if more than a threshold has elapsed;
otherwise it is silently dropped. Invocations are never delayed, and each
execution uses the triggering call's own arguments. The window anchors to
the invoking call, not a fixed clock grid.

	refresh := throttle.NewTimestamp(redraw, time.Second)
	refresh.Call(view) // runs now, or is dropped

Timer strategy:

The first call of a window schedules the operation at the end of the
window with that call's arguments. Calls arriving while the timer is
pending are dropped. Exactly one invocation happens per window, always
delayed to the window's end, always with the first call's arguments.

	resize := throttle.NewTimer(layout, 250*time.Millisecond)
	resize.Call(bounds) // runs 250ms from now with these arguments

Choosing between them: timestamp responds instantly but samples the burst
at its start; timer smooths execution to the window boundary and is the
one to use when the invocation must never run on the caller's stack.

The dispatcher form selects a strategy by value:

	th := throttle.New(op, time.Second, throttle.Timer)

Configuration Options:

	config := throttle.Config{
		Threshold: time.Second,
		Strategy:  throttle.Timestamp,
		Scheduler: sched, // custom time source (for testing)
	}
	th, err := throttle.NewWithConfigSafe(op, config)

Error Handling:

Dropped calls are discarded, never queued, and produce no error. Panics
raised by the operation propagate at the point it actually executes, which
for the timer strategy is the timer goroutine.

Thread Safety:

All operations are safe for concurrent use. At most one deferred
invocation is scheduled per instance at any time.
*/
package throttle
