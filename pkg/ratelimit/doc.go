/*
Package ratelimit provides call-rate wrappers for Go functions.

This package offers three families of invocation wrappers:

  - debounce: Collapse a burst of calls into a single invocation
  - throttle: Allow at most one invocation per interval
  - distributed: Throttle an operation across instances via Redis

Debounce vs Throttle:

Debounce waits for a quiet period, so only the last (or first) call of a
burst runs. It suits operations that should happen once after input settles:

	saver := debounce.New(persist, 200*time.Millisecond)
	saver.Call(doc) // runs persist 200ms after the burst ends

Throttle caps the invocation rate, so one call per interval runs no matter
how long the burst lasts. It suits operations that should keep up with a
stream of events at a bounded pace:

	refresher := throttle.New(redraw, time.Second, throttle.Timestamp)
	refresher.Call() // at most one redraw per second, inline

The throttle package carries two interchangeable strategies: Timestamp
invokes inline on the qualifying call; Timer defers to the end of each
interval and uses the first call's arguments.

All wrappers are safe for concurrent use. Deferred execution goes through
the clock.Scheduler interface so tests can drive simulated time.
*/
package ratelimit
