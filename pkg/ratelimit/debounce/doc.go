/*
Package debounce collapses bursts of calls into a single invocation of the
wrapped operation.

A debouncer delays execution until a quiet period elapses: however many
times the wrapper is called during a burst, the operation runs once. The
default (trailing) mode runs the operation after the quiet period with the
arguments of the last call; immediate mode runs it synchronously on the
first call of an idle period and suppresses the rest of the burst.

Basic usage:

	saver := debounce.New(persist, 200*time.Millisecond)
	saver.Call(doc) // persist runs 200ms after the last Call

Leading edge:

	notifier := debounce.NewImmediate(alert, time.Second)
	notifier.Call(event) // alert runs now; repeats within 1s are suppressed

Argument capture:

The arguments and any bound state delivered to the operation are those of
the call that triggers execution: the last call of the burst in trailing
mode, the first call of the idle period in immediate mode. Suppressed
calls' arguments are discarded, never queued.

Configuration Options:

	config := debounce.Config{
		Delay:     200 * time.Millisecond,
		Immediate: false,
		Scheduler: sched, // custom timer source (for testing)
	}
	d, err := debounce.NewWithConfigSafe(persist, config)

A zero Delay is accepted. In immediate mode it degenerates to invoking on
every call, which is the documented behavior rather than an error.

Error Handling:

The wrapper introduces no error surface of its own. Panics raised by the
operation propagate at the point it actually executes, which in trailing
mode is the timer goroutine.

Thread Safety:

All operations are safe for concurrent use. At most one deferred
invocation is scheduled per instance at any time; a superseding call
cancels the outstanding one.
*/
package debounce
