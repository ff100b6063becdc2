package debounce

import (
	"time"

	"github.com/vnykmshr/gopace/pkg/common/clock"
	"github.com/vnykmshr/gopace/pkg/common/validation"
)

// Func is an operation wrapped by a Debouncer. Arguments are passed through
// from the call that triggers execution; any bound state travels inside the
// closure itself.
type Func func(args ...interface{})

// Debouncer collapses a burst of calls into a single invocation of the
// wrapped operation. In trailing mode (the default) the operation runs once
// the quiet period elapses, with the arguments of the last call. In
// immediate mode the first call of an idle period runs synchronously and
// the rest of the burst is suppressed.
type Debouncer interface {
	// Call registers a call with the given arguments. Depending on the
	// mode it may invoke the operation synchronously (immediate mode) or
	// schedule it after the quiet period (trailing mode). It never blocks
	// beyond the synchronous invocation itself.
	Call(args ...interface{})

	// Pending reports whether the wrapper is inside an active burst:
	// a deferred invocation is scheduled (trailing mode) or the quiet
	// period after a leading-edge invocation has not elapsed yet.
	Pending() bool

	// Delay returns the quiet period.
	Delay() time.Duration

	// Immediate reports whether the wrapper invokes on the leading edge.
	Immediate() bool
}

// Config holds configuration options for creating a new Debouncer.
type Config struct {
	// Delay is the quiet period that must elapse without calls before the
	// operation runs (trailing mode) or before the next leading-edge call
	// may fire (immediate mode). Zero is valid: immediate mode then fires
	// on every call, by design.
	Delay time.Duration

	// Immediate switches to leading-edge invocation.
	Immediate bool

	// Scheduler provides deferred execution. If nil, SystemScheduler is used.
	Scheduler clock.Scheduler
}

// New creates a trailing-edge Debouncer with the given quiet period.
// It panics on invalid parameters; use NewSafe in production code.
func New(fn Func, delay time.Duration) Debouncer {
	return NewWithConfig(fn, Config{Delay: delay})
}

// NewSafe creates a trailing-edge Debouncer with validation that returns an
// error instead of panicking.
func NewSafe(fn Func, delay time.Duration) (Debouncer, error) {
	return NewWithConfigSafe(fn, Config{Delay: delay})
}

// NewImmediate creates a leading-edge Debouncer with the given quiet period.
// It panics on invalid parameters; use NewSafe with Config in production code.
func NewImmediate(fn Func, delay time.Duration) Debouncer {
	return NewWithConfig(fn, Config{Delay: delay, Immediate: true})
}

// NewWithConfig creates a Debouncer with custom configuration.
// It panics on invalid parameters; use NewWithConfigSafe in production code.
func NewWithConfig(fn Func, config Config) Debouncer {
	d, err := NewWithConfigSafe(fn, config)
	if err != nil {
		panic(err)
	}
	return d
}

// NewWithConfigSafe creates a Debouncer with validation that returns an
// error instead of panicking. This is the recommended way to create
// debouncers for production use.
func NewWithConfigSafe(fn Func, config Config) (Debouncer, error) {
	if fn == nil {
		if err := validation.ValidateNotNil("debounce", "operation", nil); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateNonNegativeDuration("debounce", "delay", config.Delay); err != nil {
		return nil, err
	}
	if config.Scheduler == nil {
		config.Scheduler = clock.SystemScheduler{}
	}

	return &debouncer{
		fn:        fn,
		delay:     config.Delay,
		immediate: config.Immediate,
		sched:     config.Scheduler,
	}, nil
}

// Wrap returns the trailing-edge debounced form of fn as a bare closure,
// for callers that want a drop-in replacement rather than the Debouncer
// interface.
func Wrap(fn Func, delay time.Duration) Func {
	d := New(fn, delay)
	return d.Call
}
