package throttle

import (
	"time"

	"github.com/vnykmshr/gopace/pkg/common/clock"
	gperrors "github.com/vnykmshr/gopace/pkg/common/errors"
	"github.com/vnykmshr/gopace/pkg/common/validation"
)

// Func is an operation wrapped by a Throttler. Arguments are passed through
// from the call that triggers execution; any bound state travels inside the
// closure itself.
type Func func(args ...interface{})

// Strategy selects how a Throttler spaces invocations.
type Strategy int

const (
	// Timestamp compares the current time against the last invocation and
	// runs the operation inline on the qualifying call. Invocations are
	// never delayed.
	Timestamp Strategy = iota

	// Timer defers the invocation to the end of each interval and uses
	// the arguments of the first call that opened the window.
	Timer
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Timestamp:
		return "timestamp"
	case Timer:
		return "timer"
	default:
		return "unknown"
	}
}

// Throttler limits how often the wrapped operation runs: at most once per
// threshold interval. Calls that arrive inside a closed window are dropped;
// their arguments are discarded, never queued.
type Throttler interface {
	// Call registers a call with the given arguments. It reports whether
	// the call was accepted: invoked inline for the timestamp strategy,
	// or scheduled as the window's invocation for the timer strategy.
	Call(args ...interface{}) bool

	// Pending reports whether a deferred invocation is currently
	// scheduled. Always false for the timestamp strategy.
	Pending() bool

	// Threshold returns the minimum interval between invocations.
	Threshold() time.Duration

	// SetThreshold changes the interval for subsequent calls.
	SetThreshold(d time.Duration)

	// Strategy returns the strategy this throttler uses.
	Strategy() Strategy
}

// Config holds configuration options for creating a new Throttler.
type Config struct {
	// Threshold is the minimum interval between invocations.
	Threshold time.Duration

	// Strategy selects timestamp or timer behavior. Defaults to Timestamp.
	Strategy Strategy

	// Scheduler provides the time source and deferred execution.
	// If nil, SystemScheduler is used.
	Scheduler clock.Scheduler
}

// New creates a Throttler using the given strategy. It returns the
// strategy's wrapper unchanged. It panics on invalid parameters; use
// NewSafe in production code.
func New(fn Func, threshold time.Duration, strategy Strategy) Throttler {
	return NewWithConfig(fn, Config{Threshold: threshold, Strategy: strategy})
}

// NewSafe creates a Throttler with validation that returns an error
// instead of panicking.
func NewSafe(fn Func, threshold time.Duration, strategy Strategy) (Throttler, error) {
	return NewWithConfigSafe(fn, Config{Threshold: threshold, Strategy: strategy})
}

// NewTimestamp creates a timestamp-strategy Throttler.
// It panics on invalid parameters.
func NewTimestamp(fn Func, threshold time.Duration) Throttler {
	return NewWithConfig(fn, Config{Threshold: threshold, Strategy: Timestamp})
}

// NewTimer creates a timer-strategy Throttler.
// It panics on invalid parameters.
func NewTimer(fn Func, threshold time.Duration) Throttler {
	return NewWithConfig(fn, Config{Threshold: threshold, Strategy: Timer})
}

// NewWithConfig creates a Throttler with custom configuration.
// It panics on invalid parameters; use NewWithConfigSafe in production code.
func NewWithConfig(fn Func, config Config) Throttler {
	th, err := NewWithConfigSafe(fn, config)
	if err != nil {
		panic(err)
	}
	return th
}

// NewWithConfigSafe creates a Throttler with validation that returns an
// error instead of panicking. This is the recommended way to create
// throttlers for production use.
func NewWithConfigSafe(fn Func, config Config) (Throttler, error) {
	if fn == nil {
		if err := validation.ValidateNotNil("throttle", "operation", nil); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateNonNegativeDuration("throttle", "threshold", config.Threshold); err != nil {
		return nil, err
	}
	if config.Scheduler == nil {
		config.Scheduler = clock.SystemScheduler{}
	}

	switch config.Strategy {
	case Timestamp:
		return &timestampThrottler{
			fn:        fn,
			threshold: config.Threshold,
			clk:       config.Scheduler,
		}, nil
	case Timer:
		return &timerThrottler{
			fn:        fn,
			threshold: config.Threshold,
			sched:     config.Scheduler,
		}, nil
	default:
		return nil, gperrors.NewValidationError("throttle", "strategy", config.Strategy, "unsupported strategy").
			WithHint("use throttle.Timestamp or throttle.Timer")
	}
}

// Wrap returns the throttled form of fn as a bare closure, for callers that
// want a drop-in replacement rather than the Throttler interface. Dropped
// calls are silent.
func Wrap(fn Func, threshold time.Duration, strategy Strategy) Func {
	th := New(fn, threshold, strategy)
	return func(args ...interface{}) {
		th.Call(args...)
	}
}
