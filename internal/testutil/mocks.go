package testutil

import (
	"sync"
	"time"

	"github.com/vnykmshr/gopace/pkg/common/clock"
)

// MockClock implements clock.Clock for testing with controllable time.
// This is used across wrapper tests to avoid actual time delays.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a new MockClock starting at the given time.
// If zero time is provided, uses current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock forward by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// MockScheduler implements clock.Scheduler with fake one-shot timers.
// Timers fire only when Advance moves the simulated time past their
// expiry, in expiry order (scheduling order on ties), which makes
// wrapper timing behavior fully deterministic in tests.
type MockScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*mockTimer
}

type mockTimer struct {
	s       *MockScheduler
	when    time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// NewMockScheduler creates a MockScheduler starting at the given time.
// If zero time is provided, uses current time.
func NewMockScheduler(start time.Time) *MockScheduler {
	if start.IsZero() {
		start = time.Now()
	}
	return &MockScheduler{now: start}
}

// Now returns the current simulated time.
func (s *MockScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc registers fn to fire once the simulated time passes d from now.
func (s *MockScheduler) AfterFunc(d time.Duration, fn func()) clock.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &mockTimer{
		s:    s,
		when: s.now.Add(d),
		seq:  s.seq,
		fn:   fn,
	}
	s.seq++
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the simulated time forward by d, firing every due timer in
// expiry order. Callbacks run synchronously on the caller's goroutine, with
// the simulated time set to each timer's expiry while it runs. Callbacks may
// schedule further timers; those are honored within the same Advance if they
// fall inside the window.
func (s *MockScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)

	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		if next.when.After(s.now) {
			s.now = next.when
		}
		next.fired = true
		fn := next.fn

		// Release the lock while firing so callbacks can schedule or stop timers.
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}

	s.now = target
	s.mu.Unlock()
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (s *MockScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// nextDue returns the earliest live timer expiring at or before target.
// Ties break by scheduling order. Caller must hold s.mu.
func (s *MockScheduler) nextDue(target time.Time) *mockTimer {
	var next *mockTimer
	for _, t := range s.timers {
		if t.fired || t.stopped || t.when.After(target) {
			continue
		}
		if next == nil || t.when.Before(next.when) || (t.when.Equal(next.when) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// Stop cancels the timer, reporting whether it was still pending.
func (t *mockTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// CallRecorder records invocations of a wrapped operation: how many times it
// ran and with which arguments. Its Record method satisfies the wrapper
// operation signature used throughout gopace.
type CallRecorder struct {
	mu    sync.Mutex
	calls [][]interface{}
}

// Record captures one invocation with its arguments.
func (r *CallRecorder) Record(args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, args)
}

// Count returns the number of recorded invocations.
func (r *CallRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Args returns the arguments of the i-th recorded invocation.
func (r *CallRecorder) Args(i int) []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[i]
}

// LastArgs returns the arguments of the most recent invocation, or nil
// if the operation never ran.
func (r *CallRecorder) LastArgs() []interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}
