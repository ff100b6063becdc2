package debounce

import (
	"sync"
	"time"

	"github.com/vnykmshr/gopace/pkg/common/clock"
)

// debouncer implements the Debouncer interface.
//
// Invariant: at most one deferred invocation is scheduled per instance.
// The generation counter guards against a timer that already fired its
// callback racing a superseding Call; a stale callback is a no-op.
type debouncer struct {
	mu        sync.Mutex
	fn        Func
	delay     time.Duration
	immediate bool
	sched     clock.Scheduler

	timer   clock.Timer
	pending bool
	gen     uint64
}

// Call registers a call, superseding any pending deferred invocation.
func (d *debouncer) Call(args ...interface{}) {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	gen := d.gen

	if d.immediate {
		fire := !d.pending
		d.pending = true
		// The timer's only effect is ending the quiet period so the
		// next burst's leading call fires again.
		d.timer = d.sched.AfterFunc(d.delay, func() {
			d.clear(gen)
		})
		d.mu.Unlock()

		if fire {
			d.fn(args...)
		}
		return
	}

	d.pending = true
	d.timer = d.sched.AfterFunc(d.delay, func() {
		if !d.clear(gen) {
			return
		}
		d.fn(args...)
	})
	d.mu.Unlock()
}

// clear resets the pending marker if gen is still current, reporting
// whether it was.
func (d *debouncer) clear(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		return false
	}
	d.pending = false
	d.timer = nil
	return true
}

// Pending reports whether the wrapper is inside an active burst.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Delay returns the quiet period.
func (d *debouncer) Delay() time.Duration {
	return d.delay
}

// Immediate reports whether the wrapper invokes on the leading edge.
func (d *debouncer) Immediate() bool {
	return d.immediate
}
