package request

import (
	"context"
)

// Future is the promise-style handle for an in-flight request. It resolves
// exactly once; Wait and Done may be used from any number of goroutines.
type Future struct {
	done chan struct{}
	resp *Response
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve records the outcome and unblocks all waiters. Called once.
func (f *Future) resolve(resp *Response, err error) {
	f.resp = resp
	f.err = err
	close(f.done)
}

// Done returns a channel closed when the request completes, for use in
// select statements.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the request completes or ctx is cancelled. On
// cancellation the request keeps running in the background; only this
// waiter gives up.
func (f *Future) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
