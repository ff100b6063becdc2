/*
Package gopace provides call-rate wrappers for Go: debouncing and
throttling of function invocation, with optional Prometheus metrics,
Redis-coordinated throttling across instances, and small request
helpers built on the same wrappers.

Rate Limiting (pkg/ratelimit):
  - debounce: Collapse bursts of calls into one invocation (trailing or leading edge)
  - throttle: At most one invocation per interval (timestamp or timer strategy)
  - distributed: Fleet-wide throttling coordinated through Redis

Request Helpers (pkg/request):
  - Callback- and future-style HTTP helpers with client-side throttling

Example usage:

	import (
		"github.com/vnykmshr/gopace/pkg/ratelimit/debounce"
		"github.com/vnykmshr/gopace/pkg/ratelimit/throttle"
	)

	save := debounce.New(persist, 200*time.Millisecond) // trailing edge
	save.Call(document)

	refresh := throttle.New(redraw, time.Second, throttle.Timestamp)
	refresh.Call() // at most one redraw per second
*/
package gopace
