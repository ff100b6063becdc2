package request

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vnykmshr/gopace/pkg/metrics"
	"github.com/vnykmshr/gopace/pkg/ratelimit/throttle"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, for custom
// transports or test doubles.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.hc.Timeout = d
	}
}

// WithLogger attaches a structured logger. Completed requests log at
// debug, failures at error.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithThrottle gates admission: requests arriving within threshold of the
// last admitted one fail with ErrRateLimited instead of being sent.
func WithThrottle(threshold time.Duration) Option {
	return func(c *Client) {
		c.gate = throttle.NewTimestamp(func(...interface{}) {}, threshold)
	}
}

// WithMetrics enables request counters and latency histograms.
func WithMetrics(config metrics.Config) Option {
	return func(c *Client) {
		if !config.Enabled {
			c.registry = nil
			return
		}
		c.registry = metrics.DefaultRegistry
		if config.Registry != nil {
			c.registry = metrics.NewRegistry(config.Registry)
		}
	}
}
