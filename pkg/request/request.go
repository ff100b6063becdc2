package request

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	gperrors "github.com/vnykmshr/gopace/pkg/common/errors"
	"github.com/vnykmshr/gopace/pkg/metrics"
	"github.com/vnykmshr/gopace/pkg/ratelimit/throttle"
)

// Response holds the outcome of a completed request with the body already
// drained, so completion handlers never manage the connection themselves.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Callback receives the outcome of a request. Exactly one of resp and err
// is non-nil. It runs on a goroutine owned by the client.
type Callback func(resp *Response, err error)

// Client issues HTTP requests with callback or future delivery. The zero
// value is not usable; construct with NewClient.
type Client struct {
	hc       *http.Client
	log      *slog.Logger
	gate     throttle.Throttler
	registry *metrics.Registry
}

// NewClient creates a request client. Without options it uses
// http.DefaultClient settings, a 30 second timeout and discards logs.
func NewClient(opts ...Option) *Client {
	c := &Client{
		hc:  &http.Client{Timeout: 30 * time.Second},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get issues a GET request and delivers the outcome to cb on a separate
// goroutine. It returns without waiting for the round trip; a throttled
// request is failed on that goroutine too, still via cb.
func (c *Client) Get(ctx context.Context, url string, cb Callback) {
	go func() {
		cb(c.do(ctx, http.MethodGet, url, "", nil))
	}()
}

// Post issues a POST request with the given body and delivers the outcome
// to cb on a separate goroutine. It returns without waiting for the round
// trip.
func (c *Client) Post(ctx context.Context, url, contentType string, body []byte, cb Callback) {
	go func() {
		cb(c.do(ctx, http.MethodPost, url, contentType, body))
	}()
}

// GetAsync issues a GET request and returns a Future resolving to its
// outcome.
func (c *Client) GetAsync(ctx context.Context, url string) *Future {
	f := newFuture()
	go func() {
		f.resolve(c.do(ctx, http.MethodGet, url, "", nil))
	}()
	return f
}

// PostAsync issues a POST request with the given body and returns a Future
// resolving to its outcome.
func (c *Client) PostAsync(ctx context.Context, url, contentType string, body []byte) *Future {
	f := newFuture()
	go func() {
		f.resolve(c.do(ctx, http.MethodPost, url, contentType, body))
	}()
	return f
}

// do runs one request synchronously: admission check, transport round
// trip, body drain. All delivery styles funnel through here.
func (c *Client) do(ctx context.Context, method, url, contentType string, body []byte) (*Response, error) {
	start := time.Now()

	if c.gate != nil && !c.gate.Call() {
		c.log.Warn("request throttled", "method", method, "url", url)
		c.observe(method, "throttled", start)
		return nil, gperrors.NewOperationError("request", method, gperrors.ErrRateLimited).
			WithContext(url)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		c.observe(method, "error", start)
		return nil, gperrors.NewOperationError("request", method, err).WithContext(url)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "url", url, "err", err)
		c.observe(method, "error", start)
		return nil, gperrors.NewOperationError("request", method, err).WithContext(url)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("request body read failed", "method", method, "url", url, "err", err)
		c.observe(method, "error", start)
		return nil, gperrors.NewOperationError("request", method, err).WithContext(url)
	}

	c.log.Debug("request completed",
		"method", method,
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	c.observe(method, "success", start)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}

func (c *Client) observe(method, outcome string, start time.Time) {
	if c.registry == nil {
		return
	}
	c.registry.RequestsTotal.WithLabelValues(method, outcome).Inc()
	c.registry.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
