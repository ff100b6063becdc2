package request

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/gopace/internal/testutil"
	gperrors "github.com/vnykmshr/gopace/pkg/common/errors"
	"github.com/vnykmshr/gopace/pkg/metrics"
)

type outcome struct {
	resp *Response
	err  error
}

// deliver adapts the callback style to a channel for test synchronization.
func deliver(ch chan<- outcome) Callback {
	return func(resp *Response, err error) {
		ch <- outcome{resp, err}
	}
}

func TestGetDeliversResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Probe", "yes")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := NewClient()
	ch := make(chan outcome, 1)

	client.Get(context.Background(), srv.URL, deliver(ch))

	got := <-ch
	testutil.AssertNoError(t, got.err)
	testutil.AssertEqual(t, got.resp.StatusCode, http.StatusOK)
	testutil.AssertEqual(t, string(got.resp.Body), "hello")
	testutil.AssertEqual(t, got.resp.Header.Get("X-Probe"), "yes")
}

func TestPostSendsBody(t *testing.T) {
	var gotBody string
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient()
	ch := make(chan outcome, 1)

	client.Post(context.Background(), srv.URL, "application/json", []byte(`{"n":1}`), deliver(ch))

	got := <-ch
	testutil.AssertNoError(t, got.err)
	testutil.AssertEqual(t, got.resp.StatusCode, http.StatusCreated)
	testutil.AssertEqual(t, gotBody, `{"n":1}`)
	testutil.AssertEqual(t, gotContentType, "application/json")
}

func TestNonOKStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient()
	ch := make(chan outcome, 1)

	client.Get(context.Background(), srv.URL, deliver(ch))

	got := <-ch
	testutil.AssertNoError(t, got.err)
	testutil.AssertEqual(t, got.resp.StatusCode, http.StatusInternalServerError)
}

func TestTransportFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient()
	ch := make(chan outcome, 1)

	client.Get(context.Background(), srv.URL, deliver(ch))

	got := <-ch
	testutil.AssertError(t, got.err)
	if got.resp != nil {
		t.Error("expected nil response on transport failure")
	}
}

func TestCallbackStyleDoesNotBlockCaller(t *testing.T) {
	// The server answers only once released, so a caller that waits for
	// the round trip would stall here instead of returning immediately.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte("slow"))
	}))
	defer srv.Close()

	client := NewClient()
	ch := make(chan outcome, 2)

	start := time.Now()
	client.Get(context.Background(), srv.URL, deliver(ch))
	client.Post(context.Background(), srv.URL, "text/plain", []byte("x"), deliver(ch))
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Fatalf("dispatch blocked the caller for %v", elapsed)
	}

	close(release)
	for i := 0; i < 2; i++ {
		got := <-ch
		testutil.AssertNoError(t, got.err)
		testutil.AssertEqual(t, string(got.resp.Body), "slow")
	}
}

func TestFutureResolves(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("async"))
	}))
	defer srv.Close()

	client := NewClient()
	f := client.GetAsync(context.Background(), srv.URL)

	resp, err := f.Wait(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(resp.Body), "async")

	// Resolved futures keep answering.
	select {
	case <-f.Done():
	default:
		t.Error("Done channel should be closed after resolution")
	}
	resp2, err := f.Wait(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(resp2.Body), "async")
}

func TestFutureWaitHonorsContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewClient()
	f := client.GetAsync(context.Background(), srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context deadline, got %v", err)
	}
}

func TestThrottleGateDropsBursts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	client := NewClient(WithThrottle(time.Hour))
	ch := make(chan outcome, 1)

	client.Get(context.Background(), srv.URL, deliver(ch))
	first := <-ch
	testutil.AssertNoError(t, first.err)

	client.Get(context.Background(), srv.URL, deliver(ch))
	second := <-ch
	testutil.AssertError(t, second.err)
	if !errors.Is(second.err, gperrors.ErrRateLimited) {
		t.Errorf("expected rate limited error, got %v", second.err)
	}
}

func TestMetricsRecordOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	client := NewClient(
		WithThrottle(time.Hour),
		WithMetrics(metrics.Config{Enabled: true, Registry: reg}),
	)

	ch := make(chan outcome, 1)
	client.Get(context.Background(), srv.URL, deliver(ch))
	<-ch
	client.Get(context.Background(), srv.URL, deliver(ch))
	<-ch

	families, err := reg.Gather()
	testutil.AssertNoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "gopace_request_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" {
					counts[lp.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}

	testutil.AssertEqual(t, counts["success"], 1.0)
	testutil.AssertEqual(t, counts["throttled"], 1.0)
}

func TestWithTimeout(t *testing.T) {
	client := NewClient(WithTimeout(5 * time.Second))
	testutil.AssertEqual(t, client.hc.Timeout, 5*time.Second)
}
