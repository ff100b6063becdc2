// Package metrics provides Prometheus instrumentation for gopace components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gopace components.
type Registry struct {
	// Wrapper metrics (debounce and throttle)
	WrapperCalls       *prometheus.CounterVec
	WrapperInvocations *prometheus.CounterVec
	WrapperDropped     *prometheus.CounterVec
	WrapperPending     *prometheus.GaugeVec

	// Request helper metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// DefaultRegistry is the default metrics registry used by gopace components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		WrapperCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopace",
				Subsystem: "wrapper",
				Name:      "calls_total",
				Help:      "Total number of calls made to a wrapper",
			},
			[]string{"wrapper_type", "wrapper_name"},
		),

		WrapperInvocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopace",
				Subsystem: "wrapper",
				Name:      "invocations_total",
				Help:      "Total number of times the wrapped operation actually ran",
			},
			[]string{"wrapper_type", "wrapper_name"},
		),

		WrapperDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopace",
				Subsystem: "wrapper",
				Name:      "dropped_total",
				Help:      "Total number of calls suppressed by a wrapper",
			},
			[]string{"wrapper_type", "wrapper_name"},
		),

		WrapperPending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "gopace",
				Subsystem: "wrapper",
				Name:      "pending_deferred",
				Help:      "Whether a deferred invocation is currently scheduled (0 or 1)",
			},
			[]string{"wrapper_type", "wrapper_name"},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gopace",
				Subsystem: "request",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests issued by the request helpers",
			},
			[]string{"method", "outcome"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gopace",
				Subsystem: "request",
				Name:      "duration_seconds",
				Help:      "Time spent executing HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}
