package debounce

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/gopace/pkg/metrics"
)

// MetricsDebouncer wraps a Debouncer with Prometheus metrics collection.
type MetricsDebouncer struct {
	inner       Debouncer
	name        string
	wrapperType string
	registry    *metrics.Registry
	enabled     bool
}

// NewWithMetrics creates a new trailing-edge debouncer with metrics enabled.
func NewWithMetrics(fn Func, delay time.Duration, name string) Debouncer {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(fn, Config{Delay: delay}, name, config)
}

// NewWithConfigAndMetrics creates a new debouncer with custom config and metrics.
func NewWithConfigAndMetrics(fn Func, config Config, name string, metricsConfig metrics.Config) Debouncer {
	if !metricsConfig.Enabled {
		return NewWithConfig(fn, config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	wrapperType := "debounce"
	if config.Immediate {
		wrapperType = "debounce_immediate"
	}

	md := &MetricsDebouncer{
		name:        name,
		wrapperType: wrapperType,
		registry:    registry,
		enabled:     true,
	}

	// Instrument the operation itself so deferred invocations are counted
	// when they actually run, not when they are scheduled.
	instrumented := func(args ...interface{}) {
		if md.enabled {
			md.registry.WrapperInvocations.WithLabelValues(md.wrapperType, md.name).Inc()
		}
		fn(args...)
	}

	md.inner = NewWithConfig(instrumented, config)
	return md
}

// Call registers a call and records wrapper activity.
func (md *MetricsDebouncer) Call(args ...interface{}) {
	if md.enabled {
		md.registry.WrapperCalls.WithLabelValues(md.wrapperType, md.name).Inc()
	}

	md.inner.Call(args...)

	if md.enabled {
		md.registry.WrapperPending.WithLabelValues(md.wrapperType, md.name).Set(boolToGauge(md.inner.Pending()))
	}
}

// Pending reports whether the wrapper is inside an active burst.
func (md *MetricsDebouncer) Pending() bool {
	pending := md.inner.Pending()

	if md.enabled {
		md.registry.WrapperPending.WithLabelValues(md.wrapperType, md.name).Set(boolToGauge(pending))
	}

	return pending
}

// Delay returns the quiet period.
func (md *MetricsDebouncer) Delay() time.Duration {
	return md.inner.Delay()
}

// Immediate reports whether the wrapper invokes on the leading edge.
func (md *MetricsDebouncer) Immediate() bool {
	return md.inner.Immediate()
}

// EnableMetrics enables metrics collection.
func (md *MetricsDebouncer) EnableMetrics(config metrics.Config) error {
	md.enabled = config.Enabled

	if config.Registry != nil {
		md.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (md *MetricsDebouncer) DisableMetrics() {
	md.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (md *MetricsDebouncer) MetricsEnabled() bool {
	return md.enabled
}

func boolToGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
