package throttle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/gopace/pkg/metrics"
)

// MetricsThrottler wraps a Throttler with Prometheus metrics collection.
type MetricsThrottler struct {
	inner       Throttler
	name        string
	wrapperType string
	registry    *metrics.Registry
	enabled     bool
}

// NewWithMetrics creates a new throttler with metrics enabled.
func NewWithMetrics(fn Func, threshold time.Duration, strategy Strategy, name string) Throttler {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(fn, Config{Threshold: threshold, Strategy: strategy}, name, config)
}

// NewWithConfigAndMetrics creates a new throttler with custom config and metrics.
func NewWithConfigAndMetrics(fn Func, config Config, name string, metricsConfig metrics.Config) Throttler {
	if !metricsConfig.Enabled {
		return NewWithConfig(fn, config)
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mt := &MetricsThrottler{
		name:        name,
		wrapperType: "throttle_" + config.Strategy.String(),
		registry:    registry,
		enabled:     true,
	}

	// Instrument the operation itself so timer-strategy invocations are
	// counted when they actually run, not when they are scheduled.
	instrumented := func(args ...interface{}) {
		if mt.enabled {
			mt.registry.WrapperInvocations.WithLabelValues(mt.wrapperType, mt.name).Inc()
		}
		fn(args...)
	}

	mt.inner = NewWithConfig(instrumented, config)
	return mt
}

// Call registers a call and records wrapper activity.
func (mt *MetricsThrottler) Call(args ...interface{}) bool {
	if mt.enabled {
		mt.registry.WrapperCalls.WithLabelValues(mt.wrapperType, mt.name).Inc()
	}

	accepted := mt.inner.Call(args...)

	if mt.enabled {
		if !accepted {
			mt.registry.WrapperDropped.WithLabelValues(mt.wrapperType, mt.name).Inc()
		}
		mt.registry.WrapperPending.WithLabelValues(mt.wrapperType, mt.name).Set(boolToGauge(mt.inner.Pending()))
	}

	return accepted
}

// Pending reports whether a deferred invocation is scheduled.
func (mt *MetricsThrottler) Pending() bool {
	pending := mt.inner.Pending()

	if mt.enabled {
		mt.registry.WrapperPending.WithLabelValues(mt.wrapperType, mt.name).Set(boolToGauge(pending))
	}

	return pending
}

// Threshold returns the minimum interval between invocations.
func (mt *MetricsThrottler) Threshold() time.Duration {
	return mt.inner.Threshold()
}

// SetThreshold changes the interval for subsequent calls.
func (mt *MetricsThrottler) SetThreshold(d time.Duration) {
	mt.inner.SetThreshold(d)
}

// Strategy returns the strategy of the wrapped throttler.
func (mt *MetricsThrottler) Strategy() Strategy {
	return mt.inner.Strategy()
}

// EnableMetrics enables metrics collection.
func (mt *MetricsThrottler) EnableMetrics(config metrics.Config) error {
	mt.enabled = config.Enabled

	if config.Registry != nil {
		mt.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mt *MetricsThrottler) DisableMetrics() {
	mt.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mt *MetricsThrottler) MetricsEnabled() bool {
	return mt.enabled
}

func boolToGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
