// Package metrics provides Prometheus instrumentation for gopace components.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Debouncer with metrics
//	saver := debounce.NewWithMetrics(persist, 200*time.Millisecond, "autosave")
//
//	// Throttler with metrics
//	refresher := throttle.NewWithMetrics(redraw, time.Second, throttle.Timestamp, "refresh")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//	saver := debounce.NewWithConfigAndMetrics(
//		persist,
//		debounce.Config{Delay: 200 * time.Millisecond},
//		"autosave",
//		config,
//	)
//
// # Available Metrics
//
//   - gopace_wrapper_calls_total: Calls made to a wrapper
//   - gopace_wrapper_invocations_total: Times the wrapped operation actually ran
//   - gopace_wrapper_dropped_total: Calls suppressed by a wrapper
//   - gopace_wrapper_pending_deferred: Whether a deferred invocation is scheduled
//   - gopace_request_requests_total: HTTP requests issued by the request helpers
//   - gopace_request_duration_seconds: Time spent executing HTTP requests
//
// Wrapper metrics carry a wrapper_type label ("debounce", "debounce_immediate",
// "throttle_timestamp", "throttle_timer") and a user-provided wrapper_name.
package metrics
