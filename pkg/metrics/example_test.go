package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_basicUsage demonstrates basic metrics configuration.
func Example_basicUsage() {
	// Create a separate registry for this test
	testRegistry := prometheus.NewRegistry()
	registry := NewRegistry(testRegistry)

	// Example of accessing metrics
	registry.WrapperCalls.WithLabelValues("debounce", "autosave").Add(10)
	registry.WrapperInvocations.WithLabelValues("debounce", "autosave").Add(1)
	registry.WrapperDropped.WithLabelValues("throttle_timestamp", "refresh").Add(4)

	fmt.Println("Metrics updated successfully")

	// Output:
	// Metrics updated successfully
}

// Example_customRegistry demonstrates using a custom Prometheus registry.
func Example_customRegistry() {
	customRegistry := prometheus.NewRegistry()

	config := Config{
		Enabled:  true,
		Registry: customRegistry,
	}

	registry := NewRegistry(config.Registry)

	registry.WrapperCalls.WithLabelValues("throttle_timer", "resize").Add(12)
	registry.WrapperInvocations.WithLabelValues("throttle_timer", "resize").Add(3)

	fmt.Printf("Custom registry enabled: %v\n", config.Enabled)
	fmt.Println("Custom registry configured with gopace metrics")

	// Output:
	// Custom registry enabled: true
	// Custom registry configured with gopace metrics
}
