package distributed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Example_basicUsage demonstrates cluster-wide throttling of a shared
// operation.
func Example_basicUsage() {
	// Create a Redis client (in real usage, use your Redis connection)
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use a test database
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	th, err := New(func(args ...interface{}) {
		fmt.Printf("cache flushed by %v\n", args[0])
	}, Config{
		Redis:      rdb,
		Key:        "gopace:example:flush",
		Threshold:  time.Second,
		InstanceID: "example_instance_1",
	})
	if err != nil {
		log.Fatalf("Failed to create throttler: %v", err)
	}
	defer func() { _ = th.Close() }()

	// Only the first call inside the window fires, no matter which
	// instance issues it.
	for i := 0; i < 3; i++ {
		fired, err := th.Call(ctx, "instance_1")
		if err != nil {
			log.Printf("call failed: %v", err)
			continue
		}
		fmt.Printf("Call %d fired: %v\n", i+1, fired)
	}

	stats, err := th.Stats(ctx)
	if err == nil {
		fmt.Printf("Total: %d, Allowed: %d, Dropped: %d\n",
			stats.TotalCalls, stats.AllowedCalls, stats.DroppedCalls)
	}

	_ = th.Reset(ctx)
}

// Example_multipleInstances demonstrates two application instances sharing
// one throttle window.
func Example_multipleInstances() {
	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})
	defer func() { _ = rdb.Close() }()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Println("Redis not available, skipping example")
		return
	}

	flush := func(args ...interface{}) {
		fmt.Printf("flushed by %v\n", args[0])
	}

	base := Config{
		Redis:     rdb,
		Key:       "gopace:example:shared",
		Threshold: time.Second,
	}

	config1 := base
	config1.InstanceID = "instance_1"
	th1, err := New(flush, config1)
	if err != nil {
		log.Fatalf("Failed to create throttler 1: %v", err)
	}
	defer func() { _ = th1.Close() }()

	config2 := base
	config2.InstanceID = "instance_2"
	th2, err := New(flush, config2)
	if err != nil {
		log.Fatalf("Failed to create throttler 2: %v", err)
	}
	defer func() { _ = th2.Close() }()

	// Both instances race for the same window; at most one wins.
	fired1, _ := th1.Call(ctx, "instance_1")
	fired2, _ := th2.Call(ctx, "instance_2")
	fmt.Printf("Instance1 fired: %v, Instance2 fired: %v\n", fired1, fired2)

	stats, err := th1.Stats(ctx)
	if err == nil {
		fmt.Printf("Last winner: %s, Active instances: %d\n",
			stats.LastInstance, len(stats.ActiveInstances))
	}

	_ = th1.Reset(ctx)
}

// Example_fallbackToLocal demonstrates degraded operation when Redis is
// unreachable.
func Example_fallbackToLocal() {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "localhost:9999", // Non-existent Redis server
		DialTimeout: 100 * time.Millisecond,
	})
	defer func() { _ = rdb.Close() }()

	th, err := New(func(args ...interface{}) {
		fmt.Println("flushed locally")
	}, Config{
		Redis:           rdb,
		Key:             "gopace:example:fallback",
		Threshold:       time.Minute,
		RedisTimeout:    200 * time.Millisecond,
		FallbackToLocal: true,
	})
	if err != nil {
		log.Fatalf("Failed to create throttler: %v", err)
	}
	defer func() { _ = th.Close() }()

	ctx := context.Background()

	// Redis is down, so each call degrades to the process-local window.
	fired, err := th.Call(ctx)
	fmt.Printf("First call fired: %v, err: %v\n", fired, err)

	fired, err = th.Call(ctx)
	fmt.Printf("Second call fired: %v, err: %v\n", fired, err)

	// Output:
	// flushed locally
	// First call fired: true, err: <nil>
	// Second call fired: false, err: <nil>
}
