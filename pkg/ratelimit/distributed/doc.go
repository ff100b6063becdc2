/*
Package distributed provides throttling coordinated across multiple
application instances using Redis as the shared time source.

A distributed throttler enforces the timestamp strategy cluster-wide: at
most one instance runs the operation per threshold interval, no matter how
many processes share the key. The last-invocation timestamp lives in Redis
and the check-and-set happens atomically in a Lua script evaluated against
the Redis server clock, so instances with skewed local clocks still agree
on the window.

Basic usage:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	th, err := distributed.New(flushCache, distributed.Config{
		Redis:     client,
		Key:       "cache:flush",
		Threshold: time.Minute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer th.Close()

	fired, err := th.Call(ctx) // at most one instance fires per minute

Fallback Behavior:

When FallbackToLocal is enabled, Redis failures degrade to a process-local
timestamp throttler instead of dropping every call. Each instance then
enforces the threshold independently until Redis recovers.

Error Handling:

Redis failures surface as *RedisError (unwrappable to the underlying
cause) unless the local fallback absorbed them. Configuration problems are
reported as validation errors at construction time.
*/
package distributed
