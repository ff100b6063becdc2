package distributed

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/gopace/pkg/common/validation"
	"github.com/vnykmshr/gopace/pkg/ratelimit/throttle"
)

// redisTimestamp enforces the timestamp strategy cluster-wide. The
// last-invocation timestamp is stored in Redis and checked against the
// Redis server clock inside a Lua script, so the compare-and-set is atomic
// and immune to local clock skew.
type redisTimestamp struct {
	fn     Func
	config Config
	keys   map[string]string

	mu        sync.RWMutex
	threshold time.Duration

	checkAndSetScript *redis.Script

	fallback throttle.Throttler
}

func newRedisTimestamp(fn Func, config Config) (Throttler, error) {
	rt := &redisTimestamp{
		fn:                fn,
		config:            config,
		keys:              redisKeys(config.Key),
		threshold:         config.Threshold,
		checkAndSetScript: redis.NewScript(luaTimestampCheckAndSet),
	}

	if config.FallbackToLocal {
		rt.fallback = newLocalFallback(fn, config.Threshold)
	}

	if err := rt.initialize(context.Background()); err != nil {
		return nil, err
	}

	return rt, nil
}

// initialize registers this instance and stores the shared configuration.
func (rt *redisTimestamp) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, rt.config.RedisTimeout)
	defer cancel()

	pipe := rt.config.Redis.Pipeline()

	pipe.HSet(ctx, rt.keys["config"], map[string]interface{}{
		"threshold_us": rt.config.Threshold.Microseconds(),
	})
	pipe.Expire(ctx, rt.keys["config"], rt.config.KeyTTL)

	pipe.SAdd(ctx, rt.keys["instances"], rt.config.InstanceID)
	pipe.Expire(ctx, rt.keys["instances"], rt.config.KeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		if rt.fallback != nil {
			return nil
		}
		return &RedisError{"initialize", err}
	}

	return nil
}

// Call attempts to run the operation. The winning instance invokes fn
// inline with the call's own arguments.
func (rt *redisTimestamp) Call(ctx context.Context, args ...interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, rt.config.RedisTimeout)
	defer cancel()

	rt.mu.RLock()
	threshold := rt.threshold
	rt.mu.RUnlock()

	result, err := rt.checkAndSetScript.Run(ctx, rt.config.Redis, []string{
		rt.keys["last"],
		rt.keys["stats"],
	},
		threshold.Microseconds(),
		int64(rt.config.KeyTTL.Seconds()),
		rt.config.InstanceID,
	).Result()

	if err != nil {
		if rt.fallback != nil {
			return rt.fallback.Call(args...), nil
		}
		return false, &RedisError{"call", err}
	}

	allowed, ok := result.(int64)
	if !ok || allowed != 1 {
		return false, nil
	}

	rt.fn(args...)
	return true, nil
}

// Threshold returns the minimum interval between invocations.
func (rt *redisTimestamp) Threshold() time.Duration {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.threshold
}

// SetThreshold changes the interval for this instance and publishes it to
// the shared configuration. Other instances pick it up on construction;
// running instances keep their own value until restarted.
func (rt *redisTimestamp) SetThreshold(ctx context.Context, d time.Duration) error {
	if err := validation.ValidatePositiveDuration("distributed", "threshold", d); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, rt.config.RedisTimeout)
	defer cancel()

	if err := rt.config.Redis.HSet(ctx, rt.keys["config"], "threshold_us", d.Microseconds()).Err(); err != nil {
		return &RedisError{"set_threshold", err}
	}

	rt.mu.Lock()
	rt.threshold = d
	rt.mu.Unlock()

	if rt.fallback != nil {
		rt.fallback.SetThreshold(d)
	}

	return nil
}

// Stats returns cluster-wide call statistics. A fresh throttler has no
// stats hash yet, so absent or unparseable fields read as zero rather
// than failing the whole snapshot.
func (rt *redisTimestamp) Stats(ctx context.Context) (*Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, rt.config.RedisTimeout)
	defer cancel()

	pipe := rt.config.Redis.Pipeline()

	configCmd := pipe.HGetAll(ctx, rt.keys["config"])
	statsCmd := pipe.HGetAll(ctx, rt.keys["stats"])
	instancesCmd := pipe.SMembers(ctx, rt.keys["instances"])

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, &RedisError{"stats", err}
	}

	thresholdUs, _ := strconv.ParseInt(configCmd.Val()["threshold_us"], 10, 64)

	statsMap := statsCmd.Val()
	total, _ := strconv.ParseInt(statsMap["total_calls"], 10, 64)
	allowed, _ := strconv.ParseInt(statsMap["allowed_calls"], 10, 64)
	dropped, _ := strconv.ParseInt(statsMap["dropped_calls"], 10, 64)

	return &Stats{
		Threshold:       time.Duration(thresholdUs) * time.Microsecond,
		TotalCalls:      total,
		AllowedCalls:    allowed,
		DroppedCalls:    dropped,
		LastInstance:    statsMap["last_instance"],
		ActiveInstances: instancesCmd.Val(),
	}, nil
}

// Reset clears the shared state.
func (rt *redisTimestamp) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, rt.config.RedisTimeout)
	defer cancel()

	keys := make([]string, 0, len(rt.keys))
	for _, key := range rt.keys {
		keys = append(keys, key)
	}

	if err := rt.config.Redis.Del(ctx, keys...).Err(); err != nil {
		return &RedisError{"reset", err}
	}

	return rt.initialize(ctx)
}

// Close deregisters this instance.
func (rt *redisTimestamp) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), rt.config.RedisTimeout)
	defer cancel()

	if err := rt.config.Redis.SRem(ctx, rt.keys["instances"], rt.config.InstanceID).Err(); err != nil {
		if rt.fallback != nil {
			return nil
		}
		return &RedisError{"close", err}
	}

	return nil
}

// Lua script for the atomic timestamp check-and-set. Uses the Redis server
// clock (TIME) so all instances measure the window against the same clock.
const luaTimestampCheckAndSet = `
-- KEYS[1]: last invocation timestamp key
-- KEYS[2]: stats key
-- ARGV[1]: threshold in microseconds
-- ARGV[2]: key TTL (seconds)
-- ARGV[3]: instance id

local last_key = KEYS[1]
local stats_key = KEYS[2]

local threshold = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local time = redis.call('TIME')
local now = tonumber(time[1]) * 1000000 + tonumber(time[2])

local last = tonumber(redis.call('GET', last_key) or "0")

redis.call('HINCRBY', stats_key, 'total_calls', 1)
redis.call('EXPIRE', stats_key, ttl)

-- Inside the window: drop. Exactly threshold after the anchor does not
-- qualify; strictly more does.
if last ~= 0 and now - last <= threshold then
    redis.call('HINCRBY', stats_key, 'dropped_calls', 1)
    return 0
end

redis.call('SET', last_key, now, 'EX', ttl)
redis.call('HINCRBY', stats_key, 'allowed_calls', 1)
redis.call('HSET', stats_key, 'last_instance', ARGV[3])

return 1
`
