package distributed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	gperrors "github.com/vnykmshr/gopace/pkg/common/errors"
	"github.com/vnykmshr/gopace/pkg/common/validation"
	"github.com/vnykmshr/gopace/pkg/ratelimit/throttle"
)

// Func is the operation guarded by a distributed throttler. Arguments are
// supplied by the qualifying call.
type Func func(args ...interface{})

// Throttler coordinates timestamp throttling across application instances.
type Throttler interface {
	// Call attempts to run the operation. It reports whether this call
	// qualified cluster-wide; the operation runs inline on the winning
	// instance. The error is non-nil only when Redis failed and no local
	// fallback absorbed the failure.
	Call(ctx context.Context, args ...interface{}) (bool, error)

	// Threshold returns the minimum interval between invocations.
	Threshold() time.Duration

	// SetThreshold changes the interval across all instances.
	SetThreshold(ctx context.Context, d time.Duration) error

	// Stats returns cluster-wide call statistics. Counters that are
	// missing from the shared state, as on a fresh throttler, or that
	// fail to parse read as zero.
	Stats(ctx context.Context) (*Stats, error)

	// Reset clears the shared state (useful for testing).
	Reset(ctx context.Context) error

	// Close deregisters this instance and releases resources.
	Close() error
}

// Stats holds cluster-wide throttler statistics.
type Stats struct {
	Threshold       time.Duration
	TotalCalls      int64
	AllowedCalls    int64
	DroppedCalls    int64
	LastInstance    string
	ActiveInstances []string
}

// Config holds configuration for distributed throttlers.
type Config struct {
	// Redis client used for coordination.
	Redis redis.UniversalClient

	// Key is the Redis key prefix shared by all instances of this throttler.
	Key string

	// Threshold is the minimum interval between invocations cluster-wide.
	Threshold time.Duration

	// InstanceID uniquely identifies this application instance.
	// Generated when empty.
	InstanceID string

	// RedisTimeout bounds each Redis operation (defaults to 500ms).
	RedisTimeout time.Duration

	// KeyTTL is how long shared keys live without activity (defaults to 1 hour).
	KeyTTL time.Duration

	// FallbackToLocal degrades to a process-local timestamp throttler when
	// Redis is unavailable.
	FallbackToLocal bool
}

// DefaultConfig returns a distributed throttler configuration with sensible
// defaults. Redis, Key and Threshold must still be provided.
func DefaultConfig() Config {
	return Config{
		InstanceID:      generateInstanceID(),
		RedisTimeout:    500 * time.Millisecond,
		KeyTTL:          time.Hour,
		FallbackToLocal: true,
	}
}

// New creates a distributed timestamp throttler for fn.
func New(fn Func, config Config) (Throttler, error) {
	if err := validateConfig(fn, config); err != nil {
		return nil, err
	}

	return newRedisTimestamp(fn, applyConfigDefaults(config))
}

func validateConfig(fn Func, config Config) error {
	if fn == nil {
		if err := validation.ValidateNotNil("distributed", "operation", nil); err != nil {
			return err
		}
	}
	if config.Redis == nil {
		return gperrors.NewValidationError("distributed", "redis", nil, "client is required").
			WithHint("Pass a connected redis.UniversalClient in Config.Redis")
	}
	if err := validation.ValidateNotEmpty("distributed", "key", config.Key); err != nil {
		return err
	}
	if err := validation.ValidatePositiveDuration("distributed", "threshold", config.Threshold); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeDuration("distributed", "redisTimeout", config.RedisTimeout); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeDuration("distributed", "keyTTL", config.KeyTTL); err != nil {
		return err
	}
	return nil
}

func applyConfigDefaults(config Config) Config {
	if config.InstanceID == "" {
		config.InstanceID = generateInstanceID()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	if config.KeyTTL == 0 {
		config.KeyTTL = time.Hour
	}
	return config
}

// RedisError represents a failed Redis operation.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}

// newLocalFallback builds the process-local throttler used when Redis is
// unreachable. It shares fn with the distributed path so the operation's
// semantics do not change, only the coordination scope.
func newLocalFallback(fn Func, threshold time.Duration) throttle.Throttler {
	return throttle.NewWithConfig(throttle.Func(fn), throttle.Config{
		Threshold: threshold,
		Strategy:  throttle.Timestamp,
	})
}
