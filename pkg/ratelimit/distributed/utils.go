package distributed

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"
)

// generateInstanceID creates a unique identifier for this application instance.
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	pid := os.Getpid()

	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)

	return fmt.Sprintf("%s-%d-%x-%d",
		hostname, pid, randomBytes, time.Now().Unix())
}

// redisKeys generates the Redis keys shared by all instances of a throttler.
func redisKeys(prefix string) map[string]string {
	return map[string]string{
		"last":      prefix + ":last_invocation",
		"config":    prefix + ":config",
		"stats":     prefix + ":stats",
		"instances": prefix + ":instances",
	}
}
