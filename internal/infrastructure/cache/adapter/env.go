package adapter

import (
	"os"

	"github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/cache/port"
)

// NewCacheFromEnv returns a Redis-backed cache when REDIS_URL is set and an
// in-process cache otherwise. A Redis that is configured but unreachable is
// an error: a half-wired cache is worse than none.
func NewCacheFromEnv() (port.Cache, error) {
	if os.Getenv("REDIS_URL") == "" {
		return NewMemoryCache(), nil
	}
	return NewRedisAdapter()
}
