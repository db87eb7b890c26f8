package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// loginAttemptPrefix is the Redis key prefix for login attempt counters.
	loginAttemptPrefix = "ratelimit:login:"
	// loginAttemptWindow is how long failed attempts are remembered.
	loginAttemptWindow = 15 * time.Minute
)

// IncrLoginAttempts bumps the failed-login counter for a key (client IP)
// and returns the new count. The window starts with the first failure.
func (c *Cache) IncrLoginAttempts(ctx context.Context, key string) (int64, error) {
	redisKey := loginAttemptPrefix + key

	count, err := c.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("incr login attempts: %w", err)
	}

	if count == 1 {
		if err := c.client.Expire(ctx, redisKey, loginAttemptWindow).Err(); err != nil {
			return count, fmt.Errorf("set login attempt expiry: %w", err)
		}
	}

	return count, nil
}

// ResetLoginAttempts clears the counter after a successful login.
func (c *Cache) ResetLoginAttempts(ctx context.Context, key string) error {
	return c.client.Del(ctx, loginAttemptPrefix+key).Err()
}
