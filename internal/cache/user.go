package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// userCachePrefix is the Redis key prefix for cached auth snapshots.
	userCachePrefix = "auth:user:"
	// userCacheTTL is the time-to-live for cached auth snapshots.
	userCacheTTL = 5 * time.Minute
)

// UserSnapshot is the slice of user state the auth middleware needs:
// whether the account still exists and whether it has been soft-deleted.
type UserSnapshot struct {
	UserID  string `json:"user_id"`
	Deleted bool   `json:"deleted"`
}

// userKey builds the Redis key for a user's auth snapshot.
func userKey(userID string) string {
	return userCachePrefix + userID
}

// GetUserSnapshot retrieves a cached auth snapshot.
// Returns nil on a cache miss; a corrupted entry is treated as a miss.
func (c *Cache) GetUserSnapshot(ctx context.Context, userID string) (*UserSnapshot, error) {
	data, err := c.client.Get(ctx, userKey(userID)).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var snap UserSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil //nolint:nilerr
	}

	return &snap, nil
}

// SetUserSnapshot caches an auth snapshot.
func (c *Cache) SetUserSnapshot(ctx context.Context, snap *UserSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal user snapshot: %w", err)
	}

	return c.client.Set(ctx, userKey(snap.UserID), data, userCacheTTL).Err()
}

// InvalidateUser removes a cached auth snapshot. Called after email
// changes and soft deletes so stale state never outlives the mutation
// by more than one round-trip.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) error {
	return c.client.Del(ctx, userKey(userID)).Err()
}
