package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const unreadKeyPrefix = "helpdesk:unread:"

// UnreadCache keeps per-user unread notification counters in Redis so the
// badge count endpoint does not hit Postgres on every poll. All methods are
// best effort; a nil cache or an unreachable Redis degrades to the database.
type UnreadCache struct {
	client *redis.Client
}

// NewUnreadCache wraps a Redis client. client may be nil.
func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

// Increment bumps a user's unread counter if it is already cached. A missing
// key stays missing so the next read repopulates from the database.
func (c *UnreadCache) Increment(ctx context.Context, userID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	key := unreadKey(userID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	return c.client.Incr(ctx, key).Err()
}

// Get returns the cached unread count and whether it was present.
func (c *UnreadCache) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	count, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores a freshly counted value.
func (c *UnreadCache) Set(ctx context.Context, userID string, count int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, unreadKey(userID), count, 0).Err()
}

// Invalidate drops the counter, forcing a database recount on next read.
func (c *UnreadCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

func unreadKey(userID string) string {
	return fmt.Sprintf("%s%s", unreadKeyPrefix, userID)
}
