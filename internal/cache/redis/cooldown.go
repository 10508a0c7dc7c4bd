package redis

import (
	"context"
	"fmt"
	"time"
)

const cooldownKeyPrefix = "spreadarb:cooldown:"

// Cooldown implements the alert cooldown window on Redis. SET NX with a TTL
// makes the claim atomic, so two scanner replicas sharing one Redis never
// alert twice for the same opportunity inside the window.
type Cooldown struct {
	client *Client
	ttl    time.Duration
}

// NewCooldown creates a cooldown gate with the given window.
func NewCooldown(client *Client, ttl time.Duration) *Cooldown {
	return &Cooldown{client: client, ttl: ttl}
}

// Allow reports whether an alert for the key may be sent now. The first caller
// inside a window claims the key and gets true; everyone else gets false until
// the TTL lapses.
func (c *Cooldown) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := c.client.rdb.SetNX(ctx, cooldownKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis: cooldown claim %s: %w", key, err)
	}
	return ok, nil
}
