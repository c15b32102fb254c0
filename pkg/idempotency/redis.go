package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
)

// keyPrefix namespaces replay keys so the instance can be shared with other
// caches.
const keyPrefix = "payment-callback:"

// RedisReplayGuard remembers processed callback external ids in Redis. It
// is a fast-path dedup in front of the store's compare-and-set guard, so a
// Redis outage only costs the fast path, never correctness.
type RedisReplayGuard struct {
	Client *redis.Client
	TTL    time.Duration
}

// Make sure we conform to the interface
var _ settlement.ReplayGuard = (*RedisReplayGuard)(nil)

// NewRedisReplayGuard creates a guard whose keys expire after ttl. The TTL
// only needs to outlive the processor's retry window.
func NewRedisReplayGuard(client *redis.Client, ttl time.Duration) *RedisReplayGuard {
	return &RedisReplayGuard{Client: client, TTL: ttl}
}

// Seen reports whether the external id was already marked.
func (g *RedisReplayGuard) Seen(ctx context.Context, key string) (bool, error) {
	n, err := g.Client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check replay key: %w", err)
	}
	return n > 0, nil
}

// Mark records the external id as processed.
func (g *RedisReplayGuard) Mark(ctx context.Context, key string) error {
	if err := g.Client.Set(ctx, keyPrefix+key, "1", g.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set replay key: %w", err)
	}
	return nil
}
