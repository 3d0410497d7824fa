package gate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "confirmhub:inflight:"

// RedisGate is the multi-instance gate: SETNX with a TTL, DEL on release.
type RedisGate struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGate(rdb *redis.Client, ttl time.Duration) *RedisGate {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisGate{rdb: rdb, ttl: ttl}
}

func (g *RedisGate) TryAcquire(ctx context.Context, key string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, keyPrefix+key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("gate acquire: %w", err)
	}
	return ok, nil
}

func (g *RedisGate) Release(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("gate release: %w", err)
	}
	return nil
}
