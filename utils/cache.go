// utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned when the key is absent or Redis is unavailable.
// Callers fall back to a direct Firestore read in both cases.
var ErrCacheMiss = errors.New("cache miss")

// CacheGetJSON loads the value stored under key into dest
func CacheGetJSON(ctx context.Context, client *redis.Client, key string, dest interface{}) error {
	if client == nil {
		return ErrCacheMiss
	}

	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			// Redis being down degrades to a miss, not a request failure
			return ErrCacheMiss
		}
		return ErrCacheMiss
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return ErrCacheMiss
	}

	return nil
}

// CacheSetJSON stores value under key with the given TTL. Failures are
// ignored; the cache is best-effort.
func CacheSetJSON(ctx context.Context, client *redis.Client, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	client.Set(ctx, key, raw, ttl)
}

// CacheInvalidate deletes keys matching the given prefix
func CacheInvalidate(ctx context.Context, client *redis.Client, prefix string) {
	if client == nil {
		return
	}

	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
