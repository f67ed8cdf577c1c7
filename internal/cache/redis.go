package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "atelier:cache:"

// Redis is a Cache shared by every instance pointing at the same server.
type Redis struct {
	client redis.Cmdable
	prefix string
}

// NewRedis creates a Redis cache. An empty prefix selects the default.
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Invalidate(ctx context.Context, path string, scope Scope) error {
	if err := r.client.Incr(ctx, r.prefix+"gen:"+generationKey(path, scope)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate %s %s: %w", scope, path, err)
	}
	return nil
}

func (r *Redis) Version(ctx context.Context, path string) (string, error) {
	keys := versionKeys(path)
	for i, k := range keys {
		keys[i] = r.prefix + "gen:" + k
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read cache generations: %w", err)
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			parts[i] = s
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, "."), nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := r.client.Get(ctx, r.prefix+"body:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached page: %w", err)
	}
	return body, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.prefix+"body:"+key, body, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached page: %w", err)
	}
	return nil
}
