package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"alumnihub/internal/middleware"
	"alumnihub/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements read-through caching: a hit is decoded into dst, a miss
// runs fetch (which must populate dst) and stores the result for ttl.
// Without a Redis client it simply calls fetch.
func Aside(ctx context.Context, key string, dst any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	ctx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "aside")
	defer span.End()

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(raw, dst); jsonErr == nil {
			return nil
		}
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if err := fetch(); err != nil {
		observability.RecordErrorInContext(ctx, err)
		return err
	}

	payload, err := json.Marshal(dst)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// Blacklist marks a token id as revoked until ttl elapses.
func Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil {
		return errors.New("redis client is not configured")
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, BlacklistKey(jti), "1", ttl).Err()
}

// IsBlacklisted reports whether the token id has been revoked.
func IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if client == nil || jti == "" {
		return false, nil
	}
	n, err := client.Exists(ctx, BlacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
