package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: try the cache first, otherwise
// run load (which must populate dest) and store the result under key with
// the given TTL. Cache failures are swallowed; the load result wins.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Bytes()
		if err == nil {
			if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
				return nil
			}
			// Corrupt entry; drop it and fall through to the loader.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			// Redis trouble is not fatal; serve from the source.
			return load()
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if raw, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}
	return nil
}
