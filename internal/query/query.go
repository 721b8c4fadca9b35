// Package query is the fetch-and-cache layer between page handlers and the
// domain services. A listing or detail view declares a scope (one per
// endpoint family) and a key built from the current filter values; mutations
// bump the scope so every key under it goes stale at once.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps Redis based caching with per-scope versioning. A nil *Cache is
// valid and degrades to calling the loader directly.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New instantiates the cache helper.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func versionKey(scope string) string {
	return "query:" + scope + ":version"
}

// Version returns the current version for a scope, initialising when missing.
func (c *Cache) Version(ctx context.Context, scope string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey(scope)).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, versionKey(scope), 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, versionKey(scope), ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// Key composes a canonical cache key for a scope from filter values. The
// same values always produce the same key, so clearing filters and applying
// them again lands on the identical entry.
func (c *Cache) Key(ctx context.Context, scope string, parts ...string) (string, error) {
	joined := scope
	if len(parts) > 0 {
		joined = scope + ":" + strings.Join(parts, ":")
	}
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx, scope)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("query:%s:v%d", joined, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader. When the
// scope version moves while the loader is in flight (a mutation bumped it),
// the loaded value is still returned to the caller but not written back, so
// a stale response can never overwrite a fresher invalidation.
func (c *Cache) FetchJSON(ctx context.Context, scope, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("query: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return remarshal(value, dest)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}

	before, err := c.Version(ctx, scope)
	if err != nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	after, err := c.Version(ctx, scope)
	if err == nil && after == before {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return err
		}
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates a scope by incrementing its version.
func (c *Cache) Bump(ctx context.Context, scopes ...string) error {
	if c == nil || c.client == nil {
		return nil
	}
	for _, scope := range scopes {
		if err := c.client.Incr(ctx, versionKey(scope)).Err(); err != nil {
			return err
		}
	}
	return nil
}

func remarshal(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
