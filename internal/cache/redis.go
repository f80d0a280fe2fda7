package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"library-admin/internal/config"
	"library-admin/internal/metrics"
)

// ListKeyFmt is the key holding one backend collection's JSON list
const ListKeyFmt = "library:list:%s"

var (
	client *redis.Client
	ttl    = 30 * time.Second
)

// Init initializes the Redis connection. On failure the package stays
// disabled and every lookup misses.
func Init(cfg *config.Config) error {
	if cfg.Redis.TTLSeconds > 0 {
		ttl = time.Duration(cfg.Redis.TTLSeconds) * time.Second
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Enabled reports whether a Redis connection is available.
func Enabled() bool {
	return client != nil
}

// Ping checks the Redis connection
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis cache disabled")
	}
	return client.Ping(ctx).Err()
}

// Close releases the connection
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

func listKey(resource string) string {
	return fmt.Sprintf(ListKeyFmt, resource)
}

// GetList returns the cached JSON list for a resource if available
func GetList(ctx context.Context, resource string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, listKey(resource)).Bytes()
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(resource, "miss").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(resource, "hit").Inc()
	return data, true
}

// SetList caches a resource's JSON list for the configured TTL
func SetList(ctx context.Context, resource string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, listKey(resource), data, ttl)
}

// InvalidateLists removes the cached lists of the given resources
func InvalidateLists(ctx context.Context, resources ...string) {
	if client == nil || len(resources) == 0 {
		return
	}
	keys := make([]string, 0, len(resources))
	for _, r := range resources {
		keys = append(keys, listKey(r))
	}
	client.Del(ctx, keys...)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// FlushLists drops every cached collection so lists written by an earlier
// process are read again from the backend.
func FlushLists(ctx context.Context) {
	InvalidatePattern(ctx, fmt.Sprintf(ListKeyFmt, "*"))
}
