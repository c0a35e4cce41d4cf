// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go provides a Redis-backed cache for serialized API responses.
// Article list endpoints store their JSON payloads here so repeat requests
// skip the database entirely. Cache failures degrade to the database and
// never fail a request.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// articlePrefix namespaces all article list keys, so one scan pattern
	// can invalidate them together after any content write.
	articlePrefix = "articles:"

	// DefaultTTL is how long a cached list response stays fresh.
	DefaultTTL = 5 * time.Minute

	// FeaturedTTL is the longer TTL for the featured list, which changes
	// less often than the main feed.
	FeaturedTTL = 10 * time.Minute
)

// QueryCache stores serialized JSON responses in Redis.
type QueryCache struct {
	client *redis.Client
}

// NewQueryCache creates a query cache backed by the given Redis client.
func NewQueryCache(client *redis.Client) *QueryCache {
	return &QueryCache{client: client}
}

// Get retrieves a cached payload. Returns false on miss or error.
func (qc *QueryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := qc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("query cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("query cache hit", "key", key)
	return val, true
}

// SetTTL stores a payload with an explicit TTL.
func (qc *QueryCache) SetTTL(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := qc.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		slog.Warn("query cache set error", "key", key, "error", err)
	}
}

// InvalidateArticles removes every cached article list by scanning the
// article keyspace. Called after any article, category, or subcategory
// write, since renames change canonical URLs embedded in the payloads.
func (qc *QueryCache) InvalidateArticles(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := qc.client.Scan(ctx, cursor, articlePrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := qc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("article cache cleared", "deleted", deleted)
	}
}

// ArticlesPageKey returns the cache key for one page of the main feed.
func ArticlesPageKey(page, limit int) string {
	return fmt.Sprintf("%spage:%d:limit:%d", articlePrefix, page, limit)
}

// FeaturedKey returns the cache key for the featured article list.
func FeaturedKey() string {
	return articlePrefix + "featured"
}

// CategoryKey returns the cache key for a category page.
func CategoryKey(slug string, page, limit int) string {
	return fmt.Sprintf("%scategory:%s:page:%d:limit:%d", articlePrefix, slug, page, limit)
}

// SubcategoryKey returns the cache key for a subcategory listing.
func SubcategoryKey(categorySlug, slug string, limit int) string {
	return fmt.Sprintf("%ssubcategory:%s:%s:limit:%d", articlePrefix, categorySlug, slug, limit)
}
