// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed full-page cache (L2) for rendered public
// pages and feeds. A nil *PageCache is valid and caches nothing, so the site
// runs unchanged when Valkey is not configured.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// Key groups. Listing pages embed the trend sidebar, so a trend refresh
// only needs to drop ListingPrefix.
const (
	ListingPrefix = "home:"
	ArticlePrefix = "article:"
	FeedPrefix    = "feed:"
)

// Feed documents served through the cache.
const (
	FeedRSS     = "rss"
	FeedSitemap = "sitemap"
)

// FeedNames lists every feed document.
var FeedNames = []string{FeedRSS, FeedSitemap}

// PageCache manages full-page caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
// A nil client yields a nil cache.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if client == nil {
		return nil
	}
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Enabled reports whether pages are actually cached.
func (pc *PageCache) Enabled() bool {
	return pc != nil
}

// Get retrieves a cached page. Errors are logged and reported as a miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores a rendered page with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, body []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, body, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single page.
func (pc *PageCache) Invalidate(ctx context.Context, key string) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, pageKeyPrefix+key).Err(); err != nil {
		slog.Warn("page cache invalidate error", "key", key, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "key", key)
}

// InvalidatePrefix removes every page whose key starts with prefix.
func (pc *PageCache) InvalidatePrefix(ctx context.Context, prefix string) {
	if pc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "prefix", prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache cleared", "prefix", prefix, "deleted", deleted)
	}
}

// InvalidateAll removes all cached pages.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	pc.InvalidatePrefix(ctx, "")
}

// InvalidatePublished drops the pages a newly published article appears on:
// every listing, the feeds and the article's own page. Other article pages
// stay cached.
func (pc *PageCache) InvalidatePublished(ctx context.Context, slug string) {
	if pc == nil {
		return
	}
	pc.InvalidatePrefix(ctx, ListingPrefix)
	pc.Invalidate(ctx, ArticleKey(slug))
	for _, name := range FeedNames {
		pc.Invalidate(ctx, FeedKey(name))
	}
}

// ListingKey returns the cache key for a listing page. query must be the
// canonical encoding of the filter parameters.
func ListingKey(query string) string {
	return ListingPrefix + query
}

// ArticleKey returns the cache key for an article page.
func ArticleKey(slug string) string {
	return ArticlePrefix + slug
}

// FeedKey returns the cache key for a feed document such as "rss".
func FeedKey(name string) string {
	return FeedPrefix + name
}
