// Package cache provides a Redis-backed cache for rendered public pages.
// Editor preview is never cached; only the public viewer consults it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix = "sb:render:" // Rendered HTML per page: sb:render:{page_id}

	// defaultTTL applies when no TTL is configured.
	defaultTTL = 24 * time.Hour
)

// Invalidator is the slice of the cache the content service needs: dropping
// a page's rendered output after a save.
type Invalidator interface {
	InvalidatePage(ctx context.Context, pageID string) error
}

// RenderCache caches rendered public HTML keyed by page ID.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a RenderCache.
type Option func(*RenderCache)

// WithTTL overrides the default entry lifetime. Zero means entries never
// expire on their own and live until invalidated.
func WithTTL(d time.Duration) Option {
	return func(c *RenderCache) { c.ttl = d }
}

// NewRenderCache creates a cache on top of an existing Redis client.
func NewRenderCache(client *redis.Client, opts ...Option) *RenderCache {
	c := &RenderCache{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RenderCache) pageKey(pageID string) string {
	return pageKeyPrefix + pageID
}

// Get returns the cached HTML for a page, or ok=false on a miss.
func (c *RenderCache) Get(ctx context.Context, pageID string) (html string, ok bool, err error) {
	data, err := c.client.Get(ctx, c.pageKey(pageID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("render cache get: %w", err)
	}
	return data, true, nil
}

// Set stores rendered HTML for a page.
func (c *RenderCache) Set(ctx context.Context, pageID, html string) error {
	if err := c.client.Set(ctx, c.pageKey(pageID), html, c.ttl).Err(); err != nil {
		return fmt.Errorf("render cache set: %w", err)
	}
	return nil
}

// InvalidatePage drops the cached render for a page.
func (c *RenderCache) InvalidatePage(ctx context.Context, pageID string) error {
	if err := c.client.Del(ctx, c.pageKey(pageID)).Err(); err != nil {
		return fmt.Errorf("render cache invalidate: %w", err)
	}
	return nil
}

// InvalidatePages drops cached renders for several pages (publish/unpublish
// touches every page of a site).
func (c *RenderCache) InvalidatePages(ctx context.Context, pageIDs []string) error {
	if len(pageIDs) == 0 {
		return nil
	}
	keys := make([]string, len(pageIDs))
	for i, id := range pageIDs {
		keys[i] = c.pageKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("render cache invalidate: %w", err)
	}
	return nil
}

// NoopInvalidator satisfies Invalidator when no cache is configured.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidatePage(context.Context, string) error { return nil }
