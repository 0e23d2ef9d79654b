package service

import (
	"context"
	"sync"
	"time"

	"backoffice/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// categoryInvalidateChannel is published on every category mutation so other
// replicas drop their local copy too.
const categoryInvalidateChannel = "categories:invalidate"

// CategoryCache is an explicit read-through cache for the flat category list:
// a TTL-gated in-process snapshot plus a redis pub/sub invalidation hook.
// A nil *CategoryCache is valid and disables caching entirely.
type CategoryCache struct {
	mu        sync.Mutex
	items     []model.Category
	fetchedAt time.Time
	ttl       time.Duration
	rdb       *redis.Client
}

func NewCategoryCache(rdb *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached list if it is still within TTL.
func (c *CategoryCache) Get() ([]model.Category, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.items, true
}

// Put snapshots a freshly fetched list.
func (c *CategoryCache) Put(items []model.Category) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = items
	c.fetchedAt = time.Now()
	c.mu.Unlock()
}

// Invalidate drops the local snapshot and notifies peer replicas.
// The publish is best effort — a missed notification only costs staleness
// bounded by the TTL.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	if c.rdb != nil {
		if err := c.rdb.Publish(ctx, categoryInvalidateChannel, "1").Err(); err != nil {
			log.Warn().Err(err).Msg("category_cache: invalidation publish failed")
		}
	}
}

// Listen subscribes to the invalidation channel and drops the local snapshot
// whenever any process publishes. Runs until ctx is cancelled.
func (c *CategoryCache) Listen(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	sub := c.rdb.Subscribe(ctx, categoryInvalidateChannel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				c.mu.Lock()
				c.items = nil
				c.mu.Unlock()
			}
		}
	}()
}
