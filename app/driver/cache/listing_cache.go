package cache

import (
	"fmt"
	"sync"
	"time"

	"blog-service/app/domain"
	"blog-service/app/port"
)

// cacheEntry holds a cached listing page and its deadline.
type cacheEntry struct {
	list      *domain.ArticleList
	expiresAt time.Time
}

// ListingCache is a thread-safe in-memory cache for article listing pages,
// keyed by the exact query parameters, with a fixed TTL. Entries are never
// served past their deadline. Implements port.ListingCache.
type ListingCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	done    chan struct{}
}

// NewListingCache creates a listing cache with the specified TTL. A zero
// TTL disables caching entirely.
func NewListingCache(ttl time.Duration) *ListingCache {
	c := &ListingCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if ttl > 0 {
		go c.cleanupLoop()
	}
	return c
}

// Get retrieves a cached page for the exact query, if still fresh.
func (c *ListingCache) Get(query port.ListQuery) (*domain.ArticleList, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[cacheKey(query)]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.list, true
}

// Set stores a listing page under the exact query parameters.
func (c *ListingCache) Set(query port.ListQuery, list *domain.ArticleList) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(query)] = &cacheEntry{
		list:      list,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops all cached pages. Called after any article or comment
// mutation so listings reflect the change immediately.
func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
}

// cacheKey builds a key from the exact query parameters, distinguishing
// absent from zero values.
func cacheKey(query port.ListQuery) string {
	limit, offset := "all", "0"
	if query.Limit != nil {
		limit = fmt.Sprintf("%d", *query.Limit)
	}
	if query.Offset != nil {
		offset = fmt.Sprintf("%d", *query.Offset)
	}
	return limit + ":" + offset
}

// cleanup removes expired entries.
func (c *ListingCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries until Stop.
func (c *ListingCache) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (c *ListingCache) Stop() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}
