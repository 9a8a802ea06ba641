package completion

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheSize is the maximum number of cached responses.
const DefaultCacheSize = 500

// DefaultCacheTTL is how long a cached response stays valid.
const DefaultCacheTTL = 10 * time.Minute

// Cached wraps a Client with an in-memory TTL cache keyed by the request.
// Identical prompts within the TTL reuse the earlier response instead of
// issuing a new network call. Purely an optimization; the pipeline is
// correct without it.
type Cached struct {
	base    Client
	maxSize int
	ttl     time.Duration

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

type cacheKey struct {
	prompt       string
	systemPrompt string
	maxTokens    int
}

type cacheEntry struct {
	resp    Response
	expires time.Time
}

// NewCached wraps client with a cache of at most maxSize entries, each
// valid for ttl. Non-positive arguments use the defaults.
func NewCached(client Client, maxSize int, ttl time.Duration) *Cached {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		base:    client,
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// Complete implements Client.
func (c *Cached) Complete(ctx context.Context, req Request) (*Response, error) {
	key := cacheKey{prompt: req.Prompt, systemPrompt: req.SystemPrompt, maxTokens: req.MaxTokens}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Now().Before(entry.expires) {
		c.mu.Unlock()
		resp := entry.resp
		return &resp, nil
	}
	c.mu.Unlock()

	resp, err := c.base.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.entries) >= c.maxSize {
		c.evictOne()
	}
	c.entries[key] = cacheEntry{resp: *resp, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return resp, nil
}

// evictOne drops an expired entry if any exist, otherwise an arbitrary one.
// Caller holds the lock.
func (c *Cached) evictOne() {
	now := time.Now()
	for k, v := range c.entries {
		if now.After(v.expires) {
			delete(c.entries, k)
			return
		}
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}

// Len returns the number of cached entries, expired or not.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
