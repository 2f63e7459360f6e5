package memory

import (
	"sync"
	"time"

	"github.com/uakbr/github-blog-crm/internal/core/ports/driven"
)

// Ensure ResponseCache implements the interface.
var _ driven.ResponseCache = (*ResponseCache)(nil)

// cacheEntry is one stored response body.
type cacheEntry struct {
	value    []byte
	storedAt time.Time
}

// ResponseCache is a time-bounded in-memory implementation of driven.ResponseCache.
// Entries are not swept; a read past expiry deletes the entry.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	timeout time.Duration
	now     func() time.Time
}

// CacheOption configures a ResponseCache.
type CacheOption func(*ResponseCache)

// WithClock replaces the time source. Tests use it to move time forward.
func WithClock(now func() time.Time) CacheOption {
	return func(c *ResponseCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewResponseCache creates a cache whose entries expire after timeout.
func NewResponseCache(timeout time.Duration, opts ...CacheOption) *ResponseCache {
	c := &ResponseCache{
		entries: make(map[string]cacheEntry),
		timeout: timeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the body stored under key if it has not expired.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) > c.timeout {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores body under key.
func (c *ResponseCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(body))
	copy(stored, body)
	c.entries[key] = cacheEntry{value: stored, storedAt: c.now()}
}

// Clear removes every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of stored entries.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Timeout returns the configured expiry.
func (c *ResponseCache) Timeout() time.Duration {
	return c.timeout
}
