package render

import (
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a cached image stays valid.
	DefaultTTL = 5 * time.Minute
	// DefaultMaxEntries bounds the cache size; images are base64/SVG
	// payloads, large relative to their keys.
	DefaultMaxEntries = 50
)

type entry struct {
	image     string
	timestamp time.Time
}

// Cache is a content-addressed image cache with TTL expiry (checked lazily
// on lookup) and an oldest-by-timestamp sweep after each insert. Repeated
// hits do not refresh an entry's timestamp — this is LRU by insertion
// time, not access time. One mutex guards the map; the request rate does
// not justify anything finer.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewCache returns a cache with the default TTL and capacity.
func NewCache() *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
}

// Get returns the cached image for key if it exists and has not expired.
// Expired entries are deleted on the way out.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.timestamp) >= c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return e.image, true
}

// Put inserts an image under key, then sweeps the oldest entries until the
// cache is back at capacity.
func (c *Cache) Put(key, image string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{image: image, timestamp: c.now()}

	for len(c.entries) > c.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.timestamp.Before(oldest) {
				oldestKey = k
				oldest = e.timestamp
			}
		}
		delete(c.entries, oldestKey)
	}
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
