package resolver

import (
	"sync"

	"github.com/elliotchance/orderedmap/v3"
)

// defaultCacheCapacity bounds the resolution cache when no capacity is configured.
const defaultCacheCapacity = 100

// Cache is a bounded key→videoId cache with strict insertion-order (FIFO)
// eviction. Reads never promote an entry and entries never expire by time;
// when an insert would exceed capacity the oldest-inserted entry is evicted.
// Not an LRU, deliberately: resolved videoIds do not go stale, so the simpler
// policy holds.
//
// Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  *orderedmap.OrderedMap[string, string]
}

// NewCache creates a Cache bounded at capacity entries (default 100).
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  orderedmap.NewOrderedMap[string, string](),
	}
}

// Get returns the cached videoId for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Get(key)
}

// Put stores a videoId under key, evicting the oldest entry when full.
// Re-putting an existing key updates the value without changing its age.
func (c *Cache) Put(key, videoID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries.Get(key); !exists && c.entries.Len() >= c.capacity {
		if oldest := c.entries.Front(); oldest != nil {
			c.entries.Delete(oldest.Key)
		}
	}
	c.entries.Set(key, videoID)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Keys returns all cached keys in insertion order.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.entries.Len())
	for key := range c.entries.Keys() {
		keys = append(keys, key)
	}
	return keys
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = orderedmap.NewOrderedMap[string, string]()
}
