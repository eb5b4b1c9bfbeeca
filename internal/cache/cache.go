package cache

import "sync"

// Cache is a bounded memoization map with insertion-order (FIFO) eviction.
// Lookups do not refresh recency: when the bound is exceeded the oldest
// inserted key is dropped, whatever its hit count. Updating an existing key
// keeps its original position.
type Cache[V any] struct {
	mu    sync.Mutex
	limit int
	order []string
	items map[string]V
}

func New[V any](limit int) *Cache[V] {
	if limit < 1 {
		limit = 1
	}
	return &Cache[V]{
		limit: limit,
		items: make(map[string]V, limit),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}

	c.items[key] = value
	c.order = append(c.order, key)

	if len(c.order) > c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
