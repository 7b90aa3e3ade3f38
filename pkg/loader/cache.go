package loader

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes loader output per key. Concurrent misses for the same key
// share one fill call. Failed fills are not cached.
type Cache struct {
	mu    sync.RWMutex
	items map[string][]byte
	group singleflight.Group
}

func NewCache() *Cache {
	return &Cache{items: make(map[string][]byte)}
}

func (c *Cache) lookup(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

// Get returns the cached value for key or calls fill to produce it.
func (c *Cache) Get(key string, fill func() ([]byte, error)) ([]byte, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := fill()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[key] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Forget drops key, so the next Get refills it.
func (c *Cache) Forget(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	c.group.Forget(key)
}
