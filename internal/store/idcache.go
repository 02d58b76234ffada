package store

import "sync"

// IDCache memoizes username -> user id lookups for authentication. It is an
// explicit, injected component rather than a package-level map, and it is
// invalidated on rename and delete so a reused username never resolves to a
// dead account's id.
type IDCache struct {
	mu  sync.RWMutex
	ids map[string]int64
}

func NewIDCache() *IDCache {
	return &IDCache{ids: make(map[string]int64)}
}

func (c *IDCache) Get(username string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[username]
	return id, ok
}

func (c *IDCache) Put(username string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[username] = id
}

func (c *IDCache) Invalidate(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, username)
}
