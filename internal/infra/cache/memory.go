package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    string
	expiryAt time.Time
}

// MemoryStore provides thread-safe in-process caching with per-entry TTLs.
type MemoryStore struct {
	entries map[string]entry
	mutex   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
	}
}

// Get retrieves a value if present and not expired.
func (c *MemoryStore) Get(key string) (string, bool, error) {
	c.mutex.RLock()
	e, found := c.entries[key]
	c.mutex.RUnlock()

	if found && time.Now().Before(e.expiryAt) {
		return e.value, true, nil
	}

	return "", false, nil
}

// Set stores a value with an expiration time.
func (c *MemoryStore) Set(key, value string, ttl time.Duration) error {
	c.mutex.Lock()
	c.entries[key] = entry{
		value:    value,
		expiryAt: time.Now().Add(ttl),
	}
	c.mutex.Unlock()
	return nil
}

// Delete removes a key.
func (c *MemoryStore) Delete(key string) error {
	c.mutex.Lock()
	delete(c.entries, key)
	c.mutex.Unlock()
	return nil
}

// Purge removes expired entries. Run periodically from a background task.
func (c *MemoryStore) Purge() {
	c.mutex.Lock()
	for key, e := range c.entries {
		if time.Now().After(e.expiryAt) {
			delete(c.entries, key)
		}
	}
	c.mutex.Unlock()
}
