package catalog

import (
	"sync"
	"time"
)

type cacheEntry struct {
	payload []byte
	expiry  time.Time
}

// ttlCache is a process-wide response cache keyed by request signature.
// Expiry is checked lazily at read time; there is no background sweep.
// Writes are whole-value replaces, so concurrent misses for the same
// signature resolve last-write-wins.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newTTLCache(ttl time.Duration, now func() time.Time) *ttlCache {
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// get returns the cached payload for key, or ok=false if the entry is
// absent or expired. Expired entries are left in place to be
// overwritten by the next set.
func (c *ttlCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiry) {
		return nil, false
	}
	return e.payload, true
}

func (c *ttlCache) set(key string, payload []byte) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{payload: payload, expiry: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
