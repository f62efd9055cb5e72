package relay

import (
	"container/list"
	"sync"
)

// ReplyCache suppresses duplicate processing of identical (sender, body)
// pairs. It is bounded: once full, the oldest-inserted entry is evicted.
// Lookups do not refresh an entry's position, so eviction follows insertion
// order rather than LRU.
type ReplyCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion
}

type cacheEntry struct {
	key   string
	reply string
}

// NewReplyCache creates a cache holding at most capacity entries.
func NewReplyCache(capacity int) *ReplyCache {
	if capacity <= 0 {
		capacity = 100
	}
	return &ReplyCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Key builds the dedup key for a sender/body pair.
func Key(senderID, body string) string {
	return senderID + "\x00" + body
}

// Get returns the cached reply for a key, if present.
func (c *ReplyCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return "", false
	}
	return el.Value.(*cacheEntry).reply, true
}

// Put stores a reply and evicts the oldest entry when over capacity.
func (c *ReplyCache) Put(key, reply string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).reply = reply
		return
	}

	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, reply: reply})
	if c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len reports the number of cached entries.
func (c *ReplyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
