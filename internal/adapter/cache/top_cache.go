package cache

import (
	"fmt"
	"sync"
	"time"

	"ngramkit/internal/domain"
)

// TopCache remembers ranked gram lists. Ranking scans every stored gram, so
// repeated queries between count updates are served from memory. Invalidate
// must be called whenever counts change.
type TopCache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	order    []string
	maxSize  int
	ttl      time.Duration
	countGen uint64
}

type cacheEntry struct {
	grams     []domain.Gram
	timestamp time.Time
	countGen  uint64
}

func NewTopCache(maxSize int, ttl time.Duration) *TopCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &TopCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(k, size int) string {
	return fmt.Sprintf("%d/%d", k, size)
}

func (c *TopCache) Get(k, size int) ([]domain.Gram, bool) {
	key := cacheKey(k, size)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl || entry.countGen != c.countGen {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return nil, false
	}

	c.moveToEnd(key)
	return entry.grams, true
}

func (c *TopCache) Put(k, size int, grams []domain.Gram) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(k, size)
	entry := &cacheEntry{
		grams:     grams,
		timestamp: time.Now(),
		countGen:  c.countGen,
	}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = entry
	c.order = append(c.order, key)
}

func (c *TopCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.countGen++
}

func (c *TopCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TopCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *TopCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *TopCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Ranker produces ranked gram lists.
type Ranker interface {
	Top(k, size int) ([]domain.Gram, error)
}

type CachedRanker struct {
	ranker Ranker
	cache  *TopCache
}

func NewCachedRanker(ranker Ranker, cache *TopCache) *CachedRanker {
	return &CachedRanker{
		ranker: ranker,
		cache:  cache,
	}
}

func (r *CachedRanker) Top(k, size int) ([]domain.Gram, error) {
	if grams, hit := r.cache.Get(k, size); hit {
		return grams, nil
	}

	grams, err := r.ranker.Top(k, size)
	if err != nil {
		return nil, err
	}

	r.cache.Put(k, size, grams)
	return grams, nil
}
