package parser

import (
	"container/list"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

// DefaultCacheCapacity bounds the number of parsed templates kept by ParseCached.
// It can be overridden with the MTBRIDGE_TEMPLATE_CACHE environment variable.
const DefaultCacheCapacity = 10000

// templateCache is a thread-safe LRU of parsed templates keyed by raw text.
type templateCache struct {
	capacity  int
	items     map[string]*list.Element
	evictList *list.List
	mu        sync.Mutex

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key   string
	value *MessageTemplate
}

func newTemplateCache(capacity int) *templateCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &templateCache{
		capacity:  capacity,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
	}
}

func (c *templateCache) get(key string) (*MessageTemplate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.evictList.MoveToFront(elem)
	c.hits.Add(1)
	return elem.Value.(*cacheEntry).value, true
}

func (c *templateCache) put(key string, value *MessageTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.evictList.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = value
		return
	}

	c.items[key] = c.evictList.PushFront(&cacheEntry{key: key, value: value})
	if c.evictList.Len() > c.capacity {
		oldest := c.evictList.Back()
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
		c.evictions.Add(1)
	}
}

func (c *templateCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// CacheStats contains template cache statistics.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	Capacity  int
}

var globalCache = newTemplateCache(cacheCapacityFromEnv())

func cacheCapacityFromEnv() int {
	if v := os.Getenv("MTBRIDGE_TEMPLATE_CACHE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultCacheCapacity
}

// ParseCached parses a template, reusing a previously parsed instance when
// available. Parsed templates are never mutated, so sharing them is safe.
func ParseCached(template string) (*MessageTemplate, error) {
	if cached, ok := globalCache.get(template); ok {
		return cached, nil
	}

	parsed, err := Parse(template)
	if err != nil {
		return nil, err
	}

	globalCache.put(template, parsed)
	return parsed, nil
}

// ClearCache clears the template cache (useful for tests).
func ClearCache() {
	globalCache.clear()
}

// GetCacheStats returns template cache statistics.
func GetCacheStats() CacheStats {
	globalCache.mu.Lock()
	size := len(globalCache.items)
	globalCache.mu.Unlock()
	return CacheStats{
		Hits:      globalCache.hits.Load(),
		Misses:    globalCache.misses.Load(),
		Evictions: globalCache.evictions.Load(),
		Size:      size,
		Capacity:  globalCache.capacity,
	}
}
