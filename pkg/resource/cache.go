package resource

import (
	"image"
	"sync"

	"cogentcore.org/core/base/keylist"
	"github.com/charmbracelet/log"

	"github.com/yaklabco/imgtext/internal/logging"
)

// Policy decides which cached entries to evict.
type Policy interface {
	// Touch records a cache hit on key.
	Touch(key string)

	// Add records a newly cached key and returns the keys to evict.
	Add(key string) []string

	// Remove forgets key.
	Remove(key string)
}

// Unbounded returns a policy that never evicts.
func Unbounded() Policy {
	return unbounded{}
}

type unbounded struct{}

func (unbounded) Touch(string)        {}
func (unbounded) Add(string) []string { return nil }
func (unbounded) Remove(string)       {}

// LRU returns a policy that keeps at most capacity entries, evicting the
// least recently used. A capacity below one is treated as one.
func LRU(capacity int) Policy {
	return &lru{capacity: max(capacity, 1), order: keylist.New[string, struct{}]()}
}

type lru struct {
	capacity int
	order    *keylist.List[string, struct{}]
}

func (l *lru) Touch(key string) {
	if l.order.DeleteByKey(key) {
		l.order.Set(key, struct{}{})
	}
}

func (l *lru) Add(key string) []string {
	l.order.DeleteByKey(key)
	l.order.Set(key, struct{}{})

	var evicted []string
	for l.order.Len() > l.capacity {
		evicted = append(evicted, l.order.Keys[0])
		l.order.DeleteByIndex(0, 1)
	}
	return evicted
}

func (l *lru) Remove(key string) {
	l.order.DeleteByKey(key)
}

// Stats counts cache activity.
type Stats struct {
	Hits      int
	Misses    int
	Failures  int
	Evictions int
	Len       int
}

// Cache maps resource paths to loaded images. Images are loaded on first
// reference; a failed load is cached as missing and not retried until the
// entry is evicted or purged.
type Cache struct {
	mu      sync.Mutex
	loader  Loader
	policy  Policy
	entries map[string]image.Image
	stats   Stats
	logger  *log.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithPolicy sets the eviction policy.
func WithPolicy(p Policy) CacheOption {
	return func(c *Cache) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithLogger sets the logger load failures are reported to.
func WithLogger(logger *log.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache returns an empty cache over loader with an unbounded policy.
func NewCache(loader Loader, opts ...CacheOption) *Cache {
	c := &Cache{
		loader:  loader,
		policy:  Unbounded(),
		entries: make(map[string]image.Image),
		logger:  logging.Component("resource"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the image for path, loading it on first reference. The bool is
// false when the resource is missing or could not be decoded.
func (c *Cache) Get(path string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.entries[path]; ok {
		c.stats.Hits++
		c.policy.Touch(path)
		return img, img != nil
	}

	c.stats.Misses++
	img, err := c.loader.Load(path)
	if err != nil {
		c.stats.Failures++
		c.logger.Warn("image resource unavailable",
			logging.FieldResource, path,
			logging.FieldError, err,
		)
		img = nil
	}

	c.entries[path] = img
	for _, key := range c.policy.Add(path) {
		delete(c.entries, key)
		c.stats.Evictions++
		c.logger.Debug("evicted image resource", logging.FieldEvicted, key)
	}

	return img, img != nil
}

// Forget drops path from the cache so the next Get reloads it.
func (c *Cache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[path]; ok {
		delete(c.entries, path)
		c.policy.Remove(path)
	}
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		c.policy.Remove(key)
	}
	c.entries = make(map[string]image.Image)
}

// Len returns the number of cached entries, missing ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Len = len(c.entries)
	return s
}
