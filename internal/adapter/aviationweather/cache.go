package aviationweather

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/metar-compare/internal/domain"
	"github.com/couchcryptid/metar-compare/internal/observability"
)

// CachedSource wraps an ObservationSource with an in-memory LRU cache whose
// entries expire after a fixed TTL.
type CachedSource struct {
	inner   domain.ObservationSource
	cache   *lruCache
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a source.
func NewCachedSource(inner domain.ObservationSource, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedSource {
	return newCachedSource(inner, maxEntries, ttl, metrics, clockwork.NewRealClock())
}

func newCachedSource(inner domain.ObservationSource, maxEntries int, ttl time.Duration, metrics *observability.Metrics, clock clockwork.Clock) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

func (c *CachedSource) FetchObservations(ctx context.Context, stations []string) ([]domain.Observation, error) {
	key := cacheKey(stations)
	if e, ok := c.cache.get(key); ok {
		if c.clock.Since(e.storedAt) < c.ttl {
			c.metrics.FetchCache.WithLabelValues("hit").Inc()
			return slices.Clone(e.observations), nil
		}
		c.cache.delete(key)
	}
	c.metrics.FetchCache.WithLabelValues("miss").Inc()

	observations, err := c.inner.FetchObservations(ctx, stations)
	if err != nil {
		return observations, err
	}
	// Empty results are never cached.
	if len(observations) > 0 {
		c.cache.put(key, cachedObservations{
			observations: slices.Clone(observations),
			storedAt:     c.clock.Now(),
		})
	}
	return observations, nil
}

// cacheKey is order-insensitive so {KMDW,KRDU} and {KRDU,KMDW} share an entry.
func cacheKey(stations []string) string {
	sorted := slices.Clone(stations)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}

type cachedObservations struct {
	observations []domain.Observation
	storedAt     time.Time
}

// lruCache is a simple thread-safe LRU cache of fetched observation sets.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cachedObservations
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cachedObservations, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cachedObservations{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cachedObservations) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.remove(e)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
