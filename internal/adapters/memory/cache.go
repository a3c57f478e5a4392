package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/ports"
)

// DefaultMaxEntries bounds the cache when no size is given.
const DefaultMaxEntries = 1024

// Cache implements ports.ResultCache in process memory.
// When full, the oldest entry is evicted first.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]domain.Result
	order      []string
	maxEntries int
}

// New creates a cache holding at most maxEntries results.
// A non-positive maxEntries uses DefaultMaxEntries.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		entries:    make(map[string]domain.Result),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached result.
func (c *Cache) Get(ctx context.Context, req domain.Request) (domain.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.entries[ports.CacheKey(req)]
	if !ok {
		return domain.Result{}, domain.ErrCacheMiss
	}
	res.Runs = slices.Clone(res.Runs)
	return res, nil
}

// Set stores a copy of res.
func (c *Cache) Set(ctx context.Context, req domain.Request, res domain.Result) error {
	key := ports.CacheKey(req)
	res.Runs = slices.Clone(res.Runs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.order) >= c.maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = res
	return nil
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
