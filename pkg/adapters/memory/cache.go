package memory

import (
	"context"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]*domain.RunResult
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*domain.RunResult),
	}
}

// Put stores a copy of the result.
func (c *Cache) Put(ctx context.Context, key string, result *domain.RunResult) error {
	copied := clone(result)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Get returns a copy of the cached result, so callers can't mutate the entry by pointer.
func (c *Cache) Get(ctx context.Context, key string) (*domain.RunResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return clone(result), nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func clone(r *domain.RunResult) *domain.RunResult {
	copied := *r
	copied.Tape = append([]domain.Symbol(nil), r.Tape...)
	return &copied
}
