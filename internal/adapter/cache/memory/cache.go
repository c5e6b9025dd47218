package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tasknotes/internal/core/port"
)

const cleanupInterval = 10 * time.Minute

type memoryRepository struct {
	store *gocache.Cache
}

func NewMemoryRepository(defaultTTL time.Duration) port.CacheRepository {
	return &memoryRepository{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *memoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}

	c.store.Set(key, value, ttl)

	return nil
}

func (c *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := c.store.Get(key)

	if !found {
		return nil, nil
	}

	payload, ok := value.([]byte)

	if !ok {
		return nil, fmt.Errorf("cache key %q does not hold a payload", key)
	}

	return payload, nil
}

func (c *memoryRepository) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)

	return nil
}

func (c *memoryRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}

	return nil
}

func (c *memoryRepository) Counter(ctx context.Context, key string) (int64, error) {
	value, found := c.store.Get(key)

	if !found {
		return 0, nil
	}

	counter, ok := value.(int64)

	if !ok {
		return 0, fmt.Errorf("cache key %q does not hold a counter", key)
	}

	return counter, nil
}

// Increment seeds a missing counter with no expiry.
func (c *memoryRepository) Increment(ctx context.Context, key string) (int64, error) {
	_ = c.store.Add(key, int64(0), gocache.NoExpiration)

	return c.store.IncrementInt64(key, 1)
}

func (c *memoryRepository) Close() error {
	c.store.Flush()

	return nil
}
