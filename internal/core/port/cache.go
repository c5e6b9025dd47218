package port

import (
	"context"
	"time"
)

// CacheRepository stores opaque payloads. Get returns nil, nil on a miss.
// Counter and Increment work on integer keys kept apart from payloads; a missing counter reads as 0.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Counter(ctx context.Context, key string) (int64, error)
	Increment(ctx context.Context, key string) (int64, error)
	Close() error
}
