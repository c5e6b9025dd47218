package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tasknotes/internal/core/port"
)

const scanBatch = 100

type Options struct {
	Addr       string
	Password   string
	DB         int
	DefaultTTL time.Duration
}

type redisRepository struct {
	client     *goredis.Client
	defaultTTL time.Duration
}

func NewRedisRepository(ctx context.Context, opts Options) (port.CacheRepository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisRepository{client: client, defaultTTL: opts.DefaultTTL}, nil
}

func (c *redisRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set value in redis: %w", err)
	}

	return nil
}

func (c *redisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()

	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get value from redis: %w", err)
	}

	return value, nil
}

func (c *redisRepository) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete value from redis: %w", err)
	}

	return nil
}

func (c *redisRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()

	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete value from redis: %w", err)
		}
	}

	return iter.Err()
}

func (c *redisRepository) Counter(ctx context.Context, key string) (int64, error) {
	value, err := c.client.Get(ctx, key).Int64()

	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read counter from redis: %w", err)
	}

	return value, nil
}

func (c *redisRepository) Increment(ctx context.Context, key string) (int64, error) {
	value, err := c.client.Incr(ctx, key).Result()

	if err != nil {
		return 0, fmt.Errorf("failed to increment counter in redis: %w", err)
	}

	return value, nil
}

func (c *redisRepository) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis connection: %w", err)
	}

	return nil
}
