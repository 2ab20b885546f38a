package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mowhoob/internal/models"
)

const redisOpTimeout = 5 * time.Second

// RedisSlotStore keeps the creator slot under a single Redis key.
type RedisSlotStore struct {
	rdb *redis.Client
	key string
}

// NewRedisSlotStore connects to Redis via a URL DSN and pings it so a bad
// address fails at startup rather than on the first request.
func NewRedisSlotStore(dsn, key string) (*RedisSlotStore, error) {
	if key == "" {
		key = DefaultSlotKey
	}
	opts, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisSlotStore{rdb: rdb, key: key}, nil
}

// Load reads and decodes the slot key.
func (s *RedisSlotStore) Load() ([]models.Creator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	return decodeSlot(data)
}

// Save overwrites the slot key with the full list. No TTL: the slot is the
// system of record, not a cache.
func (s *RedisSlotStore) Save(creators []models.Creator) error {
	data, err := encodeSlot(creators)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisSlotStore) Close() error {
	return s.rdb.Close()
}
