// Package idempotency provides IdempotencyStore implementations for the
// HTTP surface: Redis-backed for multi-instance deployments and an
// in-process store for single binaries.
package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:"

// RedisStore implements usecase.IdempotencyStore using Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// CheckAndSet atomically checks if key exists, sets if not.
func (s *RedisStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := keyPrefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return true, existing, nil
	}
	if err != redis.Nil {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	// Set placeholder to "lock" the key
	set, err := s.client.SetNX(ctx, fullKey, processingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !set {
		// Another request got there first
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && err != redis.Nil {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update updates an existing idempotency key with the final response.
func (s *RedisStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+key, response, ttl).Err()
}
