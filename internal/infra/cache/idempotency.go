package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore maps client idempotency keys to the order they created.
type IdempotencyStore struct {
	client      redis.Cmdable
	serviceName string
	ttl         time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func NewIdempotencyStore(client redis.Cmdable, serviceName string, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, serviceName: serviceName, ttl: ttl}
}

func (s *IdempotencyStore) key(k string) string {
	return fmt.Sprintf("%s:create-order:%s", s.serviceName, k)
}

// Get returns "" when the key has not been seen or has expired.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (string, error) {
	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Set keeps the first order recorded for a key.
func (s *IdempotencyStore) Set(ctx context.Context, key string, orderID string) error {
	return s.client.SetNX(ctx, s.key(key), orderID, s.ttl).Err()
}
