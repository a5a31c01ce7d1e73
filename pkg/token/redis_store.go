package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/benedict-erwin/store-console/pkg/redis"
)

// RedisStore keeps the token under Key in Redis so several consoles share a session
type RedisStore struct {
	client redis.Client
}

// NewRedisStore wraps an initialized client; key prefixing is the client's concern
func NewRedisStore(client redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context) (string, bool, error) {
	val, err := s.client.Get(ctx, Key)
	if errors.Is(err, redis.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read token from redis: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, Key, token, 0); err != nil {
		return fmt.Errorf("failed to write token to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context) error {
	if err := s.client.Delete(ctx, Key); err != nil {
		return fmt.Errorf("failed to remove token from redis: %w", err)
	}
	return nil
}

// Health reports whether the backing Redis is reachable
func (s *RedisStore) Health() error {
	return s.client.Health()
}
