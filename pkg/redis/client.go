package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// RedisClient implements Client for both single-node and cluster modes
type RedisClient struct {
	mode      RedisMode
	rdb       redis.UniversalClient
	keyPrefix string
}

// NewRedisClient connects according to opts and pings the server
func NewRedisClient(opts Options) (*RedisClient, error) {
	if opts.Mode == "" {
		opts.Mode = ModeSingle
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = defaultTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = defaultTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = defaultTimeout
	}

	client := &RedisClient{mode: opts.Mode, keyPrefix: opts.KeyPrefix}

	switch opts.Mode {
	case ModeSingle:
		if opts.Addr == "" {
			return nil, fmt.Errorf("redis address not specified for single-node mode")
		}
		client.rdb = redis.NewClient(&redis.Options{
			Addr:         opts.Addr,
			Password:     opts.Password,
			DB:           opts.DB,
			PoolSize:     opts.PoolSize,
			DialTimeout:  opts.DialTimeout,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		})

	case ModeCluster:
		if len(opts.Nodes) == 0 {
			return nil, fmt.Errorf("redis cluster nodes not specified")
		}
		client.rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        opts.Nodes,
			Password:     opts.Password,
			PoolSize:     opts.PoolSize,
			DialTimeout:  opts.DialTimeout,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
		})

	default:
		return nil, fmt.Errorf("unsupported Redis mode: %s", opts.Mode)
	}

	if err := client.Health(); err != nil {
		client.rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis (%s): %w", opts.Mode, err)
	}
	return client, nil
}

// buildKey constructs the final key with prefix
func (r *RedisClient) buildKey(key string) string {
	return r.keyPrefix + key
}

// Set stores a value with expiration (0 keeps it forever)
func (r *RedisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.rdb.Set(ctx, r.buildKey(key), value, expiration).Err()
}

// Get retrieves a value, returning ErrNotFound for missing keys
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, r.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

// Delete removes one or more keys
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	finalKeys := make([]string, len(keys))
	for i, key := range keys {
		finalKeys[i] = r.buildKey(key)
	}
	return r.rdb.Del(ctx, finalKeys...).Err()
}

// Health pings the server
func (r *RedisClient) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return r.rdb.Ping(ctx).Err()
}

// Close closes the underlying connection pool
func (r *RedisClient) Close() error {
	return r.rdb.Close()
}
