package redis

import (
	"context"
	"errors"
	"time"
)

// RedisMode defines the Redis deployment mode
type RedisMode string

const (
	ModeSingle  RedisMode = "single"  // Single-node Redis
	ModeCluster RedisMode = "cluster" // Redis Cluster
)

// ErrNotFound is returned by Get when the key does not exist
var ErrNotFound = errors.New("redis: key not found")

// Client is the subset of Redis operations the console needs
type Client interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Health() error
	Close() error
}

// Options holds connection settings for either mode
type Options struct {
	Mode         RedisMode
	Addr         string   // single-node host:port
	Nodes        []string // cluster nodes
	Password     string
	DB           int
	KeyPrefix    string
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
