package redis

import (
	"fmt"
	"sync"

	"github.com/benedict-erwin/store-console/config"
	"github.com/benedict-erwin/store-console/pkg/logger"
)

var (
	mainClient Client
	mu         sync.RWMutex
)

// OptionsFromConfig maps the application redis section to client options
func OptionsFromConfig(cfg config.RedisConfig, keyPrefix string) Options {
	mode := RedisMode(cfg.Mode)
	if mode == "" {
		mode = ModeSingle
	}
	opts := Options{
		Mode:      mode,
		Addr:      fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:  cfg.Password,
		DB:        cfg.DB,
		KeyPrefix: keyPrefix,
		PoolSize:  10,
	}
	if mode == ModeCluster {
		opts.Nodes = cfg.Cluster.Nodes
		opts.Password = cfg.Cluster.Password
	}
	return opts
}

// Init connects the shared client. Safe to call more than once.
func Init(opts Options) (Client, error) {
	mu.Lock()
	defer mu.Unlock()
	if mainClient != nil {
		return mainClient, nil
	}

	client, err := NewRedisClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	mainClient = client

	logger.WithScope("redisInit").Info().
		Str("mode", string(opts.Mode)).
		Str("addr", opts.Addr).
		Str("prefix", opts.KeyPrefix).
		Msg("Redis client initialized")
	return mainClient, nil
}

// GetClient returns the shared client, nil before Init
func GetClient() Client {
	mu.RLock()
	defer mu.RUnlock()
	return mainClient
}

// Close closes the shared client if one was opened
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if mainClient == nil {
		return nil
	}
	err := mainClient.Close()
	mainClient = nil
	return err
}
