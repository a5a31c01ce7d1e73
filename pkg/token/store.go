// Package token holds the bearer session token: where it is persisted and how
// its claims are read without verifying the signature.
package token

import (
	"context"
	"fmt"
	"sync"

	"github.com/benedict-erwin/store-console/config"
	"github.com/benedict-erwin/store-console/pkg/redis"
)

// Key is the fixed storage key of the session token
const Key = "token"

// Store persists a single bearer token
type Store interface {
	// Get returns ok=false when no token has been stored
	Get(ctx context.Context) (token string, ok bool, err error)
	// Set overwrites any prior token without validating it
	Set(ctx context.Context, token string) error
	// Remove deletes the token; removing an absent token is not an error
	Remove(ctx context.Context) error
}

// MemoryStore keeps the token in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemoryStore returns an empty store, or one seeded with token when non-empty
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token, set: token != ""}
}

func (s *MemoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.set, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token, s.set = token, true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context) error {
	s.mu.Lock()
	s.token, s.set = "", false
	s.mu.Unlock()
	return nil
}

// Open builds the store selected by token.driver
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Token.Driver {
	case "", "file":
		return NewFileStore(cfg.TokenFile()), nil
	case "memory":
		return NewMemoryStore(""), nil
	case "redis":
		client, err := redis.Init(redis.OptionsFromConfig(cfg.Redis, cfg.Token.KeyPrefix))
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported token driver: %s", cfg.Token.Driver)
	}
}
