package token

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/benedict-erwin/store-console/config"
	"github.com/benedict-erwin/store-console/pkg/redis"
	"github.com/stretchr/testify/require"
)

func assertRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "first"))
	require.NoError(t, s.Set(ctx, "x.y.z"))
	got, ok, err := s.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x.y.z", got)

	require.NoError(t, s.Remove(ctx))
	_, ok, err = s.Get(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	// idempotent
	require.NoError(t, s.Remove(ctx))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	assertRoundTrip(t, NewMemoryStore(""))
}

func TestMemoryStoreSeeded(t *testing.T) {
	got, ok, err := NewMemoryStore("seed").Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "seed", got)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	assertRoundTrip(t, NewFileStore(path))
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)
	require.NoError(t, s.Set(context.Background(), "abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreConcurrentAccess(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "a.b.c")
		}()
		go func() {
			defer wg.Done()
			if tok, ok, err := s.Get(ctx); err == nil && ok && tok != "a.b.c" {
				t.Errorf("partial token read: %q", tok)
			}
		}()
	}
	wg.Wait()
}

func newTestRedis(t *testing.T) redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewRedisClient(redis.Options{Addr: mr.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	assertRoundTrip(t, NewRedisStore(newTestRedis(t)))
}

func TestRedisStoreUsesPrefixedKey(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewRedisClient(redis.Options{Addr: mr.Addr(), KeyPrefix: "console:"})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, NewRedisStore(client).Set(context.Background(), "tok"))
	val, err := mr.Get("console:" + Key)
	require.NoError(t, err)
	require.Equal(t, "tok", val)
}

func TestOpenSelectsDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Home = t.TempDir()

	cfg.Token.Driver = "file"
	s, err := Open(cfg)
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, s)
	require.Equal(t, filepath.Join(cfg.App.Home, "token"), s.(*FileStore).Path())

	cfg.Token.Driver = "memory"
	s, err = Open(cfg)
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	cfg.Token.Driver = "etcd"
	_, err = Open(cfg)
	require.Error(t, err)
}
