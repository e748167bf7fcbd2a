package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "test"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "user:location:42", []byte(`{"latitude":1.5}`), time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, "user:location:42")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"latitude":1.5}`), data)
}

func TestCache_Get_MissIsNotAnError(t *testing.T) {
	cache, _ := setupTestCache(t)

	data, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Get_StoreErrorIsAnError(t *testing.T) {
	cache, mr := setupTestCache(t)
	mr.Close()

	data, err := cache.Get(context.Background(), "whatever")
	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "short-lived", []byte("v"), 5*time.Minute)
	require.NoError(t, err)

	mr.FastForward(5*time.Minute + time.Second)

	data, err := cache.Get(ctx, "short-lived")
	require.NoError(t, err)
	assert.Nil(t, data, "expired entry should read as a miss")
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting an absent key is fine
	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestCache_Exists(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	ok, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	ok, err = cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_KeyPrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	appA := NewCache(client, zap.NewNop(), "app-a")
	appB := NewCache(client, zap.NewNop(), "app-b")
	ctx := context.Background()

	require.NoError(t, appA.Set(ctx, "shared-key", []byte("a"), time.Minute))

	data, err := appB.Get(ctx, "shared-key")
	require.NoError(t, err)
	assert.Nil(t, data, "prefixes should namespace keys per application")
}
