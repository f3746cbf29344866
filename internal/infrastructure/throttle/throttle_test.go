package throttle

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	l := NewMemoryLimiter(3, 9*time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "admin:1")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, _ := l.Allow(ctx, "admin:1")
	assert.False(t, ok)

	// other keys have their own bucket
	ok, _ = l.Allow(ctx, "admin:2")
	assert.True(t, ok)

	// one token refills every window/limit
	now = now.Add(4 * time.Minute)
	ok, _ = l.Allow(ctx, "admin:1")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "admin:1")
	assert.False(t, ok)
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client, err := NewRedisClient(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLimiter(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()

	key := "test:" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), keyPrefix+key) })

	l := NewRedisLimiter(client, 2, time.Minute)
	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisLimiter_RearmsKeyWithoutExpiry(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()

	key := "test:" + uuid.NewString()
	t.Cleanup(func() { client.Del(context.Background(), keyPrefix+key) })

	// A counter left behind without a TTL.
	require.NoError(t, client.Set(ctx, keyPrefix+key, 1, 0).Err())

	l := NewRedisLimiter(client, 5, time.Minute)
	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
