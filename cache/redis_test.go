package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudservices/kbot/types"
)

// setupTestRedis creates a miniredis-backed cache and its cleanup func.
func setupTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewRedis(client, ttl), mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestRedisMissBeforeSet(t *testing.T) {
	c, _, cleanup := setupTestRedis(t, time.Minute)
	defer cleanup()

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestRedisSetGet(t *testing.T) {
	c, _, cleanup := setupTestRedis(t, time.Minute)
	defer cleanup()

	docs := []types.Document{
		{Key: "doc1", Content: "Our refund policy allows 30 days"},
		{Key: "doc2", Content: "Shipping info only"},
	}
	c.Set(context.Background(), docs)

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, docs, got)
}

func TestRedisTTLExpiry(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t, time.Minute)
	defer cleanup()

	c.Set(context.Background(), []types.Document{{Key: "doc1"}})
	mr.FastForward(2 * time.Minute)

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestRedisInvalidate(t *testing.T) {
	c, _, cleanup := setupTestRedis(t, time.Minute)
	defer cleanup()

	c.Set(context.Background(), []types.Document{{Key: "doc1"}})
	c.Invalidate(context.Background())

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}

func TestRedisUnavailableIsAMiss(t *testing.T) {
	c, _, cleanup := setupTestRedis(t, time.Minute)
	cleanup()

	_, ok := c.Get(context.Background())
	assert.False(t, ok)
}
