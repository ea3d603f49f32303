package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getRedisClient prefers a real server from REDIS_ADDR and falls back to an
// in-process miniredis.
func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func claimKey(t *testing.T) string {
	return fmt.Sprintf("idempotency:alice:%s-%d", t.Name(), time.Now().UnixNano())
}

func TestSetIdempotency_ClaimsOnce(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Hour)
	key := claimKey(t)

	claimed, err := adapter.SetIdempotency(ctx, key)
	require.NoError(t, err)
	assert.True(t, claimed, "first claim should win")

	claimed, err = adapter.SetIdempotency(ctx, key)
	require.NoError(t, err)
	assert.False(t, claimed, "second claim should lose")

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	claimedAt, err := client.Get(ctx, key).Int64()
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), claimedAt, 5)
}

func TestNewRedisAdapter_DefaultTTL(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client, 0)
	key := claimKey(t)

	_, err := adapter.SetIdempotency(ctx, key)
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, DefaultIdempotencyTTL-time.Minute)
}

func TestReleaseIdempotency(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Hour)
	key := claimKey(t)

	claimed, err := adapter.SetIdempotency(ctx, key)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, adapter.ReleaseIdempotency(ctx, key))

	claimed, err = adapter.SetIdempotency(ctx, key)
	require.NoError(t, err)
	assert.True(t, claimed, "released key should be claimable again")

	// releasing a missing key is not an error
	require.NoError(t, adapter.ReleaseIdempotency(ctx, key+"-never-set"))
}

func TestSetIdempotency_ConcurrentRetries(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	adapter := NewRedisAdapter(client, time.Hour)
	key := claimKey(t)

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := adapter.SetIdempotency(ctx, key)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if claimed {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load(), "exactly one retry of a request may run")
}

func TestSetIdempotency_ServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	adapter := NewRedisAdapter(client, time.Hour)
	mr.Close()

	_, err := adapter.SetIdempotency(context.Background(), "idempotency:alice:down")
	assert.Error(t, err)
}
