package redisx

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/pkg/logger"
)

// testRedisURL returns REDIS_URL or skips the test
func testRedisURL(t *testing.T) string {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL environment variable not set, skipping Redis integration tests")
	}
	return redisURL
}

func cleanupPrivateDB(t *testing.T, redisURL string) {
	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	opts.DB = 0

	rdb := redis.NewClient(opts)
	defer rdb.Close()
	rdb.Del(context.Background(), "private_db", "private_db:counter")
}

func TestPrivateUrlWithHostname_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		hostname string
	}{
		{"empty URL", "", "test-host"},
		{"empty hostname", "redis://localhost:6379/0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := privateUrlWithHostname(tt.url, tt.hostname)
			assert.Error(t, err)
		})
	}
}

func TestPrivateUrlWithHostname_ConnectionError(t *testing.T) {
	_, err := privateUrlWithHostname("redis://127.0.0.1:1/0", "test-host")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to")
}

func TestPrivateUrlWithHostname_Consistency(t *testing.T) {
	redisURL := testRedisURL(t)
	cleanupPrivateDB(t, redisURL)
	defer cleanupPrivateDB(t, redisURL)

	first, err := privateUrlWithHostname(redisURL, "keeper-1")
	require.NoError(t, err)

	again, err := privateUrlWithHostname(redisURL, "keeper-1")
	require.NoError(t, err)
	assert.Equal(t, first, again, "same hostname must map to the same DB")

	other, err := privateUrlWithHostname(redisURL, "keeper-2")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("empty URL", func(t *testing.T) {
		_, err := NewClient(ctx, "", logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewClient(ctx, "not-a-url", logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewClient(ctx, "redis://127.0.0.1:1/0", logger.NewNop(), WithPingTimeout(200*time.Millisecond))
		assert.Error(t, err)
	})

	t.Run("connects", func(t *testing.T) {
		redisURL := testRedisURL(t)

		client, err := NewClient(ctx, redisURL, logger.NewNop())
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, client.Ping(ctx).Err())
	})
}
