package animal

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// setupTestRedis creates a Redis client for testing
func setupTestRedis(t *testing.T) *redis.Client {
	// Skip test if REDIS_URL is not set
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL environment variable not set, skipping Redis integration tests")
	}

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err, "Failed to parse Redis URL")

	client := redis.NewClient(opt)

	_, err = client.Ping(context.Background()).Result()
	require.NoError(t, err, "Failed to connect to Redis")

	return client
}

func TestRedisRepository_RoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisRepository(client)
	ctx := context.Background()

	fish, err := NewFish("Anglerfish", true, true)
	require.NoError(t, err)

	t.Run("should return nil when animal does not exist", func(t *testing.T) {
		result, err := repo.GetByID(ctx, NewAnimalID())
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("should insert and read back the variant", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, fish))

		result, err := repo.GetByID(ctx, fish.ID)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, fish.ID, result.ID)
		assert.Equal(t, KindFish, result.Kind())
		assert.Equal(t, fish.Describe(), result.Describe())
	})

	t.Run("should reject duplicate insert", func(t *testing.T) {
		err := repo.Insert(ctx, fish)
		assert.Equal(t, shared.ErrCodeAlreadyExists, shared.ErrorCode(err))
	})

	t.Run("should persist updates", func(t *testing.T) {
		require.NoError(t, fish.SetName("Deep One"))
		require.NoError(t, repo.Update(ctx, fish))

		result, err := repo.GetByID(ctx, fish.ID)
		require.NoError(t, err)
		assert.Equal(t, "Deep One", result.Name())
	})

	t.Run("should delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, fish.ID))

		result, err := repo.GetByID(ctx, fish.ID)
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}
