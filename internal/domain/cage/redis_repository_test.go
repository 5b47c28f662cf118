package cage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/domain/animal"
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

	ctx := context.Background()
	animals := animal.NewRedisRepository(client)
	repo := NewRedisRepository(client, animals, AdmissionPolicy{Symmetric: true})

	lion, err := animal.NewAnimal("Lion", true)
	require.NoError(t, err)
	require.NoError(t, animals.Insert(ctx, lion))
	defer animals.Delete(ctx, lion.ID)

	const number = 987654
	c, err := New(number, 2)
	require.NoError(t, err)
	require.NoError(t, c.AddAnimal(lion))

	t.Run("should insert and resolve occupants", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, c))

		got, err := repo.GetByNumber(ctx, number)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 2, got.MaxCapacity())
		assert.Equal(t, []animal.AnimalID{lion.ID}, got.OccupantIDs())
		assert.True(t, got.Policy().Symmetric)
	})

	t.Run("should reject duplicate insert", func(t *testing.T) {
		err := repo.Insert(ctx, c)
		assert.Equal(t, shared.ErrCodeAlreadyExists, shared.ErrorCode(err))
	})

	t.Run("should update in place", func(t *testing.T) {
		require.NoError(t, repo.FindOneAndUpdate(ctx, number, func(current *Cage) (*Cage, error) {
			current.RemoveAnimal(lion)
			return current, nil
		}))

		got, err := repo.GetByNumber(ctx, number)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Count())
	})

	t.Run("should report missing cage on update", func(t *testing.T) {
		err := repo.FindOneAndUpdate(ctx, number+1, func(current *Cage) (*Cage, error) {
			return current, nil
		})
		assert.Equal(t, shared.ErrCodeNotFound, shared.ErrorCode(err))
	})

	t.Run("should delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, number))

		got, err := repo.GetByNumber(ctx, number)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
