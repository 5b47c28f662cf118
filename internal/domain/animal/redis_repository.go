package animal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danghamo/zoo/internal/domain/shared"
)

const (
	animalKeyPrefix = "zoo:animal:"
	// Sorted set of animal IDs scored by creation time
	animalIndexKey = "zoo:idx:animals"
)

// RedisRepository implements Repository using Redis Hash
type RedisRepository struct {
	client *redis.Client
}

var _ Repository = (*RedisRepository)(nil)

// NewRedisRepository creates a new Redis-based animal repository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
	}
}

func animalKey(id AnimalID) string {
	return animalKeyPrefix + id.String()
}

// Insert stores a new animal inside a WATCH transaction
func (r *RedisRepository) Insert(ctx context.Context, a *Animal) error {
	key := animalKey(a.ID)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists := tx.Exists(ctx, key)
		if exists.Err() != nil {
			return exists.Err()
		}

		if exists.Val() > 0 {
			return shared.ErrAlreadyExists("animal")
		}

		fields, err := r.serializeAnimal(a)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.ZAdd(ctx, animalIndexKey, redis.Z{
				Score:  float64(a.CreatedAt.Value().UnixNano()),
				Member: a.ID.String(),
			})
			return nil
		})

		return err
	}, key)
}

// Update replaces a stored animal inside a WATCH transaction
func (r *RedisRepository) Update(ctx context.Context, a *Animal) error {
	key := animalKey(a.ID)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists := tx.Exists(ctx, key)
		if exists.Err() != nil {
			return exists.Err()
		}

		if exists.Val() == 0 {
			return shared.ErrNotFound("animal")
		}

		fields, err := r.serializeAnimal(a)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})

		return err
	}, key)
}

// GetByID retrieves an animal by ID
func (r *RedisRepository) GetByID(ctx context.Context, id AnimalID) (*Animal, error) {
	data, err := r.client.HGetAll(ctx, animalKey(id)).Result()
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	a := &Animal{}
	if err := r.deserializeAnimal(data, a); err != nil {
		return nil, err
	}

	return a, nil
}

// List returns every animal ordered by creation time
func (r *RedisRepository) List(ctx context.Context) ([]*Animal, error) {
	ids, err := r.client.ZRange(ctx, animalIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	animals := make([]*Animal, 0, len(ids))
	for _, id := range ids {
		a, err := r.GetByID(ctx, AnimalID(id))
		if err != nil {
			return nil, err
		}
		if a != nil {
			animals = append(animals, a)
		}
	}

	return animals, nil
}

// Delete removes an animal and its index entry
func (r *RedisRepository) Delete(ctx context.Context, id AnimalID) error {
	key := animalKey(id)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists := tx.Exists(ctx, key)
		if exists.Err() != nil {
			return exists.Err()
		}

		if exists.Val() == 0 {
			return shared.ErrNotFound("animal")
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, animalIndexKey, id.String())
			return nil
		})

		return err
	}, key)
}

// serializeAnimal converts animal to Redis hash fields
func (r *RedisRepository) serializeAnimal(a *Animal) (map[string]interface{}, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data":     string(data),
		"kind":     a.Kind().String(),
		"predator": a.IsPredator(),
	}, nil
}

// deserializeAnimal converts Redis hash fields to animal
func (r *RedisRepository) deserializeAnimal(fields map[string]string, a *Animal) error {
	data, exists := fields["data"]
	if !exists {
		return fmt.Errorf("animal data not found in hash")
	}

	return json.Unmarshal([]byte(data), a)
}
