package cage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

const (
	cageKeyPrefix = "zoo:cage:"
	// Sorted set of cage numbers scored by number
	cageIndexKey = "zoo:idx:cages"
)

// RedisRepository implements Repository using Redis Hash. Occupants are
// stored as IDs and resolved through the animal repository on load.
type RedisRepository struct {
	client  *redis.Client
	animals animal.Repository
	policy  AdmissionPolicy
}

var _ Repository = (*RedisRepository)(nil)

// NewRedisRepository creates a new Redis-based cage repository. Loaded cages
// get the given admission policy.
func NewRedisRepository(client *redis.Client, animals animal.Repository, policy AdmissionPolicy) *RedisRepository {
	return &RedisRepository{
		client:  client,
		animals: animals,
		policy:  policy,
	}
}

func cageKey(number int) string {
	return cageKeyPrefix + strconv.Itoa(number)
}

// Insert stores a new cage inside a WATCH transaction
func (r *RedisRepository) Insert(ctx context.Context, c *Cage) error {
	key := cageKey(c.Number())

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists := tx.Exists(ctx, key)
		if exists.Err() != nil {
			return exists.Err()
		}

		if exists.Val() > 0 {
			return shared.ErrAlreadyExists("cage")
		}

		fields, err := r.serializeCage(c)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.ZAdd(ctx, cageIndexKey, redis.Z{
				Score:  float64(c.Number()),
				Member: strconv.Itoa(c.Number()),
			})
			return nil
		})

		return err
	}, key)
}

// FindOneAndUpdate implements IoC pattern for update operations. The read,
// the callback and the write share one WATCH transaction.
func (r *RedisRepository) FindOneAndUpdate(ctx context.Context, number int, callback UpdateFunc) error {
	key := cageKey(number)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}

		if len(data) == 0 {
			return shared.ErrNotFound("cage")
		}

		current, err := r.deserializeCage(ctx, data)
		if err != nil {
			return fmt.Errorf("failed to deserialize cage: %w", err)
		}

		// Execute callback
		updated, err := callback(current)
		if err != nil {
			return err
		}

		if updated == nil {
			return nil // No changes
		}

		fields, err := r.serializeCage(updated)
		if err != nil {
			return fmt.Errorf("failed to serialize cage: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})

		return err
	}, key)
}

// GetByNumber retrieves a cage by number
func (r *RedisRepository) GetByNumber(ctx context.Context, number int) (*Cage, error) {
	data, err := r.client.HGetAll(ctx, cageKey(number)).Result()
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	return r.deserializeCage(ctx, data)
}

// List returns every cage ordered by number
func (r *RedisRepository) List(ctx context.Context) ([]*Cage, error) {
	members, err := r.client.ZRange(ctx, cageIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	cages := make([]*Cage, 0, len(members))
	for _, member := range members {
		number, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("invalid cage index member %q: %w", member, err)
		}

		c, err := r.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if c != nil {
			cages = append(cages, c)
		}
	}

	return cages, nil
}

// Delete removes a cage and its index entry
func (r *RedisRepository) Delete(ctx context.Context, number int) error {
	key := cageKey(number)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists := tx.Exists(ctx, key)
		if exists.Err() != nil {
			return exists.Err()
		}

		if exists.Val() == 0 {
			return shared.ErrNotFound("cage")
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, cageIndexKey, strconv.Itoa(number))
			return nil
		})

		return err
	}, key)
}

// serializeCage converts cage to Redis hash fields
func (r *RedisRepository) serializeCage(c *Cage) (map[string]interface{}, error) {
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data":  string(data),
		"count": c.Count(),
	}, nil
}

// deserializeCage converts Redis hash fields to cage
func (r *RedisRepository) deserializeCage(ctx context.Context, fields map[string]string) (*Cage, error) {
	data, exists := fields["data"]
	if !exists {
		return nil, fmt.Errorf("cage data not found in hash")
	}

	var s Snapshot
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}

	return Restore(s, func(id animal.AnimalID) (*animal.Animal, error) {
		return r.animals.GetByID(ctx, id)
	}, WithPolicy(r.policy))
}
