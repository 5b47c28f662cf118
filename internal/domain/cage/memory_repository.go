package cage

import (
	"context"
	"sort"
	"sync"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// MemoryRepository implements Repository in process memory
type MemoryRepository struct {
	mu    sync.RWMutex
	cages map[int]*Cage
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory cage repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		cages: make(map[int]*Cage),
	}
}

// Insert stores a copy of a new cage
func (r *MemoryRepository) Insert(_ context.Context, c *Cage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cages[c.Number()]; exists {
		return shared.ErrAlreadyExists("cage")
	}

	r.cages[c.Number()] = c.clone()
	return nil
}

// FindOneAndUpdate runs callback on a copy of the stored cage under the write
// lock and stores the result
func (r *MemoryRepository) FindOneAndUpdate(_ context.Context, number int, callback UpdateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.cages[number]
	if !exists {
		return shared.ErrNotFound("cage")
	}

	updated, err := callback(current.clone())
	if err != nil {
		return err
	}

	if updated == nil {
		return nil // No changes
	}

	r.cages[number] = updated.clone()
	return nil
}

// GetByNumber retrieves a copy of a cage by number
func (r *MemoryRepository) GetByNumber(_ context.Context, number int) (*Cage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cages[number]
	if !exists {
		return nil, nil
	}
	return c.clone(), nil
}

// List returns copies of every cage ordered by number
func (r *MemoryRepository) List(_ context.Context) ([]*Cage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cages := make([]*Cage, 0, len(r.cages))
	for _, c := range r.cages {
		cages = append(cages, c.clone())
	}
	sort.Slice(cages, func(i, j int) bool {
		return cages[i].Number() < cages[j].Number()
	})
	return cages, nil
}

// Delete removes a cage
func (r *MemoryRepository) Delete(_ context.Context, number int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cages[number]; !exists {
		return shared.ErrNotFound("cage")
	}

	delete(r.cages, number)
	return nil
}
