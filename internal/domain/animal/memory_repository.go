package animal

import (
	"context"
	"sync"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// MemoryRepository implements Repository as an in-process arena. It hands out
// the stored pointers themselves, so every holder observes the same animal.
type MemoryRepository struct {
	mu      sync.RWMutex
	animals map[AnimalID]*Animal
	order   []AnimalID
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory animal repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		animals: make(map[AnimalID]*Animal),
	}
}

// Insert stores a new animal
func (r *MemoryRepository) Insert(_ context.Context, a *Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.animals[a.ID]; exists {
		return shared.ErrAlreadyExists("animal")
	}

	r.animals[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

// Update replaces a stored animal
func (r *MemoryRepository) Update(_ context.Context, a *Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.animals[a.ID]; !exists {
		return shared.ErrNotFound("animal")
	}

	r.animals[a.ID] = a
	return nil
}

// GetByID retrieves an animal by ID
func (r *MemoryRepository) GetByID(_ context.Context, id AnimalID) (*Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.animals[id], nil
}

// List returns every animal in insertion order
func (r *MemoryRepository) List(_ context.Context) ([]*Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	animals := make([]*Animal, 0, len(r.order))
	for _, id := range r.order {
		animals = append(animals, r.animals[id])
	}
	return animals, nil
}

// Delete removes an animal
func (r *MemoryRepository) Delete(_ context.Context, id AnimalID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.animals[id]; !exists {
		return shared.ErrNotFound("animal")
	}

	delete(r.animals, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
