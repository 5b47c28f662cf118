package animal

import (
	"context"
)

// Repository is the arena that owns animal lifetime. Cages only ever hold
// references to animals stored here.
type Repository interface {
	// Insert stores a new animal; returns an already-exists error on ID clash
	Insert(ctx context.Context, a *Animal) error

	// Update replaces a stored animal; returns a not-found error when absent
	Update(ctx context.Context, a *Animal) error

	// GetByID retrieves an animal by ID, nil when absent
	GetByID(ctx context.Context, id AnimalID) (*Animal, error)

	// List returns every animal ordered by creation time
	List(ctx context.Context) ([]*Animal, error)

	// Delete removes an animal; returns a not-found error when absent
	Delete(ctx context.Context, id AnimalID) error
}
