package cage

import (
	"context"
)

// UpdateFunc receives the current cage and returns the cage to store.
// Returning nil stores nothing; returning an error aborts the update.
type UpdateFunc func(current *Cage) (*Cage, error)

// Repository defines the interface for cage persistence operations.
// Cages handed out by the repository are private copies; changes are stored
// through FindOneAndUpdate only.
type Repository interface {
	// Insert stores a new cage; returns an already-exists error on number clash
	Insert(ctx context.Context, c *Cage) error

	// FindOneAndUpdate runs callback on the stored cage and saves its result
	// atomically; returns a not-found error when absent
	FindOneAndUpdate(ctx context.Context, number int, callback UpdateFunc) error

	// GetByNumber retrieves a cage by number, nil when absent
	GetByNumber(ctx context.Context, number int) (*Cage, error)

	// List returns every cage ordered by number
	List(ctx context.Context) ([]*Cage, error)

	// Delete removes a cage; returns a not-found error when absent
	Delete(ctx context.Context, number int) error
}
