package cage

import (
	"fmt"
	"io"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// AdmissionPolicy tunes the mixing rule applied by AddAnimal.
//
// The default rule only blocks a predator from entering a cage that already
// holds a non-predator; a non-predator may still join a cage of predators.
// Symmetric additionally blocks that second case.
type AdmissionPolicy struct {
	Symmetric bool `json:"symmetric" mapstructure:"symmetric_mixing"`
}

// Option configures a cage at construction
type Option func(*Cage)

// WithPolicy sets the admission policy of the cage
func WithPolicy(policy AdmissionPolicy) Option {
	return func(c *Cage) {
		c.policy = policy
	}
}

// Cage holds animals under a capacity limit and the mixing rule.
// Occupants are references into the animal arena; the cage never owns them.
type Cage struct {
	number      int
	maxCapacity int
	occupants   []*animal.Animal
	policy      AdmissionPolicy
	UpdatedAt   shared.Timestamp
}

// New creates an empty cage
func New(number, maxCapacity int, opts ...Option) (*Cage, error) {
	if maxCapacity < 1 {
		return nil, shared.NewDomainErrorf(shared.ErrCodeInvalidCapacity, "Cage capacity must be positive, got %d", maxCapacity)
	}

	c := &Cage{
		number:      number,
		maxCapacity: maxCapacity,
		occupants:   make([]*animal.Animal, 0, maxCapacity),
		UpdatedAt:   shared.NewTimestamp(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Number returns the cage identifier
func (c *Cage) Number() int {
	return c.number
}

// SetNumber changes the cage identifier
func (c *Cage) SetNumber(number int) {
	c.number = number
}

// MaxCapacity returns the maximum number of occupants
func (c *Cage) MaxCapacity() int {
	return c.maxCapacity
}

// SetMaxCapacity changes the capacity. Current occupants are not re-checked;
// a cage left over capacity simply rejects the next admission.
func (c *Cage) SetMaxCapacity(maxCapacity int) {
	c.maxCapacity = maxCapacity
	c.UpdatedAt = shared.NewTimestamp()
}

// Policy returns the admission policy
func (c *Cage) Policy() AdmissionPolicy {
	return c.policy
}

// SetPolicy changes the admission policy for future admissions
func (c *Cage) SetPolicy(policy AdmissionPolicy) {
	c.policy = policy
}

// Count returns the number of current occupants
func (c *Cage) Count() int {
	return len(c.occupants)
}

// IsFull checks if the cage has reached its capacity
func (c *Cage) IsFull() bool {
	return len(c.occupants) >= c.maxCapacity
}

// CanAdmit runs the admission checks without mutating the cage
func (c *Cage) CanAdmit(a *animal.Animal) error {
	if a == nil {
		return shared.ErrInvalidInput("Cannot admit a nil animal")
	}

	if c.IsFull() {
		return shared.NewKindError(shared.KindCapacity)
	}

	hasNonPredator, hasPredator := c.composition()

	if hasNonPredator && a.IsPredator() {
		return shared.NewKindError(shared.KindPredatorConflict)
	}

	if c.policy.Symmetric && hasPredator && !a.IsPredator() {
		return shared.NewKindError(shared.KindPredatorConflict)
	}

	return nil
}

// AddAnimal admits an animal at the end of the occupant list. On failure the
// cage is left untouched.
func (c *Cage) AddAnimal(a *animal.Animal) error {
	if err := c.CanAdmit(a); err != nil {
		return err
	}

	c.occupants = append(c.occupants, a)
	c.UpdatedAt = shared.NewTimestamp()

	return nil
}

// RemoveAnimal removes every occurrence of the animal, matched by ID.
// Removing an animal that is not in the cage is a no-op.
func (c *Cage) RemoveAnimal(a *animal.Animal) {
	if a == nil {
		return
	}
	c.RemoveByID(a.ID)
}

// RemoveByID removes every occupant with the given ID and reports how many
// were removed
func (c *Cage) RemoveByID(id animal.AnimalID) int {
	kept := c.occupants[:0]
	removed := 0
	for _, occupant := range c.occupants {
		if occupant.ID == id {
			removed++
			continue
		}
		kept = append(kept, occupant)
	}

	// Clear the tail so dropped references can be collected
	for i := len(kept); i < len(c.occupants); i++ {
		c.occupants[i] = nil
	}
	c.occupants = kept

	if removed > 0 {
		c.UpdatedAt = shared.NewTimestamp()
	}
	return removed
}

// Contains checks if an animal with the given ID is in the cage
func (c *Cage) Contains(id animal.AnimalID) bool {
	for _, occupant := range c.occupants {
		if occupant.ID == id {
			return true
		}
	}
	return false
}

// Occupants returns a copy of the occupant list in arrival order
func (c *Cage) Occupants() []*animal.Animal {
	result := make([]*animal.Animal, len(c.occupants))
	copy(result, c.occupants)
	return result
}

// OccupantIDs returns the occupant IDs in arrival order
func (c *Cage) OccupantIDs() []animal.AnimalID {
	ids := make([]animal.AnimalID, len(c.occupants))
	for i, occupant := range c.occupants {
		ids[i] = occupant.ID
	}
	return ids
}

// ShowAnimals writes the description of every occupant in arrival order
func (c *Cage) ShowAnimals(w io.Writer) error {
	for _, occupant := range c.occupants {
		if _, err := io.WriteString(w, occupant.Describe()); err != nil {
			return fmt.Errorf("show cage %d: %w", c.number, err)
		}
	}
	return nil
}

// clone copies the cage. Occupants stay shared references into the arena.
func (c *Cage) clone() *Cage {
	cp := *c
	cp.occupants = make([]*animal.Animal, len(c.occupants), max(len(c.occupants), c.maxCapacity))
	copy(cp.occupants, c.occupants)
	return &cp
}

// composition reports whether the cage holds any non-predator and any predator
func (c *Cage) composition() (hasNonPredator, hasPredator bool) {
	for _, occupant := range c.occupants {
		if occupant.IsPredator() {
			hasPredator = true
		} else {
			hasNonPredator = true
		}
	}
	return hasNonPredator, hasPredator
}

// Snapshot is the serializable form of a cage. Occupants are stored by ID and
// resolved against the animal arena on restore.
type Snapshot struct {
	Number      int               `json:"number"`
	MaxCapacity int               `json:"max_capacity"`
	OccupantIDs []animal.AnimalID `json:"occupant_ids"`
	UpdatedAt   shared.Timestamp  `json:"updated_at"`
}

// Snapshot captures the current state of the cage
func (c *Cage) Snapshot() Snapshot {
	return Snapshot{
		Number:      c.number,
		MaxCapacity: c.maxCapacity,
		OccupantIDs: c.OccupantIDs(),
		UpdatedAt:   c.UpdatedAt,
	}
}

// Resolver looks up an animal in the arena, returning nil when absent
type Resolver func(id animal.AnimalID) (*animal.Animal, error)

// Restore rebuilds a cage from a snapshot. Occupants are taken as stored,
// without re-running admission; IDs the resolver no longer knows are dropped.
func Restore(s Snapshot, resolve Resolver, opts ...Option) (*Cage, error) {
	c := &Cage{
		number:      s.Number,
		maxCapacity: s.MaxCapacity,
		occupants:   make([]*animal.Animal, 0, len(s.OccupantIDs)),
		UpdatedAt:   s.UpdatedAt,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, id := range s.OccupantIDs {
		a, err := resolve(id)
		if err != nil {
			return nil, fmt.Errorf("resolve occupant %s of cage %d: %w", id, s.Number, err)
		}
		if a != nil {
			c.occupants = append(c.occupants, a)
		}
	}

	return c, nil
}
