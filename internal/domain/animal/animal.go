package animal

import (
	"encoding/json"
	"fmt"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// AnimalID represents a unique animal identifier
type AnimalID shared.ID

// NewAnimalID creates a new animal ID
func NewAnimalID() AnimalID {
	return AnimalID(shared.NewID())
}

// String returns string representation
func (id AnimalID) String() string {
	return string(id)
}

// Kind is the closed set of animal variants
type Kind string

const (
	KindAnimal Kind = "animal"
	KindFish   Kind = "fish"
	KindBird   Kind = "bird"
	KindMammal Kind = "mammal"
)

// String returns string representation
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known variants
func (k Kind) IsValid() bool {
	return k == KindAnimal || k == KindFish || k == KindBird || k == KindMammal
}

// Animal is an inhabitant of the zoo. The shared fields live here; the
// variant-specific attribute lives in traits, which is nil for a plain animal.
type Animal struct {
	ID        AnimalID
	name      string
	predator  bool
	traits    Traits
	CreatedAt shared.Timestamp
	UpdatedAt shared.Timestamp
}

// NewAnimal creates a plain animal. An empty name is rejected with ErrNameMissing.
func NewAnimal(name string, predator bool) (*Animal, error) {
	return newAnimal(name, predator, nil)
}

// NewFish creates a fish living in deep or shallow water
func NewFish(name string, predator, deepWater bool) (*Animal, error) {
	return newAnimal(name, predator, &Fish{deepWater: deepWater})
}

// NewBird creates a bird with the given flight speed in km/h
func NewBird(name string, predator bool, flightSpeed float64) (*Animal, error) {
	if err := validateFlightSpeed(flightSpeed); err != nil {
		return nil, err
	}
	return newAnimal(name, predator, &Bird{flightSpeed: flightSpeed})
}

// NewMammal creates a mammal native to the given habitat
func NewMammal(name string, predator bool, habitat string) (*Animal, error) {
	return newAnimal(name, predator, &Mammal{habitat: habitat})
}

func newAnimal(name string, predator bool, traits Traits) (*Animal, error) {
	if name == "" {
		return nil, shared.NewKindError(shared.KindNameMissing)
	}

	timestamp := shared.NewTimestamp()
	return &Animal{
		ID:        NewAnimalID(),
		name:      name,
		predator:  predator,
		traits:    traits,
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}, nil
}

// Name returns the animal name
func (a *Animal) Name() string {
	return a.name
}

// SetName renames the animal. The construction rule applies: an empty name
// is rejected and the current name is kept.
func (a *Animal) SetName(name string) error {
	if name == "" {
		return shared.NewKindError(shared.KindNameMissing)
	}
	a.name = name
	a.UpdatedAt = shared.NewTimestamp()
	return nil
}

// IsPredator reports whether the animal is a predator
func (a *Animal) IsPredator() bool {
	return a.predator
}

// SetPredator changes the predator flag
func (a *Animal) SetPredator(predator bool) {
	a.predator = predator
	a.UpdatedAt = shared.NewTimestamp()
}

// Kind returns the variant of the animal
func (a *Animal) Kind() Kind {
	if a.traits == nil {
		return KindAnimal
	}
	return a.traits.Kind()
}

// Traits returns the variant payload, nil for a plain animal
func (a *Animal) Traits() Traits {
	return a.traits
}

// Fish returns the fish traits when the animal is a fish
func (a *Animal) Fish() (*Fish, bool) {
	f, ok := a.traits.(*Fish)
	return f, ok
}

// Bird returns the bird traits when the animal is a bird
func (a *Animal) Bird() (*Bird, bool) {
	b, ok := a.traits.(*Bird)
	return b, ok
}

// Mammal returns the mammal traits when the animal is a mammal
func (a *Animal) Mammal() (*Mammal, bool) {
	m, ok := a.traits.(*Mammal)
	return m, ok
}

// Snapshot is the serializable form of an animal
type Snapshot struct {
	ID          AnimalID         `json:"id"`
	Kind        Kind             `json:"kind"`
	Name        string           `json:"name"`
	Predator    bool             `json:"predator"`
	DeepWater   *bool            `json:"deep_water,omitempty"`
	FlightSpeed *float64         `json:"flight_speed,omitempty"`
	Habitat     *string          `json:"habitat,omitempty"`
	CreatedAt   shared.Timestamp `json:"created_at"`
	UpdatedAt   shared.Timestamp `json:"updated_at"`
}

// Snapshot captures the current state of the animal
func (a *Animal) Snapshot() Snapshot {
	s := Snapshot{
		ID:        a.ID,
		Kind:      a.Kind(),
		Name:      a.name,
		Predator:  a.predator,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}

	switch t := a.traits.(type) {
	case *Fish:
		deep := t.deepWater
		s.DeepWater = &deep
	case *Bird:
		speed := t.flightSpeed
		s.FlightSpeed = &speed
	case *Mammal:
		habitat := t.habitat
		s.Habitat = &habitat
	}

	return s
}

// Restore rebuilds an animal from a snapshot, applying the construction rules
func Restore(s Snapshot) (*Animal, error) {
	if !s.Kind.IsValid() {
		return nil, shared.NewDomainError(shared.ErrCodeInvalidAnimalKind, fmt.Sprintf("Invalid animal kind: %s", s.Kind))
	}

	var traits Traits
	switch s.Kind {
	case KindFish:
		traits = &Fish{deepWater: s.DeepWater != nil && *s.DeepWater}
	case KindBird:
		var speed float64
		if s.FlightSpeed != nil {
			speed = *s.FlightSpeed
		}
		if err := validateFlightSpeed(speed); err != nil {
			return nil, err
		}
		traits = &Bird{flightSpeed: speed}
	case KindMammal:
		var habitat string
		if s.Habitat != nil {
			habitat = *s.Habitat
		}
		traits = &Mammal{habitat: habitat}
	}

	a, err := newAnimal(s.Name, s.Predator, traits)
	if err != nil {
		return nil, err
	}
	if s.ID != "" {
		a.ID = s.ID
	}
	a.CreatedAt = s.CreatedAt
	a.UpdatedAt = s.UpdatedAt

	return a, nil
}

// MarshalJSON encodes the animal through its snapshot
func (a *Animal) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Snapshot())
}

// UnmarshalJSON decodes the animal through its snapshot
func (a *Animal) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	restored, err := Restore(s)
	if err != nil {
		return err
	}

	*a = *restored
	return nil
}
