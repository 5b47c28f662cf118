package command

import (
	"strconv"

	"github.com/danghamo/zoo/internal/domain/animal"
)

// Zoo Commands

// RegisterAnimalCommand creates an animal and stores it in the arena. The
// new animal takes the command ID as its identity.
type RegisterAnimalCommand struct {
	BaseCommand
	Kind     animal.Kind `json:"kind"`
	Name     string      `json:"name"`
	Predator bool        `json:"predator"`

	DeepWater   bool    `json:"deep_water,omitempty"`
	FlightSpeed float64 `json:"flight_speed,omitempty"`
	Habitat     string  `json:"habitat,omitempty"`
}

// NewRegisterAnimalCommand creates a command for a plain animal
func NewRegisterAnimalCommand(name string, predator bool) RegisterAnimalCommand {
	base := NewBaseCommand("RegisterAnimal", "")
	base.AggrID = base.ID
	return RegisterAnimalCommand{
		BaseCommand: base,
		Kind:        animal.KindAnimal,
		Name:        name,
		Predator:    predator,
	}
}

// NewRegisterFishCommand creates a command for a fish
func NewRegisterFishCommand(name string, predator, deepWater bool) RegisterAnimalCommand {
	cmd := NewRegisterAnimalCommand(name, predator)
	cmd.Kind = animal.KindFish
	cmd.DeepWater = deepWater
	return cmd
}

// NewRegisterBirdCommand creates a command for a bird
func NewRegisterBirdCommand(name string, predator bool, flightSpeed float64) RegisterAnimalCommand {
	cmd := NewRegisterAnimalCommand(name, predator)
	cmd.Kind = animal.KindBird
	cmd.FlightSpeed = flightSpeed
	return cmd
}

// NewRegisterMammalCommand creates a command for a mammal
func NewRegisterMammalCommand(name string, predator bool, habitat string) RegisterAnimalCommand {
	cmd := NewRegisterAnimalCommand(name, predator)
	cmd.Kind = animal.KindMammal
	cmd.Habitat = habitat
	return cmd
}

// AnimalID returns the identity the registered animal will carry
func (c RegisterAnimalCommand) AnimalID() animal.AnimalID {
	return animal.AnimalID(c.AggrID)
}

// OpenCageCommand opens an empty cage
type OpenCageCommand struct {
	BaseCommand
	Number      int `json:"number"`
	MaxCapacity int `json:"max_capacity"`
}

// NewOpenCageCommand creates a new open cage command
func NewOpenCageCommand(number, maxCapacity int) OpenCageCommand {
	return OpenCageCommand{
		BaseCommand: NewBaseCommand("OpenCage", strconv.Itoa(number)),
		Number:      number,
		MaxCapacity: maxCapacity,
	}
}

// CloseCageCommand removes a cage; its occupants stay in the arena
type CloseCageCommand struct {
	BaseCommand
	Number int `json:"number"`
}

// NewCloseCageCommand creates a new close cage command
func NewCloseCageCommand(number int) CloseCageCommand {
	return CloseCageCommand{
		BaseCommand: NewBaseCommand("CloseCage", strconv.Itoa(number)),
		Number:      number,
	}
}

// AdmitAnimalCommand moves an animal from the arena into a cage
type AdmitAnimalCommand struct {
	BaseCommand
	CageNumber int    `json:"cage_number"`
	AnimalID   string `json:"animal_id"`
}

// NewAdmitAnimalCommand creates a new admit animal command
func NewAdmitAnimalCommand(cageNumber int, animalID animal.AnimalID) AdmitAnimalCommand {
	return AdmitAnimalCommand{
		BaseCommand: NewBaseCommand("AdmitAnimal", strconv.Itoa(cageNumber)),
		CageNumber:  cageNumber,
		AnimalID:    animalID.String(),
	}
}

// ReleaseAnimalCommand takes an animal out of a cage
type ReleaseAnimalCommand struct {
	BaseCommand
	CageNumber int    `json:"cage_number"`
	AnimalID   string `json:"animal_id"`
}

// NewReleaseAnimalCommand creates a new release animal command
func NewReleaseAnimalCommand(cageNumber int, animalID animal.AnimalID) ReleaseAnimalCommand {
	return ReleaseAnimalCommand{
		BaseCommand: NewBaseCommand("ReleaseAnimal", strconv.Itoa(cageNumber)),
		CageNumber:  cageNumber,
		AnimalID:    animalID.String(),
	}
}

// ForgetAnimalCommand removes an animal from every cage and from the arena
type ForgetAnimalCommand struct {
	BaseCommand
	AnimalID string `json:"animal_id"`
}

// NewForgetAnimalCommand creates a new forget animal command
func NewForgetAnimalCommand(animalID animal.AnimalID) ForgetAnimalCommand {
	return ForgetAnimalCommand{
		BaseCommand: NewBaseCommand("ForgetAnimal", animalID.String()),
		AnimalID:    animalID.String(),
	}
}
