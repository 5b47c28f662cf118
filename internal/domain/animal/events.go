package animal

import (
	"github.com/danghamo/zoo/internal/domain/shared"
)

// Event types
const (
	AnimalRegisteredEventType = "animal.registered"
	AnimalForgottenEventType  = "animal.forgotten"
)

// AnimalRegisteredEvent represents an animal entering the zoo arena
type AnimalRegisteredEvent struct {
	shared.BaseEvent
}

// AnimalRegisteredEventData holds the event data
type AnimalRegisteredEventData struct {
	Animal Snapshot `json:"animal"`
}

// NewAnimalRegisteredEvent creates a new animal registered event
func NewAnimalRegisteredEvent(a *Animal) (AnimalRegisteredEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		AnimalRegisteredEventType,
		a.ID.String(),
		"animal",
		AnimalRegisteredEventData{Animal: a.Snapshot()},
	)
	if err != nil {
		return AnimalRegisteredEvent{}, err
	}

	return AnimalRegisteredEvent{BaseEvent: baseEvent}, nil
}

// AnimalForgottenEvent represents an animal leaving the zoo arena
type AnimalForgottenEvent struct {
	shared.BaseEvent
}

// AnimalForgottenEventData holds the event data
type AnimalForgottenEventData struct {
	AnimalID string `json:"animal_id"`
	Name     string `json:"name"`
}

// NewAnimalForgottenEvent creates a new animal forgotten event
func NewAnimalForgottenEvent(animalID, name string) (AnimalForgottenEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		AnimalForgottenEventType,
		animalID,
		"animal",
		AnimalForgottenEventData{AnimalID: animalID, Name: name},
	)
	if err != nil {
		return AnimalForgottenEvent{}, err
	}

	return AnimalForgottenEvent{BaseEvent: baseEvent}, nil
}
