package cage

import (
	"strconv"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// Event types
const (
	CageOpenedEventType     = "cage.opened"
	CageClosedEventType     = "cage.closed"
	AnimalAdmittedEventType = "cage.animal_admitted"
	AnimalRejectedEventType = "cage.animal_rejected"
	AnimalReleasedEventType = "cage.animal_released"
)

const cageAggregateType = "cage"

// CageOpenedEvent represents a new cage
type CageOpenedEvent struct {
	shared.BaseEvent
}

// CageOpenedEventData holds the event data
type CageOpenedEventData struct {
	Number      int `json:"number"`
	MaxCapacity int `json:"max_capacity"`
}

// NewCageOpenedEvent creates a new cage opened event
func NewCageOpenedEvent(number, maxCapacity int) (CageOpenedEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		CageOpenedEventType,
		strconv.Itoa(number),
		cageAggregateType,
		CageOpenedEventData{Number: number, MaxCapacity: maxCapacity},
	)
	if err != nil {
		return CageOpenedEvent{}, err
	}

	return CageOpenedEvent{BaseEvent: baseEvent}, nil
}

// CageClosedEvent represents a removed cage
type CageClosedEvent struct {
	shared.BaseEvent
}

// CageClosedEventData holds the event data
type CageClosedEventData struct {
	Number int `json:"number"`
}

// NewCageClosedEvent creates a new cage closed event
func NewCageClosedEvent(number int) (CageClosedEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		CageClosedEventType,
		strconv.Itoa(number),
		cageAggregateType,
		CageClosedEventData{Number: number},
	)
	if err != nil {
		return CageClosedEvent{}, err
	}

	return CageClosedEvent{BaseEvent: baseEvent}, nil
}

// AnimalAdmittedEvent represents an animal joining a cage
type AnimalAdmittedEvent struct {
	shared.BaseEvent
}

// AnimalAdmittedEventData holds the event data
type AnimalAdmittedEventData struct {
	Number   int    `json:"number"`
	AnimalID string `json:"animal_id"`
	Predator bool   `json:"predator"`
	Count    int    `json:"count"`
}

// NewAnimalAdmittedEvent creates a new animal admitted event
func NewAnimalAdmittedEvent(number int, animalID string, predator bool, count int) (AnimalAdmittedEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		AnimalAdmittedEventType,
		strconv.Itoa(number),
		cageAggregateType,
		AnimalAdmittedEventData{
			Number:   number,
			AnimalID: animalID,
			Predator: predator,
			Count:    count,
		},
	)
	if err != nil {
		return AnimalAdmittedEvent{}, err
	}

	return AnimalAdmittedEvent{BaseEvent: baseEvent}, nil
}

// AnimalRejectedEvent represents a refused admission
type AnimalRejectedEvent struct {
	shared.BaseEvent
}

// AnimalRejectedEventData holds the event data
type AnimalRejectedEventData struct {
	Number   int    `json:"number"`
	AnimalID string `json:"animal_id"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

// NewAnimalRejectedEvent creates a new animal rejected event
func NewAnimalRejectedEvent(number int, animalID string, kind shared.Kind) (AnimalRejectedEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		AnimalRejectedEventType,
		strconv.Itoa(number),
		cageAggregateType,
		AnimalRejectedEventData{
			Number:   number,
			AnimalID: animalID,
			Reason:   kind.Code(),
			Message:  kind.Error(),
		},
	)
	if err != nil {
		return AnimalRejectedEvent{}, err
	}

	return AnimalRejectedEvent{BaseEvent: baseEvent}, nil
}

// AnimalReleasedEvent represents an animal leaving a cage
type AnimalReleasedEvent struct {
	shared.BaseEvent
}

// AnimalReleasedEventData holds the event data
type AnimalReleasedEventData struct {
	Number   int    `json:"number"`
	AnimalID string `json:"animal_id"`
	Removed  int    `json:"removed"`
}

// NewAnimalReleasedEvent creates a new animal released event
func NewAnimalReleasedEvent(number int, animalID string, removed int) (AnimalReleasedEvent, error) {
	baseEvent, err := shared.NewBaseEvent(
		AnimalReleasedEventType,
		strconv.Itoa(number),
		cageAggregateType,
		AnimalReleasedEventData{Number: number, AnimalID: animalID, Removed: removed},
	)
	if err != nil {
		return AnimalReleasedEvent{}, err
	}

	return AnimalReleasedEvent{BaseEvent: baseEvent}, nil
}
