package handler

import (
	"context"
	"fmt"

	"github.com/danghamo/zoo/internal/app/command"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// ZooCommandHandler handles zoo commands
type ZooCommandHandler struct {
	zoo *service.ZooService
}

// NewZooCommandHandler creates a new zoo command handler
func NewZooCommandHandler(zoo *service.ZooService) *ZooCommandHandler {
	return &ZooCommandHandler{
		zoo: zoo,
	}
}

// Handle handles zoo commands
func (h *ZooCommandHandler) Handle(ctx context.Context, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.RegisterAnimalCommand:
		return h.handleRegisterAnimal(ctx, c)
	case command.OpenCageCommand:
		return h.handleOpenCage(ctx, c)
	case command.CloseCageCommand:
		return h.zoo.CloseCage(ctx, c.Number)
	case command.AdmitAnimalCommand:
		return h.handleAdmitAnimal(ctx, c)
	case command.ReleaseAnimalCommand:
		return h.handleReleaseAnimal(ctx, c)
	case command.ForgetAnimalCommand:
		return h.handleForgetAnimal(ctx, c)
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

func (h *ZooCommandHandler) handleRegisterAnimal(ctx context.Context, cmd command.RegisterAnimalCommand) error {
	a, err := newAnimalFromCommand(cmd)
	if err != nil {
		return err
	}

	if cmd.AggregateID() != "" {
		a.ID = cmd.AnimalID()
	}

	return h.zoo.RegisterAnimal(ctx, a)
}

func newAnimalFromCommand(cmd command.RegisterAnimalCommand) (*animal.Animal, error) {
	switch cmd.Kind {
	case animal.KindAnimal, "":
		return animal.NewAnimal(cmd.Name, cmd.Predator)
	case animal.KindFish:
		return animal.NewFish(cmd.Name, cmd.Predator, cmd.DeepWater)
	case animal.KindBird:
		return animal.NewBird(cmd.Name, cmd.Predator, cmd.FlightSpeed)
	case animal.KindMammal:
		return animal.NewMammal(cmd.Name, cmd.Predator, cmd.Habitat)
	default:
		return nil, shared.NewDomainErrorf(shared.ErrCodeInvalidAnimalKind, "Invalid animal kind: %s", cmd.Kind)
	}
}

func (h *ZooCommandHandler) handleOpenCage(ctx context.Context, cmd command.OpenCageCommand) error {
	_, err := h.zoo.OpenCage(ctx, cmd.Number, cmd.MaxCapacity)
	return err
}

func (h *ZooCommandHandler) handleAdmitAnimal(ctx context.Context, cmd command.AdmitAnimalCommand) error {
	if cmd.AnimalID == "" {
		return shared.ErrInvalidInput("animal ID is required")
	}
	return h.zoo.Admit(ctx, cmd.CageNumber, animal.AnimalID(cmd.AnimalID))
}

func (h *ZooCommandHandler) handleReleaseAnimal(ctx context.Context, cmd command.ReleaseAnimalCommand) error {
	if cmd.AnimalID == "" {
		return shared.ErrInvalidInput("animal ID is required")
	}
	return h.zoo.Release(ctx, cmd.CageNumber, animal.AnimalID(cmd.AnimalID))
}

func (h *ZooCommandHandler) handleForgetAnimal(ctx context.Context, cmd command.ForgetAnimalCommand) error {
	if cmd.AnimalID == "" {
		return shared.ErrInvalidInput("animal ID is required")
	}
	return h.zoo.Forget(ctx, animal.AnimalID(cmd.AnimalID))
}
