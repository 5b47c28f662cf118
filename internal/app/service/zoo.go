package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/cage"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/pkg/logger"
)

// ZooService coordinates the animal arena, the cages and event publication
type ZooService struct {
	animals   animal.Repository
	cages     cage.Repository
	publisher shared.EventPublisher
	policy    cage.AdmissionPolicy
	logger    *logger.Logger
}

// NewZooService creates a new zoo service
func NewZooService(
	logger *logger.Logger,
	animals animal.Repository,
	cages cage.Repository,
	publisher shared.EventPublisher,
	policy cage.AdmissionPolicy,
) *ZooService {
	return &ZooService{
		animals:   animals,
		cages:     cages,
		publisher: publisher,
		policy:    policy,
		logger:    logger.WithComponent("zoo-service"),
	}
}

// Policy returns the admission policy applied to every cage
func (s *ZooService) Policy() cage.AdmissionPolicy {
	return s.policy
}

// RegisterAnimal stores an animal in the arena
func (s *ZooService) RegisterAnimal(ctx context.Context, a *animal.Animal) error {
	if a == nil {
		return shared.ErrInvalidInput("animal is required")
	}

	if err := s.animals.Insert(ctx, a); err != nil {
		return err
	}

	s.logger.Info("Animal registered",
		zap.String("animal_id", a.ID.String()),
		zap.String("name", a.Name()),
		zap.String("kind", a.Kind().String()),
		zap.Bool("predator", a.IsPredator()),
	)

	event, err := animal.NewAnimalRegisteredEvent(a)
	if err != nil {
		return fmt.Errorf("failed to create animal registered event: %w", err)
	}
	s.publish(ctx, event)

	return nil
}

// Animal returns an animal from the arena
func (s *ZooService) Animal(ctx context.Context, id animal.AnimalID) (*animal.Animal, error) {
	a, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, shared.ErrNotFound("animal")
	}
	return a, nil
}

// Animals returns every animal in the arena
func (s *ZooService) Animals(ctx context.Context) ([]*animal.Animal, error) {
	return s.animals.List(ctx)
}

// OpenCage creates an empty cage under the service admission policy
func (s *ZooService) OpenCage(ctx context.Context, number, maxCapacity int) (*cage.Cage, error) {
	existing, err := s.cages.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists("cage")
	}

	c, err := cage.New(number, maxCapacity, cage.WithPolicy(s.policy))
	if err != nil {
		return nil, err
	}

	if err := s.cages.Insert(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Cage opened",
		zap.Int("cage", number),
		zap.Int("max_capacity", maxCapacity),
		zap.Bool("symmetric_mixing", s.policy.Symmetric),
	)

	event, err := cage.NewCageOpenedEvent(number, maxCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create cage opened event: %w", err)
	}
	s.publish(ctx, event)

	return c, nil
}

// CloseCage removes a cage. Its occupants stay in the arena.
func (s *ZooService) CloseCage(ctx context.Context, number int) error {
	if err := s.cages.Delete(ctx, number); err != nil {
		return err
	}

	s.logger.Info("Cage closed", zap.Int("cage", number))

	event, err := cage.NewCageClosedEvent(number)
	if err != nil {
		return fmt.Errorf("failed to create cage closed event: %w", err)
	}
	s.publish(ctx, event)

	return nil
}

// Cage returns a copy of a cage by number
func (s *ZooService) Cage(ctx context.Context, number int) (*cage.Cage, error) {
	c, err := s.cages.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, shared.ErrNotFound("cage")
	}
	c.SetPolicy(s.policy)
	return c, nil
}

// Cages returns every cage ordered by number
func (s *ZooService) Cages(ctx context.Context) ([]*cage.Cage, error) {
	return s.cages.List(ctx)
}

// Admit adds an animal to a cage. The capacity and mixing checks run inside
// the repository update, so concurrent admissions never overfill a cage.
// Rejections are published and returned unchanged so callers can match them
// with errors.Is.
func (s *ZooService) Admit(ctx context.Context, cageNumber int, animalID animal.AnimalID) error {
	a, err := s.Animal(ctx, animalID)
	if err != nil {
		return err
	}

	var count int
	err = s.cages.FindOneAndUpdate(ctx, cageNumber, func(c *cage.Cage) (*cage.Cage, error) {
		c.SetPolicy(s.policy)
		if err := c.AddAnimal(a); err != nil {
			return nil, err
		}
		count = c.Count()
		return c, nil
	})
	if err != nil {
		s.reject(ctx, cageNumber, a, err)
		return err
	}

	s.logger.Info("Animal admitted",
		zap.Int("cage", cageNumber),
		zap.String("animal_id", a.ID.String()),
		zap.String("name", a.Name()),
		zap.Int("count", count),
	)

	event, err := cage.NewAnimalAdmittedEvent(cageNumber, a.ID.String(), a.IsPredator(), count)
	if err != nil {
		return fmt.Errorf("failed to create animal admitted event: %w", err)
	}
	s.publish(ctx, event)

	return nil
}

func (s *ZooService) reject(ctx context.Context, cageNumber int, a *animal.Animal, cause error) {
	kind, ok := shared.KindOf(cause)
	if !ok {
		s.logger.Warn("Admission failed",
			zap.Int("cage", cageNumber),
			zap.String("animal_id", a.ID.String()),
			zap.Error(cause),
		)
		return
	}

	s.logger.Warn("Animal rejected",
		zap.Int("cage", cageNumber),
		zap.String("animal_id", a.ID.String()),
		zap.String("reason", kind.Code()),
	)

	event, err := cage.NewAnimalRejectedEvent(cageNumber, a.ID.String(), kind)
	if err != nil {
		s.logger.Error("Failed to create animal rejected event", zap.Error(err))
		return
	}
	s.publish(ctx, event)
}

// Release removes every occurrence of an animal from a cage. Releasing an
// animal that is not in the cage is a no-op.
func (s *ZooService) Release(ctx context.Context, cageNumber int, animalID animal.AnimalID) error {
	var removed int
	err := s.cages.FindOneAndUpdate(ctx, cageNumber, func(c *cage.Cage) (*cage.Cage, error) {
		removed = c.RemoveByID(animalID)
		if removed == 0 {
			return nil, nil
		}
		return c, nil
	})
	if err != nil {
		return err
	}

	if removed == 0 {
		return nil
	}

	s.logger.Info("Animal released",
		zap.Int("cage", cageNumber),
		zap.String("animal_id", animalID.String()),
		zap.Int("removed", removed),
	)

	event, err := cage.NewAnimalReleasedEvent(cageNumber, animalID.String(), removed)
	if err != nil {
		return fmt.Errorf("failed to create animal released event: %w", err)
	}
	s.publish(ctx, event)

	return nil
}

// Show writes the description of every occupant of a cage
func (s *ZooService) Show(ctx context.Context, cageNumber int, w io.Writer) error {
	c, err := s.Cage(ctx, cageNumber)
	if err != nil {
		return err
	}
	return c.ShowAnimals(w)
}

// Forget releases an animal from every cage and removes it from the arena
func (s *ZooService) Forget(ctx context.Context, animalID animal.AnimalID) error {
	a, err := s.Animal(ctx, animalID)
	if err != nil {
		return err
	}

	cages, err := s.cages.List(ctx)
	if err != nil {
		return err
	}

	for _, c := range cages {
		if !c.Contains(animalID) {
			continue
		}
		if err := s.Release(ctx, c.Number(), animalID); err != nil {
			return fmt.Errorf("failed to release animal from cage %d: %w", c.Number(), err)
		}
	}

	if err := s.animals.Delete(ctx, animalID); err != nil {
		return err
	}

	s.logger.Info("Animal forgotten",
		zap.String("animal_id", animalID.String()),
		zap.String("name", a.Name()),
	)

	event, err := animal.NewAnimalForgottenEvent(animalID.String(), a.Name())
	if err != nil {
		return fmt.Errorf("failed to create animal forgotten event: %w", err)
	}
	s.publish(ctx, event)

	return nil
}

// publish never fails the calling operation; the state change already happened
func (s *ZooService) publish(ctx context.Context, event shared.Event) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.Error(err),
		)
	}
}
