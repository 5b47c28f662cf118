package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danghamo/zoo/internal/app/command"
	"github.com/danghamo/zoo/internal/app/query"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/cage"
	"github.com/danghamo/zoo/internal/domain/shared"
	"github.com/danghamo/zoo/pkg/logger"
)

func newTestHandlers(policy cage.AdmissionPolicy) (*ZooCommandHandler, *ZooQueryHandler) {
	zoo := service.NewZooService(
		logger.NewNop(),
		animal.NewMemoryRepository(),
		cage.NewMemoryRepository(),
		nil,
		policy,
	)
	return NewZooCommandHandler(zoo), NewZooQueryHandler(zoo)
}

func TestZooCommandHandler_RegisterAnimal(t *testing.T) {
	ctx := context.Background()
	commands, queries := newTestHandlers(cage.AdmissionPolicy{})

	tests := []struct {
		name string
		cmd  command.RegisterAnimalCommand
		kind animal.Kind
	}{
		{"plain", command.NewRegisterAnimalCommand("Lion", true), animal.KindAnimal},
		{"fish", command.NewRegisterFishCommand("Carp", false, false), animal.KindFish},
		{"bird", command.NewRegisterBirdCommand("Eagle", true, 120), animal.KindBird},
		{"mammal", command.NewRegisterMammalCommand("Zebra", false, "Savanna"), animal.KindMammal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, commands.Handle(ctx, tt.cmd))

			result, err := queries.Handle(ctx, query.NewGetAnimalQuery(tt.cmd.AnimalID()))
			require.NoError(t, err)

			a, ok := result.(*animal.Animal)
			require.True(t, ok)
			assert.Equal(t, tt.cmd.AnimalID(), a.ID)
			assert.Equal(t, tt.cmd.Name, a.Name())
			assert.Equal(t, tt.kind, a.Kind())
		})
	}

	result, err := queries.Handle(ctx, query.NewListAnimalsQuery())
	require.NoError(t, err)
	assert.Len(t, result, len(tests))
}

func TestZooCommandHandler_RegisterAnimalInvalid(t *testing.T) {
	ctx := context.Background()
	commands, _ := newTestHandlers(cage.AdmissionPolicy{})

	err := commands.Handle(ctx, command.NewRegisterAnimalCommand("", false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNameMissing))
	assert.Equal(t, "Error: create animal - name is missing.", shared.MessageOf(err))

	cmd := command.NewRegisterAnimalCommand("Griffin", true)
	cmd.Kind = animal.Kind("griffin")
	err = commands.Handle(ctx, cmd)
	assert.Equal(t, shared.ErrCodeInvalidAnimalKind, shared.ErrorCode(err))
}

func TestZooCommandHandler_CageLifecycle(t *testing.T) {
	ctx := context.Background()
	commands, queries := newTestHandlers(cage.AdmissionPolicy{})

	lion := command.NewRegisterAnimalCommand("Lion", true)
	zebra := command.NewRegisterAnimalCommand("Zebra", false)

	require.NoError(t, commands.Handle(ctx, command.NewOpenCageCommand(1, 2)))
	require.NoError(t, commands.Handle(ctx, lion))
	require.NoError(t, commands.Handle(ctx, zebra))
	require.NoError(t, commands.Handle(ctx, command.NewAdmitAnimalCommand(1, lion.AnimalID())))
	require.NoError(t, commands.Handle(ctx, command.NewAdmitAnimalCommand(1, zebra.AnimalID())))

	result, err := queries.Handle(ctx, query.NewGetCageQuery(1))
	require.NoError(t, err)
	assert.Equal(t, query.CageSummary{
		Number:      1,
		MaxCapacity: 2,
		Count:       2,
		Occupants:   []string{"Lion", "Zebra"},
		OccupantIDs: []string{lion.AnimalID().String(), zebra.AnimalID().String()},
	}, result)

	result, err = queries.Handle(ctx, query.NewShowCageQuery(1))
	require.NoError(t, err)
	assert.Equal(t, "Animal: Lion (Predator)\nAnimal: Zebra\n", result)

	require.NoError(t, commands.Handle(ctx, command.NewReleaseAnimalCommand(1, lion.AnimalID())))
	require.NoError(t, commands.Handle(ctx, command.NewForgetAnimalCommand(zebra.AnimalID())))

	result, err = queries.Handle(ctx, query.NewListCagesQuery())
	require.NoError(t, err)
	assert.Equal(t, []query.CageSummary{
		{Number: 1, MaxCapacity: 2, Count: 0, Occupants: []string{}, OccupantIDs: []string{}},
	}, result)

	require.NoError(t, commands.Handle(ctx, command.NewCloseCageCommand(1)))

	_, err = queries.Handle(ctx, query.NewGetCageQuery(1))
	assert.Equal(t, shared.ErrCodeNotFound, shared.ErrorCode(err))

	err = commands.Handle(ctx, command.NewCloseCageCommand(1))
	assert.Equal(t, shared.ErrCodeNotFound, shared.ErrorCode(err))
}

func TestZooCommandHandler_MissingAnimalID(t *testing.T) {
	ctx := context.Background()
	commands, _ := newTestHandlers(cage.AdmissionPolicy{})

	tests := []struct {
		name string
		cmd  command.Command
	}{
		{"admit", command.NewAdmitAnimalCommand(1, "")},
		{"release", command.NewReleaseAnimalCommand(1, "")},
		{"forget", command.NewForgetAnimalCommand("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := commands.Handle(ctx, tt.cmd)
			assert.Equal(t, shared.ErrCodeInvalidInput, shared.ErrorCode(err))
		})
	}
}

type unknownCommand struct {
	command.BaseCommand
}

type unknownQuery struct {
	query.BaseQuery
}

func TestZooHandlers_UnknownMessages(t *testing.T) {
	ctx := context.Background()
	commands, queries := newTestHandlers(cage.AdmissionPolicy{})

	err := commands.Handle(ctx, unknownCommand{command.NewBaseCommand("Unknown", "")})
	assert.ErrorContains(t, err, "unknown command type")

	_, err = queries.Handle(ctx, unknownQuery{query.NewBaseQuery("Unknown")})
	assert.ErrorContains(t, err, "unknown query type")
}
