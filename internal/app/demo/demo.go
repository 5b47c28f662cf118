// Package demo runs the fixed zoo demonstration: a small cage, a lion, a
// zebra and an animal without a name. Only rule violations are printed
// unless the cage contents are asked for.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/danghamo/zoo/internal/app/command"
	"github.com/danghamo/zoo/internal/app/query"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/shared"
)

// Settings of the demonstration cage
type Settings struct {
	CageNumber   int
	CageCapacity int
	// ShowContents lists the cage occupants after the admissions
	ShowContents bool
}

// Run executes the demonstration and writes its output to w. Zoo rule
// violations are printed as their fixed message and do not stop the run;
// any other failure is returned. Rejected animals are removed from the arena
// again, so repeated runs against a persistent store leave the same state.
func Run(ctx context.Context, commands command.CommandHandler, queries query.QueryHandler, settings Settings, w io.Writer) error {
	if err := openCage(ctx, commands, queries, settings); err != nil {
		return fmt.Errorf("failed to open cage %d: %w", settings.CageNumber, err)
	}

	steps := []command.RegisterAnimalCommand{
		command.NewRegisterAnimalCommand("Lion", true),
		command.NewRegisterAnimalCommand("Zebra", false),
		command.NewRegisterAnimalCommand("", false),
	}

	for _, register := range steps {
		err := commands.Handle(ctx, register)
		if err == nil {
			err = commands.Handle(ctx, command.NewAdmitAnimalCommand(settings.CageNumber, register.AnimalID()))
			if _, rejected := shared.KindOf(err); rejected {
				if ferr := commands.Handle(ctx, command.NewForgetAnimalCommand(register.AnimalID())); ferr != nil {
					return fmt.Errorf("failed to forget rejected animal: %w", ferr)
				}
			}
		}
		if err := report(w, err); err != nil {
			return err
		}
	}

	if !settings.ShowContents {
		return nil
	}

	contents, err := queries.Handle(ctx, query.NewShowCageQuery(settings.CageNumber))
	if err != nil {
		return fmt.Errorf("failed to show cage %d: %w", settings.CageNumber, err)
	}

	if _, err := fmt.Fprint(w, contents); err != nil {
		return fmt.Errorf("failed to write cage contents: %w", err)
	}

	return nil
}

// openCage opens the demonstration cage. A cage left behind by an earlier run
// is emptied, its occupants are forgotten and it is reopened with the
// configured capacity.
func openCage(ctx context.Context, commands command.CommandHandler, queries query.QueryHandler, settings Settings) error {
	open := command.NewOpenCageCommand(settings.CageNumber, settings.CageCapacity)

	err := commands.Handle(ctx, open)
	if err == nil || shared.ErrorCode(err) != shared.ErrCodeAlreadyExists {
		return err
	}

	result, err := queries.Handle(ctx, query.NewGetCageQuery(settings.CageNumber))
	if err != nil {
		return err
	}

	summary, ok := result.(query.CageSummary)
	if !ok {
		return fmt.Errorf("unexpected cage query result: %T", result)
	}

	forgotten := make(map[string]bool, len(summary.OccupantIDs))
	for _, id := range summary.OccupantIDs {
		if forgotten[id] {
			continue
		}
		forgotten[id] = true

		if err := commands.Handle(ctx, command.NewForgetAnimalCommand(animal.AnimalID(id))); err != nil {
			return fmt.Errorf("failed to forget animal %s: %w", id, err)
		}
	}

	if err := commands.Handle(ctx, command.NewCloseCageCommand(settings.CageNumber)); err != nil {
		return err
	}

	return commands.Handle(ctx, open)
}

// report prints zoo rule violations and passes other errors through
func report(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := shared.KindOf(err); !ok {
		return err
	}

	if _, werr := fmt.Fprintln(w, shared.MessageOf(err)); werr != nil {
		return fmt.Errorf("failed to write message: %w", werr)
	}
	return nil
}
