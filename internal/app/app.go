// Package app wires the zoo together from configuration: storage backends,
// the event bus, the zoo service and its command and query handlers.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/app/handler"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/cage"
	"github.com/danghamo/zoo/internal/eventbus"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
	"github.com/danghamo/zoo/pkg/redisx"
)

const journalStopTimeout = 5 * time.Second

// App holds the wired zoo components
type App struct {
	Zoo      *service.ZooService
	Commands *handler.ZooCommandHandler
	Queries  *handler.ZooQueryHandler
	Bus      *eventbus.Bus
	Journal  *eventbus.Journal

	logger      *logger.Logger
	redisClient *redisx.Client
}

// New builds the application from cfg. The caller must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{logger: log.WithComponent("app")}

	if cfg.NeedsRedis() {
		var opts []redisx.ClientOption
		if cfg.Store.PrivateDB {
			opts = append(opts, redisx.WithPrivate())
		}

		client, err := redisx.NewClient(ctx, cfg.Store.RedisURL, log, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		a.redisClient = client
	}

	policy := cage.AdmissionPolicy{Symmetric: cfg.Admission.SymmetricMixing}

	var (
		animals animal.Repository
		cages   cage.Repository
	)
	switch cfg.Store.Backend {
	case config.StoreRedis:
		animalRepo := animal.NewRedisRepository(a.redisClient.Client)
		animals = animalRepo
		cages = cage.NewRedisRepository(a.redisClient.Client, animalRepo, policy)
	default:
		animals = animal.NewMemoryRepository()
		cages = cage.NewMemoryRepository()
	}

	switch cfg.Events.Backend {
	case config.EventsRedis:
		bus, err := eventbus.NewRedisStream(a.redisClient.Client, cfg.Events.Topic, cfg.Events.MaxLen, log)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Bus = bus
	default:
		a.Bus = eventbus.NewGoChannel(cfg.Events.Topic, log)

		journal, err := eventbus.StartJournal(ctx, a.Bus, log)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to start event journal: %w", err)
		}
		a.Journal = journal
	}

	a.Zoo = service.NewZooService(log, animals, cages, a.Bus, policy)
	a.Commands = handler.NewZooCommandHandler(a.Zoo)
	a.Queries = handler.NewZooQueryHandler(a.Zoo)

	a.logger.Debug("Application wired",
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("events_backend", cfg.Events.Backend),
		zap.String("topic", cfg.Events.Topic),
	)

	return a, nil
}

// Close releases the event bus, waits for the journal and closes Redis
func (a *App) Close() error {
	var errs []error

	if a.Bus != nil {
		if err := a.Bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}

	if a.Journal != nil {
		select {
		case <-a.Journal.Done():
		case <-time.After(journalStopTimeout):
			a.logger.Warn("Event journal did not stop in time")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}

	return errors.Join(errs...)
}
