package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/danghamo/zoo/internal/app/query"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/cage"
)

// ZooQueryHandler handles zoo queries
type ZooQueryHandler struct {
	zoo *service.ZooService
}

// NewZooQueryHandler creates a new zoo query handler
func NewZooQueryHandler(zoo *service.ZooService) *ZooQueryHandler {
	return &ZooQueryHandler{
		zoo: zoo,
	}
}

// Handle handles zoo queries
func (h *ZooQueryHandler) Handle(ctx context.Context, q query.Query) (interface{}, error) {
	switch qu := q.(type) {
	case query.GetAnimalQuery:
		return h.handleGetAnimal(ctx, qu)
	case query.ListAnimalsQuery:
		return h.zoo.Animals(ctx)
	case query.GetCageQuery:
		return h.handleGetCage(ctx, qu)
	case query.ShowCageQuery:
		return h.handleShowCage(ctx, qu)
	case query.ListCagesQuery:
		return h.handleListCages(ctx, qu)
	default:
		return nil, fmt.Errorf("unknown query type: %T", q)
	}
}

func (h *ZooQueryHandler) handleGetAnimal(ctx context.Context, q query.GetAnimalQuery) (*animal.Animal, error) {
	return h.zoo.Animal(ctx, animal.AnimalID(q.AnimalID))
}

func (h *ZooQueryHandler) handleGetCage(ctx context.Context, q query.GetCageQuery) (query.CageSummary, error) {
	c, err := h.zoo.Cage(ctx, q.Number)
	if err != nil {
		return query.CageSummary{}, err
	}
	return summarize(c), nil
}

func (h *ZooQueryHandler) handleShowCage(ctx context.Context, q query.ShowCageQuery) (string, error) {
	var sb strings.Builder
	if err := h.zoo.Show(ctx, q.Number, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (h *ZooQueryHandler) handleListCages(ctx context.Context, _ query.ListCagesQuery) ([]query.CageSummary, error) {
	cages, err := h.zoo.Cages(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]query.CageSummary, 0, len(cages))
	for _, c := range cages {
		summaries = append(summaries, summarize(c))
	}
	return summaries, nil
}

func summarize(c *cage.Cage) query.CageSummary {
	occupants := make([]string, 0, c.Count())
	ids := make([]string, 0, c.Count())
	for _, a := range c.Occupants() {
		occupants = append(occupants, a.Name())
		ids = append(ids, a.ID.String())
	}

	return query.CageSummary{
		Number:      c.Number(),
		MaxCapacity: c.MaxCapacity(),
		Count:       c.Count(),
		Occupants:   occupants,
		OccupantIDs: ids,
	}
}
