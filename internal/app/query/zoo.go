package query

import (
	"github.com/danghamo/zoo/internal/domain/animal"
)

// GetAnimalQuery gets an animal from the arena
type GetAnimalQuery struct {
	BaseQuery
	AnimalID string `json:"animal_id"`
}

// NewGetAnimalQuery creates a new get animal query
func NewGetAnimalQuery(animalID animal.AnimalID) GetAnimalQuery {
	return GetAnimalQuery{
		BaseQuery: NewBaseQuery("GetAnimal"),
		AnimalID:  animalID.String(),
	}
}

// ListAnimalsQuery lists every animal in the arena
type ListAnimalsQuery struct {
	BaseQuery
}

// NewListAnimalsQuery creates a new list animals query
func NewListAnimalsQuery() ListAnimalsQuery {
	return ListAnimalsQuery{
		BaseQuery: NewBaseQuery("ListAnimals"),
	}
}

// GetCageQuery gets a cage by number
type GetCageQuery struct {
	BaseQuery
	Number int `json:"number"`
}

// NewGetCageQuery creates a new get cage query
func NewGetCageQuery(number int) GetCageQuery {
	return GetCageQuery{
		BaseQuery: NewBaseQuery("GetCage"),
		Number:    number,
	}
}

// ShowCageQuery renders the occupants of a cage
type ShowCageQuery struct {
	BaseQuery
	Number int `json:"number"`
}

// NewShowCageQuery creates a new show cage query
func NewShowCageQuery(number int) ShowCageQuery {
	return ShowCageQuery{
		BaseQuery: NewBaseQuery("ShowCage"),
		Number:    number,
	}
}

// ListCagesQuery lists every cage ordered by number
type ListCagesQuery struct {
	BaseQuery
}

// NewListCagesQuery creates a new list cages query
func NewListCagesQuery() ListCagesQuery {
	return ListCagesQuery{
		BaseQuery: NewBaseQuery("ListCages"),
	}
}

// CageSummary is the read model returned for a cage
type CageSummary struct {
	Number      int      `json:"number"`
	MaxCapacity int      `json:"max_capacity"`
	Count       int      `json:"count"`
	Occupants   []string `json:"occupants"`
	OccupantIDs []string `json:"occupant_ids"`
}
