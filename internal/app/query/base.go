package query

import (
	"context"
	"time"

	"github.com/danghamo/zoo/internal/domain/shared"
)

// Query represents a read-only request to the zoo
type Query interface {
	QueryID() string
	QueryType() string
	CreatedAt() time.Time
}

// BaseQuery provides common query functionality
type BaseQuery struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"created_at"`
}

// QueryID returns the query ID
func (q BaseQuery) QueryID() string {
	return q.ID
}

// QueryType returns the query type
func (q BaseQuery) QueryType() string {
	return q.Type
}

// CreatedAt returns when the query was created
func (q BaseQuery) CreatedAt() time.Time {
	return q.Timestamp
}

// NewBaseQuery creates a new base query
func NewBaseQuery(queryType string) BaseQuery {
	return BaseQuery{
		ID:        shared.NewID().String(),
		Type:      queryType,
		Timestamp: time.Now(),
	}
}

// QueryHandler handles queries
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}
