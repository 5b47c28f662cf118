package shared

import (
	"time"

	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// NewID generates a new unique ID
func NewID() ID {
	return ID(uuid.New().String())
}

// String returns the string representation of ID
func (id ID) String() string {
	return string(id)
}

// Timestamp represents a point in time
type Timestamp struct {
	value time.Time
}

// NewTimestamp creates a new timestamp
func NewTimestamp() Timestamp {
	return Timestamp{value: time.Now()}
}

// Value returns the time value
func (t Timestamp) Value() time.Time {
	return t.value
}

// MarshalText encodes the timestamp as RFC3339 with nanoseconds
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.value.Format(time.RFC3339Nano)), nil
}

// UnmarshalText decodes an RFC3339 timestamp
func (t *Timestamp) UnmarshalText(data []byte) error {
	parsed, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return err
	}
	t.value = parsed
	return nil
}
