package domain

import (
	"time"

	"github.com/google/uuid"
)

// Record is what the item stores need to persist a row.
type Record interface {
	Identity() uuid.UUID
	Owner() int
	ToMap() map[string]interface{}
	MutableMap() map[string]interface{}
}

// Item is an owner-scoped record handled by the generic item service.
type Item[T any] interface {
	Record
	Kind() string
	Normalize() (T, error)
	Stamp(ownerID int, id uuid.UUID, at time.Time) T
}

// Patch carries the optional fields of an update.
type Patch[T any] interface {
	Validate() error
	Apply(item T, at time.Time) T
}
