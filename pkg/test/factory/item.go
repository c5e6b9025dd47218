package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"tasknotes/internal/core/domain"
)

func itemDefaults(ownerID int) map[string]any {
	now := time.Now().UTC()

	return map[string]any{
		"ID":        0,
		"UUID":      uuid.New(),
		"OwnerID":   ownerID,
		"CreatedAt": now,
		"UpdatedAt": now,
	}
}

func NewTask(ownerID int, customData ...map[string]any) domain.Task {
	instance := fab.New(domain.Task{})

	return instance.Build(merge(itemDefaults(ownerID), customData))
}

func NewNote(ownerID int, customData ...map[string]any) domain.Note {
	instance := fab.New(domain.Note{})

	return instance.Build(merge(itemDefaults(ownerID), customData))
}
