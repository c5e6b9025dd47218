package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        int       `db:"id"`
	UUID      uuid.UUID `db:"uuid"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	OwnerID   int       `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (t Task) Kind() string { return "task" }

func (t Task) Identity() uuid.UUID { return t.UUID }

func (t Task) Owner() int { return t.OwnerID }

func (t Task) Normalize() (Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return Task{}, NewValidationError("title", "title is required")
	}

	return t, nil
}

func (t Task) Stamp(ownerID int, id uuid.UUID, at time.Time) Task {
	t.ID = 0
	t.UUID = id
	t.OwnerID = ownerID
	t.CreatedAt = at
	t.UpdatedAt = at

	return t
}

func (t Task) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"uuid":       t.UUID.String(),
		"title":      t.Title,
		"completed":  t.Completed,
		"owner_id":   t.OwnerID,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func (t Task) MutableMap() map[string]interface{} {
	return map[string]interface{}{
		"title":      t.Title,
		"completed":  t.Completed,
		"updated_at": t.UpdatedAt,
	}
}

type TaskPatch struct {
	Title     *string
	Completed *bool
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "title cannot be blank")
	}

	return nil
}

func (p TaskPatch) Apply(t Task, at time.Time) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = at

	return t
}
