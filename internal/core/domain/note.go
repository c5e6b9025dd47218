package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID        int       `db:"id"`
	UUID      uuid.UUID `db:"uuid"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	OwnerID   int       `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (n Note) Kind() string { return "note" }

func (n Note) Identity() uuid.UUID { return n.UUID }

func (n Note) Owner() int { return n.OwnerID }

func (n Note) Normalize() (Note, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)

	if n.Title == "" {
		return Note{}, NewValidationError("title", "title is required")
	}
	if n.Content == "" {
		return Note{}, NewValidationError("content", "content is required")
	}

	return n, nil
}

func (n Note) Stamp(ownerID int, id uuid.UUID, at time.Time) Note {
	n.ID = 0
	n.UUID = id
	n.OwnerID = ownerID
	n.CreatedAt = at
	n.UpdatedAt = at

	return n
}

func (n Note) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"uuid":       n.UUID.String(),
		"title":      n.Title,
		"content":    n.Content,
		"owner_id":   n.OwnerID,
		"created_at": n.CreatedAt,
		"updated_at": n.UpdatedAt,
	}
}

func (n Note) MutableMap() map[string]interface{} {
	return map[string]interface{}{
		"title":      n.Title,
		"content":    n.Content,
		"updated_at": n.UpdatedAt,
	}
}

type NotePatch struct {
	Title   *string
	Content *string
}

func (p NotePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "title cannot be blank")
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return NewValidationError("content", "content cannot be blank")
	}

	return nil
}

func (p NotePatch) Apply(n Note, at time.Time) Note {
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = strings.TrimSpace(*p.Content)
	}
	n.UpdatedAt = at

	return n
}
