package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tasknotes/internal/core/domain"
)

func TestTask_Normalize(t *testing.T) {
	t.Run("should trim the title", func(t *testing.T) {
		task, err := domain.Task{Title: "  buy milk  "}.Normalize()

		assert.NoError(t, err)
		assert.Equal(t, "buy milk", task.Title)
	})

	t.Run("should reject a blank title", func(t *testing.T) {
		_, err := domain.Task{Title: "   "}.Normalize()

		assert.True(t, errors.Is(err, domain.ErrValidation))

		var verr *domain.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "title", verr.Field)
	})
}

func TestNote_Normalize(t *testing.T) {
	t.Run("should require title and content", func(t *testing.T) {
		_, err := domain.Note{Title: "x", Content: " "}.Normalize()
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = domain.Note{Title: "", Content: "body"}.Normalize()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("should trim both fields", func(t *testing.T) {
		note, err := domain.Note{Title: " a ", Content: "\tb\n"}.Normalize()

		assert.NoError(t, err)
		assert.Equal(t, "a", note.Title)
		assert.Equal(t, "b", note.Content)
	})
}

func TestTask_Stamp(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.New()

	task := domain.Task{ID: 9, Title: "t", OwnerID: 3}.Stamp(7, id, at)

	assert.Equal(t, 0, task.ID)
	assert.Equal(t, 7, task.OwnerID)
	assert.Equal(t, id, task.UUID)
	assert.Equal(t, at, task.CreatedAt)
	assert.Equal(t, at, task.UpdatedAt)
}

func TestTaskPatch(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	task := domain.Task{Title: "old", OwnerID: 1, CreatedAt: created, UpdatedAt: created}

	t.Run("should only overwrite supplied fields", func(t *testing.T) {
		done := true
		updated := domain.TaskPatch{Completed: &done}.Apply(task, later)

		assert.Equal(t, "old", updated.Title)
		assert.True(t, updated.Completed)
		assert.Equal(t, 1, updated.OwnerID)
		assert.Equal(t, created, updated.CreatedAt)
		assert.Equal(t, later, updated.UpdatedAt)
	})

	t.Run("should reject a blank title", func(t *testing.T) {
		blank := "  "
		assert.ErrorIs(t, domain.TaskPatch{Title: &blank}.Validate(), domain.ErrValidation)
	})

	t.Run("should accept an empty patch", func(t *testing.T) {
		assert.NoError(t, domain.TaskPatch{}.Validate())
	})
}

func TestNotePatch(t *testing.T) {
	note := domain.Note{Title: "t", Content: "c", OwnerID: 2}
	content := " new body "

	updated := domain.NotePatch{Content: &content}.Apply(note, time.Now())

	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, 2, updated.OwnerID)
}
