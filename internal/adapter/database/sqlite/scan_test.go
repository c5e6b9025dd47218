package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tasknotes/internal/core/domain"
)

type scanTarget struct {
	ID        int       `db:"id"`
	UUID      uuid.UUID `db:"uuid"`
	Done      bool      `db:"completed"`
	OwnerID   int
	CreatedAt time.Time
	Ignored   string `scan:"skip"`
}

func TestScanner_ScanRowsToSlice(t *testing.T) {
	db, err := NewDB(Options{Path: MemoryPath})
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	_, err = db.Exec(`CREATE TABLE scan_fixture (id INTEGER, uuid TEXT, completed INTEGER, owner_id INTEGER, created_at TEXT, ignored TEXT)`)
	assert.NoError(t, err)

	_, err = db.Exec(`INSERT INTO scan_fixture VALUES (1, ?, 1, 7, ?, 'x'), (2, ?, 0, 8, ?, 'y')`,
		id.String(), at.Format(time.RFC3339Nano), uuid.NewString(), at.Format(time.RFC3339Nano))
	assert.NoError(t, err)

	rows, err := db.Query(`SELECT * FROM scan_fixture ORDER BY id`)
	assert.NoError(t, err)
	defer rows.Close()

	var out []scanTarget
	assert.NoError(t, NewScanner().ScanRowsToSlice(rows, &out))

	assert.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, id, out[0].UUID)
	assert.True(t, out[0].Done)
	assert.False(t, out[1].Done)
	assert.Equal(t, 7, out[0].OwnerID)
	assert.True(t, at.Equal(out[0].CreatedAt))
	assert.Empty(t, out[0].Ignored)
}

func TestScanner_ScanRowToStruct_NoRows(t *testing.T) {
	db, err := NewDB(Options{Path: MemoryPath})
	assert.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT * FROM users WHERE id = 0`)
	assert.NoError(t, err)
	defer rows.Close()

	var target scanTarget
	err = NewScanner().ScanRowToStruct(rows, &target)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, TranslateError(err), domain.ErrNotFound)
}
