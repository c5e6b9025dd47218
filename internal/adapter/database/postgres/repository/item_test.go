package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	database "tasknotes/internal/adapter/database/postgres"
	"tasknotes/internal/adapter/database/postgres/repository"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
)

var (
	taskColumns = []string{"id", "uuid", "title", "completed", "owner_id", "created_at", "updated_at"}
	noteColumns = []string{"id", "uuid", "title", "content", "owner_id", "created_at", "updated_at"}
)

type ItemRepositoryTestSuite struct {
	suite.Suite
	mock  pgxmock.PgxPoolIface
	tasks port.ItemRepository[domain.Task]
	notes port.ItemRepository[domain.Note]
}

func (s *ItemRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)

	db := database.Wrap(mock)
	s.mock = mock
	s.tasks = repository.NewTaskRepository(db, nil)
	s.notes = repository.NewNoteRepository(db, nil)
}

func (s *ItemRepositoryTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestItemRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ItemRepositoryTestSuite))
}

func (s *ItemRepositoryTestSuite) TestRepository_ListTasks_Ordered() {
	now := time.Now().UTC()

	s.mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE owner_id = \$1 ORDER BY created_at DESC, id DESC`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(taskColumns).
			AddRow(2, uuid.NewString(), "newer", false, 3, now, now).
			AddRow(1, uuid.NewString(), "older", true, 3, now.Add(-time.Hour), now))

	tasks, err := s.tasks.ListByOwner(context.Background(), 3)

	Expect(err).To(BeNil())
	Expect(tasks).To(HaveLen(2))
	Expect(tasks[0].Title).To(Equal("newer"))
	Expect(tasks[1].Completed).To(BeTrue())
}

func (s *ItemRepositoryTestSuite) TestRepository_ListNotes_Empty() {
	s.mock.ExpectQuery(`SELECT (.+) FROM notes WHERE owner_id = \$1`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(noteColumns))

	notes, err := s.notes.ListByOwner(context.Background(), 3)

	Expect(err).To(BeNil())
	Expect(notes).NotTo(BeNil())
	Expect(notes).To(BeEmpty())
}

func (s *ItemRepositoryTestSuite) TestRepository_CreateNote_ReturnsRow() {
	id := uuid.New()
	now := time.Now().UTC()

	s.mock.ExpectQuery(`INSERT INTO notes (.+) RETURNING id, uuid, title, content, owner_id, created_at, updated_at`).
		WillReturnRows(pgxmock.NewRows(noteColumns).AddRow(5, id.String(), "t", "c", 3, now, now))

	note, err := s.notes.Create(context.Background(), domain.Note{
		UUID: id, Title: "t", Content: "c", OwnerID: 3, CreatedAt: now, UpdatedAt: now,
	})

	Expect(err).To(BeNil())
	Expect(note.ID).To(Equal(5))
	Expect(note.UUID).To(Equal(id))
}

func (s *ItemRepositoryTestSuite) TestRepository_UpdateTask_Missing() {
	s.mock.ExpectQuery(`UPDATE tasks SET (.+) WHERE uuid = \$4 RETURNING`).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.tasks.Update(context.Background(), domain.Task{UUID: uuid.New(), Title: "x"})

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *ItemRepositoryTestSuite) TestRepository_DeleteTask() {
	id := uuid.NewString()

	s.mock.ExpectExec(`DELETE FROM tasks WHERE uuid = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	Expect(s.tasks.DeleteByUUID(context.Background(), id)).To(Succeed())
}

func (s *ItemRepositoryTestSuite) TestRepository_DeleteTask_Missing() {
	s.mock.ExpectExec(`DELETE FROM tasks WHERE uuid = \$1`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	Expect(s.tasks.DeleteByUUID(context.Background(), uuid.NewString())).To(MatchError(domain.ErrNotFound))
}
