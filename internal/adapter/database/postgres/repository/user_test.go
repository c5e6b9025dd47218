package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	database "tasknotes/internal/adapter/database/postgres"
	"tasknotes/internal/adapter/database/postgres/repository"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
)

var userColumns = []string{"id", "uuid", "name", "email", "encrypted_password", "created_at", "updated_at"}

type UserRepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)

	s.mock = mock
	s.repo = repository.NewUserRepository(database.Wrap(mock), nil)
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByEmail_Success() {
	id := uuid.New()
	now := time.Now().UTC()

	s.mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1 LIMIT 1`).
		WithArgs("ann@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(1, id.String(), "Ann", "ann@example.com", "digest", now, now))

	user, err := s.repo.GetByEmail(context.Background(), "ann@example.com")

	Expect(err).To(BeNil())
	Expect(user.ID).To(Equal(1))
	Expect(user.UUID).To(Equal(id))
	Expect(user.Name).To(Equal("Ann"))
	Expect(user.EncryptedPassword).To(Equal("digest"))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	s.mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1 LIMIT 1`).
		WithArgs(7).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.repo.GetByID(context.Background(), 7)

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_Create_ReturnsID() {
	s.mock.ExpectQuery(`INSERT INTO users (.+) RETURNING id`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

	user, err := s.repo.Create(context.Background(), domain.User{
		UUID:  uuid.New(),
		Name:  "Ann",
		Email: "ann@example.com",
	})

	Expect(err).To(BeNil())
	Expect(user.ID).To(Equal(42))
}

func (s *UserRepositoryTestSuite) TestRepository_Create_DuplicateEmail() {
	s.mock.ExpectQuery(`INSERT INTO users (.+) RETURNING id`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := s.repo.Create(context.Background(), domain.User{UUID: uuid.New(), Email: "ann@example.com"})

	Expect(err).To(MatchError(domain.ErrConflict))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdatePassword() {
	s.mock.ExpectExec(`UPDATE users SET encrypted_password = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("digest", 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	Expect(s.repo.UpdatePassword(context.Background(), 1, "digest")).To(Succeed())
}

func (s *UserRepositoryTestSuite) TestRepository_UpdatePassword_Missing() {
	s.mock.ExpectExec(`UPDATE users SET (.+) WHERE id = \$2`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	Expect(s.repo.UpdatePassword(context.Background(), 5, "digest")).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_StoreFailure() {
	s.mock.ExpectQuery(`SELECT (.+) FROM users`).
		WillReturnError(&pgconn.PgError{Code: "08006"})

	_, err := s.repo.GetByUUID(context.Background(), uuid.NewString())

	Expect(err).To(MatchError(domain.ErrStoreUnavailable))
}
