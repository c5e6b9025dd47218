package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"tasknotes/internal/adapter/database/sqlite/repository"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	"tasknotes/internal/core/telemetry"
	. "tasknotes/pkg/test"
	"tasknotes/pkg/test/factory"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()
	s.T().Cleanup(func() { db.Close() })

	s.repo = repository.NewUserRepository(db, telemetry.NewNoOpProbe())
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_Success() {
	user, err := s.repo.Create(context.Background(), factory.NewUser(map[string]any{
		"Name":  "Test User",
		"Email": "test@example.com",
	}))

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), user.ID)
	assert.NotEqual(s.T(), uuid.Nil, user.UUID)
	assert.Equal(s.T(), "Test User", user.Name)
	assert.Equal(s.T(), "test@example.com", user.Email)
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_DuplicateEmail() {
	ctx := context.Background()

	_, err := s.repo.Create(ctx, factory.NewUser(map[string]any{"Email": "dup@example.com"}))
	Expect(err).To(BeNil())

	_, err = s.repo.Create(ctx, factory.NewUser(map[string]any{"Email": "dup@example.com"}))

	Expect(err).To(MatchError(domain.ErrConflict))
}

func (s *UserRepositoryTestSuite) TestRepository_GetUser_AllLookups() {
	ctx := context.Background()

	created, err := s.repo.Create(ctx, factory.NewUser(map[string]any{"Name": "Ann", "Email": "ann@example.com"}))
	Expect(err).To(BeNil())

	byID, err := s.repo.GetByID(ctx, created.ID)
	Expect(err).To(BeNil())
	Expect(byID.Email).To(Equal("ann@example.com"))
	Expect(byID.EncryptedPassword).To(Equal(created.EncryptedPassword))

	byUUID, err := s.repo.GetByUUID(ctx, created.UUID.String())
	Expect(err).To(BeNil())
	Expect(byUUID.ID).To(Equal(created.ID))

	byEmail, err := s.repo.GetByEmail(ctx, "ann@example.com")
	Expect(err).To(BeNil())
	Expect(byEmail.UUID).To(Equal(created.UUID))
	Expect(byEmail.CreatedAt.Equal(created.CreatedAt)).To(BeTrue())
}

func (s *UserRepositoryTestSuite) TestRepository_GetUser_NotFound() {
	_, err := s.repo.GetByEmail(context.Background(), "ghost@example.com")

	Expect(err).To(MatchError(domain.ErrNotFound))

	_, err = s.repo.GetByID(context.Background(), 999)

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdatePassword() {
	ctx := context.Background()

	created, _ := s.repo.Create(ctx, factory.NewUser())

	err := s.repo.UpdatePassword(ctx, created.ID, "new-digest")
	Expect(err).To(BeNil())

	user, _ := s.repo.GetByID(ctx, created.ID)
	Expect(user.EncryptedPassword).To(Equal("new-digest"))

	Expect(s.repo.UpdatePassword(ctx, 999, "x")).To(MatchError(domain.ErrNotFound))
}
