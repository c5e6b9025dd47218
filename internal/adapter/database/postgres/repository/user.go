package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	database "tasknotes/internal/adapter/database/postgres"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	tel "tasknotes/internal/core/telemetry"
)

var userColumns = []string{"id", "uuid", "name", "email", "encrypted_password", "created_at", "updated_at"}

type UserRepository struct {
	db        *database.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *database.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{db: db, telemetry: telemetry}
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	return ur.getOne(ctx, "GetByID", sq.Eq{"id": id})
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getOne(ctx, "GetByUUID", sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, "GetByEmail", sq.Eq{"email": email})
}

func (ur *UserRepository) getOne(ctx context.Context, operation string, where sq.Eq) (domain.User, error) {
	ctx, done := tel.TrackRepository(ctx, ur.telemetry, operation, "user", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "users",
	})

	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, done(err)
	}

	var (
		data domain.User
		uid  string
	)

	err = ur.db.QueryRow(ctx, query, args...).Scan(
		&data.ID,
		&uid,
		&data.Name,
		&data.Email,
		&data.EncryptedPassword,
		&data.CreatedAt,
		&data.UpdatedAt,
	)

	if err != nil {
		return domain.User{}, done(database.TranslateError(err))
	}

	if data.UUID, err = uuid.Parse(uid); err != nil {
		return domain.User{}, done(database.TranslateError(err))
	}

	return data, done(nil)
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, done := tel.TrackRepository(ctx, ur.telemetry, "Create", "user", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "users",
		"db.operation": "INSERT",
		"user.uuid":    user.UUID.String(),
	})

	query, args, err := ur.db.QueryBuilder.Insert("users").
		SetMap(user.ToMap()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.User{}, done(err)
	}

	if err := ur.db.QueryRow(ctx, query, args...).Scan(&user.ID); err != nil {
		return domain.User{}, done(database.TranslateError(err))
	}

	return user, done(nil)
}

func (ur *UserRepository) UpdatePassword(ctx context.Context, id int, digest string) error {
	ctx, done := tel.TrackRepository(ctx, ur.telemetry, "UpdatePassword", "user", map[string]interface{}{
		"db.system":    "postgresql",
		"db.table":     "users",
		"db.operation": "UPDATE",
		"user.id":      id,
	})

	query, args, err := ur.db.QueryBuilder.Update("users").
		Set("encrypted_password", digest).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return done(err)
	}

	tag, err := ur.db.Exec(ctx, query, args...)

	if err != nil {
		return done(database.TranslateError(err))
	}

	if tag.RowsAffected() == 0 {
		return done(domain.ErrNotFound)
	}

	return done(nil)
}
