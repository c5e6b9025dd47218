package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"tasknotes/internal/adapter/database/sqlite"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	tel "tasknotes/internal/core/telemetry"
)

const usersTable = "users"

type UserRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
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
		"db.system": "sqlite",
		"db.table":  usersTable,
	})

	query, args, err := ur.db.QueryBuilder.Select("*").
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, done(err)
	}

	rows, err := ur.db.QueryContext(ctx, query, args...)

	if err != nil {
		return domain.User{}, done(sqlite.TranslateError(err))
	}

	defer rows.Close()

	var user domain.User
	if err := ur.scanner.ScanRowToStruct(rows, &user); err != nil {
		return domain.User{}, done(sqlite.TranslateError(err))
	}

	return user, done(nil)
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, done := tel.TrackRepository(ctx, ur.telemetry, "Create", "user", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     usersTable,
		"db.operation": "INSERT",
		"user.uuid":    user.UUID.String(),
	})

	query, args, err := ur.db.QueryBuilder.Insert(usersTable).
		SetMap(user.ToMap()).
		ToSql()

	if err != nil {
		return domain.User{}, done(err)
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		return domain.User{}, done(sqlite.TranslateError(err))
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.User{}, done(sqlite.TranslateError(err))
	}

	user.ID = int(id)

	return user, done(nil)
}

func (ur *UserRepository) UpdatePassword(ctx context.Context, id int, digest string) error {
	ctx, done := tel.TrackRepository(ctx, ur.telemetry, "UpdatePassword", "user", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     usersTable,
		"db.operation": "UPDATE",
		"user.id":      id,
	})

	query, args, err := ur.db.QueryBuilder.Update(usersTable).
		Set("encrypted_password", digest).
		Set("updated_at", nowUTC()).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return done(err)
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		return done(sqlite.TranslateError(err))
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return done(domain.ErrNotFound)
	}

	return done(nil)
}
