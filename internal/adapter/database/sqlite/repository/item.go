package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"tasknotes/internal/adapter/database/sqlite"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	tel "tasknotes/internal/core/telemetry"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Table describes where an item kind lives.
type Table struct {
	Name   string
	Entity string
}

var (
	TasksTable = Table{Name: "tasks", Entity: "task"}
	NotesTable = Table{Name: "notes", Entity: "note"}
)

type ItemRepository[T domain.Record] struct {
	db        *sqlite.DB
	table     Table
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewItemRepository[T domain.Record](db *sqlite.DB, table Table, telemetry port.Telemetry) port.ItemRepository[T] {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ItemRepository[T]{
		db:        db,
		table:     table,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

func NewTaskRepository(db *sqlite.DB, telemetry port.Telemetry) port.ItemRepository[domain.Task] {
	return NewItemRepository[domain.Task](db, TasksTable, telemetry)
}

func NewNoteRepository(db *sqlite.DB, telemetry port.Telemetry) port.ItemRepository[domain.Note] {
	return NewItemRepository[domain.Note](db, NotesTable, telemetry)
}

func (r *ItemRepository[T]) track(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, func(error) error) {
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	attrs["db.system"] = "sqlite"
	attrs["db.table"] = r.table.Name

	return tel.TrackRepository(ctx, r.telemetry, operation, r.table.Entity, attrs)
}

func (r *ItemRepository[T]) ListByOwner(ctx context.Context, ownerID int) ([]T, error) {
	ctx, done := r.track(ctx, "ListByOwner", map[string]interface{}{"owner.id": ownerID})

	query, args, err := r.db.QueryBuilder.Select("*").
		From(r.table.Name).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, done(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, done(sqlite.TranslateError(err))
	}

	defer rows.Close()

	items := make([]T, 0)
	if err := r.scanner.ScanRowsToSlice(rows, &items); err != nil {
		return nil, done(sqlite.TranslateError(err))
	}

	return items, done(nil)
}

func (r *ItemRepository[T]) GetByUUID(ctx context.Context, uid string) (T, error) {
	var item T

	ctx, done := r.track(ctx, "GetByUUID", map[string]interface{}{"item.uuid": uid})

	query, args, err := r.db.QueryBuilder.Select("*").
		From(r.table.Name).
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return item, done(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return item, done(sqlite.TranslateError(err))
	}

	defer rows.Close()

	if err := r.scanner.ScanRowToStruct(rows, &item); err != nil {
		var zero T
		return zero, done(sqlite.TranslateError(err))
	}

	return item, done(nil)
}

func (r *ItemRepository[T]) Create(ctx context.Context, item T) (T, error) {
	ctx, done := r.track(ctx, "Create", map[string]interface{}{
		"db.operation": "INSERT",
		"item.uuid":    item.Identity().String(),
		"owner.id":     item.Owner(),
	})

	query, args, err := r.db.QueryBuilder.Insert(r.table.Name).
		SetMap(item.ToMap()).
		ToSql()

	if err != nil {
		var zero T
		return zero, done(err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var zero T
		return zero, done(sqlite.TranslateError(err))
	}

	saved, err := r.GetByUUID(ctx, item.Identity().String())

	return saved, done(err)
}

func (r *ItemRepository[T]) Update(ctx context.Context, item T) (T, error) {
	ctx, done := r.track(ctx, "Update", map[string]interface{}{
		"db.operation": "UPDATE",
		"item.uuid":    item.Identity().String(),
		"owner.id":     item.Owner(),
	})

	query, args, err := r.db.QueryBuilder.Update(r.table.Name).
		SetMap(item.MutableMap()).
		Where(sq.Eq{"uuid": item.Identity().String()}).
		ToSql()

	if err != nil {
		var zero T
		return zero, done(err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)

	if err != nil {
		var zero T
		return zero, done(sqlite.TranslateError(err))
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		var zero T
		return zero, done(domain.ErrNotFound)
	}

	saved, err := r.GetByUUID(ctx, item.Identity().String())

	return saved, done(err)
}

func (r *ItemRepository[T]) DeleteByUUID(ctx context.Context, uid string) error {
	ctx, done := r.track(ctx, "DeleteByUUID", map[string]interface{}{
		"db.operation": "DELETE",
		"item.uuid":    uid,
	})

	query, args, err := r.db.QueryBuilder.Delete(r.table.Name).
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return done(err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)

	if err != nil {
		return done(sqlite.TranslateError(err))
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return done(domain.ErrNotFound)
	}

	return done(nil)
}
