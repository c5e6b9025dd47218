package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	database "tasknotes/internal/adapter/database/postgres"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/port"
	tel "tasknotes/internal/core/telemetry"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// Table describes where an item kind lives and how a row is read back.
type Table[T domain.Record] struct {
	Name    string
	Entity  string
	Columns []string
	Scan    func(row rowScanner) (T, error)
}

var TasksTable = Table[domain.Task]{
	Name:    "tasks",
	Entity:  "task",
	Columns: []string{"id", "uuid", "title", "completed", "owner_id", "created_at", "updated_at"},
	Scan: func(row rowScanner) (domain.Task, error) {
		var (
			task domain.Task
			uid  string
		)

		if err := row.Scan(&task.ID, &uid, &task.Title, &task.Completed, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return domain.Task{}, err
		}

		var err error
		task.UUID, err = uuid.Parse(uid)

		return task, err
	},
}

var NotesTable = Table[domain.Note]{
	Name:    "notes",
	Entity:  "note",
	Columns: []string{"id", "uuid", "title", "content", "owner_id", "created_at", "updated_at"},
	Scan: func(row rowScanner) (domain.Note, error) {
		var (
			note domain.Note
			uid  string
		)

		if err := row.Scan(&note.ID, &uid, &note.Title, &note.Content, &note.OwnerID, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return domain.Note{}, err
		}

		var err error
		note.UUID, err = uuid.Parse(uid)

		return note, err
	},
}

type ItemRepository[T domain.Record] struct {
	db        *database.DB
	table     Table[T]
	telemetry port.Telemetry
}

func NewItemRepository[T domain.Record](db *database.DB, table Table[T], telemetry port.Telemetry) port.ItemRepository[T] {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ItemRepository[T]{db: db, table: table, telemetry: telemetry}
}

func NewTaskRepository(db *database.DB, telemetry port.Telemetry) port.ItemRepository[domain.Task] {
	return NewItemRepository(db, TasksTable, telemetry)
}

func NewNoteRepository(db *database.DB, telemetry port.Telemetry) port.ItemRepository[domain.Note] {
	return NewItemRepository(db, NotesTable, telemetry)
}

func (r *ItemRepository[T]) track(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, func(error) error) {
	attrs["db.system"] = "postgresql"
	attrs["db.table"] = r.table.Name

	return tel.TrackRepository(ctx, r.telemetry, operation, r.table.Entity, attrs)
}

func (r *ItemRepository[T]) ListByOwner(ctx context.Context, ownerID int) ([]T, error) {
	ctx, done := r.track(ctx, "ListByOwner", map[string]interface{}{"owner.id": ownerID})

	query, args, err := r.db.QueryBuilder.Select(r.table.Columns...).
		From(r.table.Name).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, done(err)
	}

	rows, err := r.db.Query(ctx, query, args...)

	if err != nil {
		return nil, done(database.TranslateError(err))
	}

	defer rows.Close()

	items := make([]T, 0)

	for rows.Next() {
		item, err := r.table.Scan(rows)

		if err != nil {
			return nil, done(database.TranslateError(err))
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, done(database.TranslateError(err))
	}

	return items, done(nil)
}

func (r *ItemRepository[T]) GetByUUID(ctx context.Context, uid string) (T, error) {
	ctx, done := r.track(ctx, "GetByUUID", map[string]interface{}{"item.uuid": uid})

	query, args, err := r.db.QueryBuilder.Select(r.table.Columns...).
		From(r.table.Name).
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		var zero T
		return zero, done(err)
	}

	item, err := r.table.Scan(r.db.QueryRow(ctx, query, args...))

	if err != nil {
		var zero T
		return zero, done(database.TranslateError(err))
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
		Suffix("RETURNING " + strings.Join(r.table.Columns, ", ")).
		ToSql()

	if err != nil {
		var zero T
		return zero, done(err)
	}

	saved, err := r.table.Scan(r.db.QueryRow(ctx, query, args...))

	if err != nil {
		var zero T
		return zero, done(database.TranslateError(err))
	}

	return saved, done(nil)
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
		Suffix("RETURNING " + strings.Join(r.table.Columns, ", ")).
		ToSql()

	if err != nil {
		var zero T
		return zero, done(err)
	}

	saved, err := r.table.Scan(r.db.QueryRow(ctx, query, args...))

	if err != nil {
		var zero T
		return zero, done(database.TranslateError(err))
	}

	return saved, done(nil)
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

	tag, err := r.db.Exec(ctx, query, args...)

	if err != nil {
		return done(database.TranslateError(err))
	}

	if tag.RowsAffected() == 0 {
		return done(domain.ErrNotFound)
	}

	return done(nil)
}
