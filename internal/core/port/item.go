package port

import (
	"context"

	"tasknotes/internal/core/domain"
)

type ItemRepository[T domain.Record] interface {
	ListByOwner(ctx context.Context, ownerID int) ([]T, error)
	GetByUUID(ctx context.Context, uuid string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) (T, error)
	DeleteByUUID(ctx context.Context, uuid string) error
}

type ItemService[T domain.Item[T], P domain.Patch[T]] interface {
	List(ctx context.Context, callerID int) ([]T, error)
	Create(ctx context.Context, callerID int, item T) (T, error)
	Update(ctx context.Context, callerID int, uuid string, patch P) (T, error)
	Delete(ctx context.Context, callerID int, uuid string) error
}
