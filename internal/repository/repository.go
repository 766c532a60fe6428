package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 論理削除つきCRUDの共通の約束。
// 論理削除済みの行は存在しないものとして扱う（FindByID/Update/SoftDeleteはErrNotFound）。
type CRUDRepository[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, e T) (T, error)
	Update(ctx context.Context, e T) error
	SoftDelete(ctx context.Context, id int64) error
}
