package repository

import (
	"context"

	"orderapi/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	CRUDRepository[model.Product]

	ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)
}
