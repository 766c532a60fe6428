package repository

import (
	"context"

	"orderapi/internal/domain/model"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	softDeleteRepository[model.Product, *model.Product]
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{
		softDeleteRepository: newSoftDeleteRepository[model.Product, *model.Product](db),
	}
}

// カテゴリに属する有効な商品
func (r *ProductGormRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	products := make([]model.Product, 0)
	err := r.active(ctx).
		Where("category_id = ?", categoryID).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}
