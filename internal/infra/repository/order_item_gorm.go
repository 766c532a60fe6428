package repository

import (
	"context"

	"orderapi/internal/domain/model"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	softDeleteRepository[model.OrderItem, *model.OrderItem]
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{
		softDeleteRepository: newSoftDeleteRepository[model.OrderItem, *model.OrderItem](db),
	}
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0)
	err := r.active(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}
