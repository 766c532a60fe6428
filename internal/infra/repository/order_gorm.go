package repository

import (
	"context"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	softDeleteRepository[model.Order, *model.Order]
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{
		softDeleteRepository: newSoftDeleteRepository[model.Order, *model.Order](db),
	}
}

func (r *OrderGormRepository) ListByClientID(ctx context.Context, clientID int64) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	err := r.active(ctx).
		Where("client_id = ?", clientID).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	res := r.active(ctx).
		Where("id = ?", orderID).
		Update("total_amount", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) ChangeStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	res := r.active(ctx).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
