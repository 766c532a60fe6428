package repository

import (
	"context"

	"orderapi/internal/domain/model"
)

type OrderItemRepository interface {
	CRUDRepository[model.OrderItem]

	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
