package repository

import (
	"context"

	"orderapi/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CRUDRepository[model.Order]

	ListByClientID(ctx context.Context, clientID int64) ([]model.Order, error)
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
	// ChangeStatus は現在のステータスが from のときだけ to に変える。変わらなければ false。
	ChangeStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error)
}
