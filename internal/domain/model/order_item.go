package model

import "github.com/shopspring/decimal"

type OrderItem struct {
	BaseEntity
	SoftDelete

	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
	// 作成時点の商品価格（スナップショット）
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}

// Subtotal is quantity times the unit price snapshot.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
