package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCanceled:
		return true
	}
	return false
}

type Order struct {
	BaseEntity
	SoftDelete

	ClientID    int64           `gorm:"not null;index" json:"client_id"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_amount"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
