package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

// 作成・更新の入力モデル（永続化モデルとは別）

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

type ProductRequest struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.90" validate:"money"`
	Stock       int64           `json:"stock" validate:"gte=0"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
}

type ClientRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Address string `json:"address" validate:"max=200"`
}

// OrderLine は注文作成時の明細1行。
type OrderLine struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"gte=1"`
}

type OrderRequest struct {
	ClientID  int64      `json:"client_id" validate:"required,gt=0"`
	OrderDate *time.Time `json:"order_date,omitempty"`
	Status    string     `json:"status,omitempty" validate:"omitempty,oneof=PENDING PAID SHIPPED CANCELED"`
	// 作成時のみ。更新では明細は /api/orderitem で扱う
	Items []OrderLine `json:"items,omitempty" validate:"omitempty,dive"`
}

type OrderItemRequest struct {
	OrderID   int64 `json:"order_id" validate:"required,gt=0"`
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"gte=1"`
}
