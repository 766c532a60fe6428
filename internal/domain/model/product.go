package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseEntity
	SoftDelete

	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Description string          `gorm:"type:varchar(500)" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int64           `gorm:"not null;default:0" json:"stock"`
	CategoryID  int64           `gorm:"not null;index" json:"category_id"`
}
