package model

type Category struct {
	BaseEntity
	SoftDelete

	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:varchar(500);not null" json:"description"`

	// 削除してもproductsは消さない
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"products,omitempty"`
}
