package model

type Client struct {
	BaseEntity
	SoftDelete

	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Email   string `gorm:"type:varchar(100);not null;index" json:"email"`
	Phone   string `gorm:"type:varchar(20);not null" json:"phone"`
	Address string `gorm:"type:varchar(200)" json:"address"`

	Orders []Order `gorm:"foreignKey:ClientID" json:"orders,omitempty"`
}
