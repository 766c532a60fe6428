package model

import "time"

type AuditAction string

const (
	//注文ステータスの変更
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//注文の論理削除
	AuditActionDeleteOrder AuditAction = "DELETE_ORDER"
)

type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// AuditLog は注文に対する変更の履歴。追記のみで論理削除しない。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index:idx_audit_resource" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index:idx_audit_resource" json:"resource_id"`

	//変更前後をJSON文字列で保存する
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
