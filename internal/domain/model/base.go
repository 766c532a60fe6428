package model

import "time"

// BaseEntity は全エンティティ共通のID・日時。
type BaseEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (b BaseEntity) GetID() int64 {
	return b.ID
}

// SoftDeletable marks entities that are logically deleted instead of removed.
// IsActive is false exactly when DeletedAt is set.
type SoftDeletable interface {
	Active() bool
	Activate()
	MarkDeleted(at time.Time)
}

// SoftDelete は論理削除のカラム。各エンティティに埋め込む。
type SoftDelete struct {
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at"`
}

func (s *SoftDelete) Active() bool {
	return s.IsActive && s.DeletedAt == nil
}

func (s *SoftDelete) Activate() {
	s.IsActive = true
	s.DeletedAt = nil
}

func (s *SoftDelete) MarkDeleted(at time.Time) {
	s.IsActive = false
	s.DeletedAt = &at
}
