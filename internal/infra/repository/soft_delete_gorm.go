package repository

import (
	"context"
	"errors"
	"time"

	"orderapi/internal/domain/model"
	repo "orderapi/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entity はポインタ側で論理削除とIDを扱えるエンティティ。
type entity[T any] interface {
	*T
	model.SoftDeletable
	GetID() int64
}

// softDeleteRepository は全エンティティ共通のCRUD（論理削除つき）。
type softDeleteRepository[T any, PT entity[T]] struct {
	db  *gorm.DB
	now func() time.Time
}

func newSoftDeleteRepository[T any, PT entity[T]](db *gorm.DB) softDeleteRepository[T, PT] {
	return softDeleteRepository[T, PT]{db: db, now: time.Now}
}

// 有効な行だけを対象にする
func (r softDeleteRepository[T, PT]) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(PT(new(T))).Where("is_active = ?", true)
}

func (r softDeleteRepository[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := r.active(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []T{}, err
	}
	return items, nil
}

func (r softDeleteRepository[T, PT]) FindByID(ctx context.Context, id int64) (T, error) {
	var e T
	err := r.active(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return e, repo.ErrNotFound
	}
	if err != nil {
		return e, err
	}
	return e, nil
}

func (r softDeleteRepository[T, PT]) Create(ctx context.Context, e T) (T, error) {
	PT(&e).Activate()
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(PT(&e)).Error; err != nil {
		var zero T
		return zero, err
	}
	return e, nil
}

// 全カラム更新。論理削除の状態と作成日時は変えない。
func (r softDeleteRepository[T, PT]) Update(ctx context.Context, e T) error {
	p := PT(&e)
	res := r.db.WithContext(ctx).
		Model(p).
		Where("is_active = ?", true).
		Select("*").
		Omit("id", "created_at", "is_active", "deleted_at", clause.Associations).
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r softDeleteRepository[T, PT]) SoftDelete(ctx context.Context, id int64) error {
	res := r.active(ctx).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"deleted_at": r.now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
