package repository

import (
	"orderapi/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	softDeleteRepository[model.Category, *model.Category]
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{
		softDeleteRepository: newSoftDeleteRepository[model.Category, *model.Category](db),
	}
}
